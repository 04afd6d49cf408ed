package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// DatabaseURL is optional: without it merges run file-to-file and the
	// audit trail stays in the logs.
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBMinConns  int32  `envconfig:"FM_DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"FM_DB_MAX_CONNS" default:"8"`

	// Matching thresholds on the 0..1 scale. The keyword merge defaults
	// to 0.90; the machines merge overrides the name threshold to 0.85.
	NameThreshold   float64 `envconfig:"MATCH_NAME_THRESHOLD" default:"0.90"`
	DomainThreshold float64 `envconfig:"MATCH_DOMAIN_THRESHOLD" default:"0.90"`
	FoldDiacritics  bool    `envconfig:"MATCH_FOLD_DIACRITICS" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBMinConns < 0 {
		return fmt.Errorf("FM_DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("FM_DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("FM_DB_MIN_CONNS (%d) cannot exceed FM_DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.NameThreshold <= 0 || c.NameThreshold > 1 {
		return fmt.Errorf("MATCH_NAME_THRESHOLD must be in (0, 1], got %v", c.NameThreshold)
	}
	if c.DomainThreshold <= 0 || c.DomainThreshold > 1 {
		return fmt.Errorf("MATCH_DOMAIN_THRESHOLD must be in (0, 1], got %v", c.DomainThreshold)
	}
	return nil
}

// AuditEnabled reports whether merge runs should be persisted.
func (c *Config) AuditEnabled() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}
