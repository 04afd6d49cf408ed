package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/fabrikdata/firmenmatch/internal/cli"
	"github.com/fabrikdata/firmenmatch/internal/config"
	"github.com/fabrikdata/firmenmatch/internal/db"
	"github.com/fabrikdata/firmenmatch/internal/logging"
	"github.com/fabrikdata/firmenmatch/internal/match"
)

const (
	outputFormatTable = "table"
	outputFormatJSON  = "json"
)

// loadRuntime loads the env file, configuration and logger shared by
// all commands.
func loadRuntime(envLoader *cli.EnvLoader) (*config.Config, zerolog.Logger, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, nil
}

// matcherConfig maps the environment configuration onto the matcher.
func matcherConfig(cfg *config.Config) match.Config {
	return match.Config{
		NameThreshold:   cfg.NameThreshold,
		DomainThreshold: cfg.DomainThreshold,
		FoldDiacritics:  cfg.FoldDiacritics,
	}
}

// optionalAuditPool connects the audit store when DATABASE_URL is set.
// Merges degrade to log-only otherwise.
func optionalAuditPool(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*db.Pool, error) {
	if !cfg.AuditEnabled() {
		logger.Info().Msg("DATABASE_URL not set, merge runs will not be persisted")
		return nil, nil
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit store: %w", err)
	}
	return pool, nil
}

// connectReadPool is the shared setup for commands that need the audit
// store: env file, config, logger and a connected pool.
func connectReadPool(timeout time.Duration, envLoader *cli.EnvLoader) (context.Context, context.CancelFunc, *db.Pool, zerolog.Logger, error) {
	cfg, logger, err := loadRuntime(envLoader)
	if err != nil {
		return nil, nil, nil, zerolog.Nop(), err
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		cancel()
		return nil, nil, nil, zerolog.Nop(), fmt.Errorf("failed to connect to audit store: %w", err)
	}

	return ctx, cancel, pool, logger, nil
}

func parseOutputFormat(raw, defaultFormat string) (string, error) {
	format := strings.TrimSpace(strings.ToLower(raw))
	if format == "" {
		format = strings.TrimSpace(strings.ToLower(defaultFormat))
	}
	switch format {
	case outputFormatTable, outputFormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("--format must be table or json")
	}
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func writeTable(headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	if _, err := fmt.Fprintln(writer, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(writer, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func formatUTCTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
