package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fabrikdata/firmenmatch/internal/cli"
	"github.com/fabrikdata/firmenmatch/internal/merge"
)

func runMerge(args []string) int {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	sourcePath := fs.String("source", "", "Keyword CSV to merge (required)")
	basePath := fs.String("base", "", "Company base table, .csv or .xlsx (required)")
	outputPath := fs.String("output", "", "Output CSV path (default: final_export_<industry>.csv)")
	threshold := fs.Float64("threshold", 0, "Name-match threshold override (0 keeps the configured value)")
	timeout := fs.Duration("timeout", 10*time.Minute, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *sourcePath == "" || *basePath == "" {
		fmt.Fprintln(os.Stderr, "--source and --base are required")
		return 2
	}
	if *threshold < 0 || *threshold > 1 {
		fmt.Fprintln(os.Stderr, "--threshold must be between 0 and 1")
		return 2
	}

	cfg, logger, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := optionalAuditPool(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("merge failed to connect to audit store")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if pool != nil {
		defer pool.Close()
	}

	svc := merge.NewService(pool, logger, matcherConfig(cfg))
	outcome, err := svc.Run(ctx, merge.Request{
		SourcePath: *sourcePath,
		BasePath:   *basePath,
		OutputPath: *outputPath,
		Threshold:  *threshold,
	})
	if err != nil {
		logger.Error().Err(err).Msg("merge failed")
		fmt.Fprintf(os.Stderr, "Merge failed: %v\n", err)
		return 1
	}

	if err := printJSON(outcome); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to print result: %v\n", err)
		return 1
	}
	return 0
}
