package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fabrikdata/firmenmatch/internal/cli"
	"github.com/fabrikdata/firmenmatch/internal/enrich"
)

func runEnrich(args []string) int {
	fs := flag.NewFlagSet("enrich", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	inputPath := fs.String("input", "", "Merged export CSV to enrich (required)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "--input is required")
		return 2
	}

	_, logger, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	outputPath, err := enrich.File(*inputPath, logger)
	if err != nil {
		logger.Error().Err(err).Str("input", *inputPath).Msg("enrichment failed")
		fmt.Fprintf(os.Stderr, "Enrichment failed: %v\n", err)
		return 1
	}

	fmt.Printf("ok: enriched export written to %s\n", outputPath)
	return 0
}
