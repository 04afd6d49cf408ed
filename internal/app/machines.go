package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fabrikdata/firmenmatch/internal/cli"
	"github.com/fabrikdata/firmenmatch/internal/machines"
	"github.com/fabrikdata/firmenmatch/internal/table"
)

func runMachines(args []string) int {
	fs := flag.NewFlagSet("machines", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	reportPath := fs.String("report", "", "Machine report CSV (required)")
	companiesPath := fs.String("companies", "", "Company base table, .csv or .xlsx (required)")
	sachanlagenPath := fs.String("sachanlagen", "", "Fixed-assets CSV (optional)")
	outputPath := fs.String("output", "", "Output CSV path (required)")
	topN := fs.Int("top-n", 1, "Number of top machine values per company")
	threshold := fs.Float64("threshold", 0.85, "Name-match threshold")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *reportPath == "" || *companiesPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "--report, --companies and --output are required")
		return 2
	}
	if *topN < 1 {
		fmt.Fprintln(os.Stderr, "--top-n must be at least 1")
		return 2
	}
	if *threshold <= 0 || *threshold > 1 {
		fmt.Fprintln(os.Stderr, "--threshold must be in (0, 1]")
		return 2
	}

	_, logger, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	report, err := table.ReadCSV(*reportPath)
	if err != nil {
		logger.Error().Err(err).Str("path", *reportPath).Msg("failed to read machine report")
		fmt.Fprintf(os.Stderr, "Failed to read machine report: %v\n", err)
		return 1
	}
	companies, err := table.Load(*companiesPath)
	if err != nil {
		logger.Error().Err(err).Str("path", *companiesPath).Msg("failed to read company table")
		fmt.Fprintf(os.Stderr, "Failed to read company table: %v\n", err)
		return 1
	}

	processed, err := machines.ProcessReport(report, *topN)
	if err != nil {
		logger.Error().Err(err).Msg("failed to process machine report")
		fmt.Fprintf(os.Stderr, "Failed to process machine report: %v\n", err)
		return 1
	}

	merger := machines.NewMerger(*threshold, logger)
	merged, err := merger.MergeWithCompanies(processed, companies)
	if err != nil {
		logger.Error().Err(err).Msg("machine merge failed")
		fmt.Fprintf(os.Stderr, "Machine merge failed: %v\n", err)
		return 1
	}

	var sachanlagen *table.Table
	if *sachanlagenPath != "" {
		sachanlagen, err = table.ReadCSV(*sachanlagenPath)
		if err != nil {
			logger.Error().Err(err).Str("path", *sachanlagenPath).Msg("failed to read fixed-assets table")
			fmt.Fprintf(os.Stderr, "Failed to read fixed-assets table: %v\n", err)
			return 1
		}
	}
	merged = merger.MergeSachanlagen(merged, sachanlagen)
	merged = merger.Finalize(merged)

	if err := merged.WriteCSV(*outputPath); err != nil {
		logger.Error().Err(err).Str("path", *outputPath).Msg("failed to write merged report")
		fmt.Fprintf(os.Stderr, "Failed to write merged report: %v\n", err)
		return 1
	}

	logger.Info().
		Str("output", *outputPath).
		Int("rows", merged.Len()).
		Msg("machine merge completed")
	fmt.Printf("ok: merged report written to %s\n", *outputPath)
	return 0
}
