package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fabrikdata/firmenmatch/internal/cli"
	"github.com/fabrikdata/firmenmatch/internal/db"
)

func runRuns(args []string) int {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	format := fs.String("format", outputFormatTable, "Output format: table or json")
	limit := fs.Int("limit", 25, "Maximum runs to list")
	offset := fs.Int("offset", 0, "Runs to skip")
	runUUID := fs.String("uuid", "", "Show one run with its match decisions")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "runs does not accept positional arguments")
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	ctx, cancel, pool, logger, err := connectReadPool(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	if *runUUID != "" {
		run, err := pool.GetMergeRun(ctx, *runUUID)
		if err != nil {
			if errors.Is(err, db.ErrNoRows) {
				fmt.Fprintf(os.Stderr, "Merge run %s not found\n", *runUUID)
				return 1
			}
			logger.Error().Err(err).Str("run_uuid", *runUUID).Msg("failed to load merge run")
			fmt.Fprintf(os.Stderr, "Failed to load merge run: %v\n", err)
			return 1
		}
		decisions, err := pool.ListMatchDecisions(ctx, run.RunID, *limit, *offset)
		if err != nil {
			logger.Error().Err(err).Str("run_uuid", *runUUID).Msg("failed to load match decisions")
			fmt.Fprintf(os.Stderr, "Failed to load match decisions: %v\n", err)
			return 1
		}
		if err := printJSON(map[string]any{"run": run, "decisions": decisions}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print run: %v\n", err)
			return 1
		}
		return 0
	}

	runs, err := pool.ListMergeRuns(ctx, *limit, *offset)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list merge runs")
		fmt.Fprintf(os.Stderr, "Failed to list merge runs: %v\n", err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(runs); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print runs: %v\n", err)
			return 1
		}
		return 0
	}

	headers := []string{"RUN_UUID", "KIND", "STARTED_AT", "TOTAL", "MATCHED", "UNMATCHED", "OUTPUT"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		matched := run.TotalRows - run.Unmatched
		rows = append(rows, []string{
			run.RunUUID,
			run.Kind,
			formatUTCTimestamp(run.StartedAt),
			strconv.Itoa(run.TotalRows),
			strconv.Itoa(matched),
			strconv.Itoa(run.Unmatched),
			run.OutputPath,
		})
	}
	if err := writeTable(headers, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to print runs: %v\n", err)
		return 1
	}
	return 0
}
