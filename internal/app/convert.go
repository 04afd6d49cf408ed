package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fabrikdata/firmenmatch/internal/cli"
	"github.com/fabrikdata/firmenmatch/internal/extraction"
)

func runConvert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	inputPath := fs.String("input", "", "Crawler JSON export (required)")
	outputPath := fs.String("output", "", "Output CSV path (default: input path with .csv)")

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

	out, err := extraction.ConvertFile(*inputPath, *outputPath, logger)
	if err != nil {
		logger.Error().Err(err).Str("input", *inputPath).Msg("conversion failed")
		fmt.Fprintf(os.Stderr, "Conversion failed: %v\n", err)
		return 1
	}

	fmt.Printf("ok: converted export written to %s\n", out)
	return 0
}
