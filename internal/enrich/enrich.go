package enrich

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fabrikdata/firmenmatch/internal/table"
)

// HoursMultiplier converts the estimated machine count into yearly
// hours of saving. Calibrated against the field data, not tunable.
const HoursMultiplier = 375

var firstNumberPattern = regexp.MustCompile(`^(\d+)-?\d*`)

// FirstNumber extracts the lower bound of a park-size range like
// "15-20". "No Match" and anything that does not start with digits
// yields no value.
func FirstNumber(rangeValue string) (int, bool) {
	if rangeValue == "No Match" {
		return 0, false
	}
	m := firstNumberPattern.FindStringSubmatch(rangeValue)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Apply adds the Maschinen_Park_var and hours_of_saving columns derived
// from Maschinen_Park_Size. Rows without a usable range keep both cells
// empty.
func Apply(t *table.Table) error {
	if t.ColumnIndex("Maschinen_Park_Size") < 0 {
		return fmt.Errorf("missing required column: Maschinen_Park_Size")
	}
	t.AddColumn("Maschinen_Park_var")
	t.AddColumn("hours_of_saving")
	for i := 0; i < t.Len(); i++ {
		n, ok := FirstNumber(t.Get(i, "Maschinen_Park_Size"))
		if !ok {
			continue
		}
		t.Set(i, "Maschinen_Park_var", strconv.Itoa(n))
		t.Set(i, "hours_of_saving", strconv.Itoa(n*HoursMultiplier))
	}
	return nil
}

// File enriches a merged export in place on disk. The output lands next
// to the input as enriched_<name>; an input with no data rows produces
// an empty output file.
func File(inputPath string, logger zerolog.Logger) (string, error) {
	outputPath := filepath.Join(filepath.Dir(inputPath), "enriched_"+filepath.Base(inputPath))

	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file not found: %s: %w", inputPath, err)
	}
	t, err := table.ReadCSV(inputPath)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if t.Len() == 0 {
		logger.Info().Str("input", inputPath).Msg("input has no data rows, writing empty output")
		if err := os.WriteFile(outputPath, nil, 0o644); err != nil {
			return "", fmt.Errorf("write empty output: %w", err)
		}
		return outputPath, nil
	}

	if err := Apply(t); err != nil {
		return "", err
	}
	if err := t.WriteCSV(outputPath); err != nil {
		return "", fmt.Errorf("write enriched output: %w", err)
	}

	logger.Info().
		Str("output", outputPath).
		Int("rows", t.Len()).
		Msg("enrichment completed")
	return outputPath, nil
}
