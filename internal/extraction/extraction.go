// Package extraction turns validated crawler exports into the fixed
// keyword CSV layout the merge pipeline consumes.
package extraction

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fabrikdata/firmenmatch/internal/table"
	exportschema "github.com/fabrikdata/firmenmatch/schema"
)

// Each of products/machines/process_type contributes exactly three
// columns to the export, padded or truncated as needed.
const arrayColumns = 3

// ExportColumns is the fixed header layout of a converted export.
var ExportColumns = []string{
	"Company name", "Company Url", "Lohnfertigung(True/False)",
	"Produkte_1", "Produkte_2", "Produkte_3",
	"Maschinen_1", "Maschinen_2", "Maschinen_3",
	"Prozess_1", "Prozess_2", "Prozess_3",
}

// ToTable lays the extraction records out in the export layout.
func ToTable(items []exportschema.CompanyExtraction) *table.Table {
	t := table.New(ExportColumns)
	for _, item := range items {
		row := make([]string, 0, len(ExportColumns))
		row = append(row, item.CompanyName, item.CompanyURL, formatBool(item.Lohnfertigung))
		row = append(row, padArray(item.Products)...)
		row = append(row, padArray(item.Machines)...)
		row = append(row, padArray(item.ProcessType)...)
		t.AppendRow(row)
	}
	return t
}

// ConvertFile validates a crawler JSON export and writes it as CSV.
// outputPath defaults to the input path with a .csv extension.
func ConvertFile(inputPath, outputPath string, logger zerolog.Logger) (string, error) {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}

	items, err := exportschema.ValidateCompanyExtraction(raw)
	if err != nil {
		return "", fmt.Errorf("validate export %s: %w", inputPath, err)
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}
	if err := ToTable(items).WriteCSV(outputPath); err != nil {
		return "", fmt.Errorf("write converted export: %w", err)
	}

	logger.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("companies", len(items)).
		Msg("export converted")
	return outputPath, nil
}

func padArray(values []string) []string {
	out := make([]string, arrayColumns)
	copy(out, values)
	return out
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
