package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fabrikdata/firmenmatch/internal/table"
)

func TestFirstNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  int
		ok    bool
	}{
		{"15-20", 15, true},
		{"350-600", 350, true},
		{"40", 40, true},
		{"No Match", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"-20", 0, false},
	}
	for _, tt := range tests {
		got, ok := FirstNumber(tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FirstNumber(%q) = (%d, %v), want (%d, %v)", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"Firma1", "Maschinen_Park_Size"})
	tbl.AppendRow([]string{"Alpha GmbH", "15-20"})
	tbl.AppendRow([]string{"Beta GmbH", "No Match"})
	tbl.AppendRow([]string{"Gamma GmbH", ""})

	if err := Apply(tbl); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := tbl.Get(0, "Maschinen_Park_var"); got != "15" {
		t.Errorf("Alpha park var = %q, want 15", got)
	}
	if got := tbl.Get(0, "hours_of_saving"); got != "5625" {
		t.Errorf("Alpha hours = %q, want 5625", got)
	}
	if got := tbl.Get(1, "Maschinen_Park_var"); got != "" {
		t.Errorf("No Match park var = %q, want empty", got)
	}
	if got := tbl.Get(2, "hours_of_saving"); got != "" {
		t.Errorf("empty range hours = %q, want empty", got)
	}
}

func TestApplyRequiresParkSizeColumn(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"Firma1"})
	if err := Apply(tbl); err == nil {
		t.Fatal("expected error without Maschinen_Park_Size column")
	}
}

func TestFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "final_export_maschinenbau.csv")
	content := "Firma1,Maschinen_Park_Size\nAlpha GmbH,21-40\n"
	if err := os.WriteFile(inputPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	outputPath, err := File(inputPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	want := filepath.Join(dir, "enriched_final_export_maschinenbau.csv")
	if outputPath != want {
		t.Fatalf("output path = %q, want %q", outputPath, want)
	}

	out, err := table.ReadCSV(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := out.Get(0, "Maschinen_Park_var"); got != "21" {
		t.Errorf("park var = %q, want 21", got)
	}
	if got := out.Get(0, "hours_of_saving"); got != "7875" {
		t.Errorf("hours = %q, want 7875", got)
	}
}

func TestFileEmptyInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(inputPath, []byte("Firma1,Maschinen_Park_Size\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	outputPath, err := File(inputPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	info, err := os.Stat(outputPath)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("empty input must produce an empty output file, got %d bytes", info.Size())
	}
}

func TestFileMissingInput(t *testing.T) {
	t.Parallel()

	if _, err := File(filepath.Join(t.TempDir(), "missing.csv"), zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing input file")
	}
}
