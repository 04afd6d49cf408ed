package machines

import (
	"testing"

	"github.com/fabrikdata/firmenmatch/internal/table"
)

func TestCategorizeParkSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  string
	}{
		{"", ""},
		{"abc", ""},
		{"300000", "10-15"},
		{"700000", "10-15"},
		{"700001", "15-20"},
		{"1250000.0", "40-60"},
		{"2500000", "80-120"},
		{"99000000", "350-600"},
		{"99000001", "No Match"},
		{"150000", "No Match"},
	}
	for _, tt := range tests {
		if got := CategorizeParkSize(tt.value); got != tt.want {
			t.Errorf("CategorizeParkSize(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestProcessReport(t *testing.T) {
	t.Parallel()

	report := table.New([]string{"Company", "Machine_1", "Machine_2", "Machine_3"})
	report.AppendRow([]string{"Mueller_GmbH", "1250000", "80000", "15000"})
	report.AppendRow([]string{"Alpha Technik", "kaputt", "950000", "400000"})
	report.AppendRow([]string{"Mueller_GmbH", "", "60000", ""})

	out, err := ProcessReport(report, 2)
	if err != nil {
		t.Fatalf("ProcessReport: %v", err)
	}
	wantCols := []string{"Company", "Top1_Machine", "Top2_Machine", "Maschinen_Park_Size"}
	if len(out.Columns) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", out.Columns, wantCols)
	}
	for i, col := range wantCols {
		if out.Columns[i] != col {
			t.Fatalf("columns = %v, want %v", out.Columns, wantCols)
		}
	}
	if out.Len() != 2 {
		t.Fatalf("rows = %d, want 2", out.Len())
	}

	// Companies come out sorted, underscores replaced with spaces.
	if got := out.Get(0, "Company"); got != "Alpha Technik" {
		t.Errorf("row 0 company = %q", got)
	}
	if got := out.Get(0, "Top1_Machine"); got != "950000" {
		t.Errorf("Alpha Top1 = %q, want 950000", got)
	}
	if got := out.Get(0, "Maschinen_Park_Size"); got != "21-40" {
		t.Errorf("Alpha park size = %q, want 21-40", got)
	}

	if got := out.Get(1, "Company"); got != "Mueller GmbH" {
		t.Errorf("row 1 company = %q", got)
	}
	// 15000 is below the cutoff; the remaining values across both rows
	// are 1250000, 80000 and 60000, of which the top two survive.
	if got := out.Get(1, "Top1_Machine"); got != "1250000" {
		t.Errorf("Mueller Top1 = %q, want 1250000", got)
	}
	if got := out.Get(1, "Top2_Machine"); got != "80000" {
		t.Errorf("Mueller Top2 = %q, want 80000", got)
	}
	if got := out.Get(1, "Maschinen_Park_Size"); got != "40-60" {
		t.Errorf("Mueller park size = %q, want 40-60", got)
	}
}

func TestProcessReportSingleValueLeavesLowerRanksEmpty(t *testing.T) {
	t.Parallel()

	report := table.New([]string{"Company", "Machine_1"})
	report.AppendRow([]string{"Solo GmbH", "500000"})

	out, err := ProcessReport(report, 3)
	if err != nil {
		t.Fatalf("ProcessReport: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("rows = %d, want 1", out.Len())
	}
	if got := out.Get(0, "Top2_Machine"); got != "" {
		t.Errorf("Top2 = %q, want empty", got)
	}
	if got := out.Get(0, "Top3_Machine"); got != "" {
		t.Errorf("Top3 = %q, want empty", got)
	}
	if got := out.Get(0, "Maschinen_Park_Size"); got != "10-15" {
		t.Errorf("park size = %q, want 10-15", got)
	}
}

func TestProcessReportEmptyInput(t *testing.T) {
	t.Parallel()

	report := table.New([]string{"Company", "Machine_1"})
	out, err := ProcessReport(report, 2)
	if err != nil {
		t.Fatalf("ProcessReport: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("rows = %d, want 0", out.Len())
	}
	if out.ColumnIndex("Maschinen_Park_Size") < 0 {
		t.Fatal("empty result must still carry the park-size column")
	}
}

func TestProcessReportRequiresCompanyColumn(t *testing.T) {
	t.Parallel()

	report := table.New([]string{"Firma", "Machine_1"})
	if _, err := ProcessReport(report, 1); err == nil {
		t.Fatal("expected error without a Company column")
	}
	report = table.New([]string{"Company", "Machine_1"})
	if _, err := ProcessReport(report, 0); err == nil {
		t.Fatal("expected error for non-positive topN")
	}
}
