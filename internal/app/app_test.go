package app

import "testing"

func TestRunDispatch(t *testing.T) {
	if got := Run(nil); got != 2 {
		t.Fatalf("Run(nil) = %d, want 2", got)
	}
	if got := Run([]string{"help"}); got != 0 {
		t.Fatalf("Run(help) = %d, want 0", got)
	}
	if got := Run([]string{"frobnicate"}); got != 2 {
		t.Fatalf("Run(unknown) = %d, want 2", got)
	}
}

func TestRunMergeRequiresPaths(t *testing.T) {
	if got := Run([]string{"merge"}); got != 2 {
		t.Fatalf("merge without flags = %d, want 2", got)
	}
	if got := Run([]string{"merge", "--source", "x.csv"}); got != 2 {
		t.Fatalf("merge without base = %d, want 2", got)
	}
}

func TestRunMachinesValidatesFlags(t *testing.T) {
	if got := Run([]string{"machines"}); got != 2 {
		t.Fatalf("machines without flags = %d, want 2", got)
	}
	args := []string{"machines", "--report", "r.csv", "--companies", "c.csv", "--output", "o.csv", "--top-n", "0"}
	if got := Run(args); got != 2 {
		t.Fatalf("machines with top-n 0 = %d, want 2", got)
	}
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	if format, err := parseOutputFormat("", outputFormatTable); err != nil || format != outputFormatTable {
		t.Fatalf("default format = (%q, %v)", format, err)
	}
	if format, err := parseOutputFormat("JSON", outputFormatTable); err != nil || format != outputFormatJSON {
		t.Fatalf("json format = (%q, %v)", format, err)
	}
	if _, err := parseOutputFormat("yaml", outputFormatTable); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
