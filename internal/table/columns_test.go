package table

import (
	"errors"
	"strings"
	"testing"
)

func TestFindColumnCaseInsensitive(t *testing.T) {
	t.Parallel()

	tbl := New([]string{"COMPANY NAME", "Webseite", "url"})
	actual, ok := FindColumn(tbl, CompanyNameAliases)
	if !ok || actual != "COMPANY NAME" {
		t.Fatalf("expected COMPANY NAME, got %q ok=%v", actual, ok)
	}

	actual, ok = FindColumn(tbl, SourceURLPriority)
	if !ok || actual != "url" {
		t.Fatalf("expected url, got %q ok=%v", actual, ok)
	}
}

func TestFindColumnHonorsPriority(t *testing.T) {
	t.Parallel()

	tbl := New([]string{"url", "Website"})
	actual, ok := FindColumn(tbl, SourceURLPriority)
	if !ok || actual != "Website" {
		t.Fatalf("Website outranks url in the priority list, got %q", actual)
	}
}

func TestResolveBaseColumnsRenames(t *testing.T) {
	t.Parallel()

	tbl := New([]string{"company", "city", "top1machine", "website", "park_size", "assets"})
	resolved, err := ResolveBaseColumns(tbl)
	if err != nil {
		t.Fatalf("ResolveBaseColumns failed: %v", err)
	}
	for _, canonical := range BaseColumnOrder {
		if !resolved[canonical] {
			t.Fatalf("expected %s to resolve, got %v", canonical, resolved)
		}
		if tbl.ColumnIndex(canonical) == -1 {
			t.Fatalf("expected column renamed to %s, have %v", canonical, tbl.Columns)
		}
	}
}

func TestResolveBaseColumnsMissingEssentials(t *testing.T) {
	t.Parallel()

	// Only name and one technical field: URL and location are missing,
	// which must fail before any matching happens.
	tbl := New([]string{"Firma1", "Sachanlagen"})
	_, err := ResolveBaseColumns(tbl)
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	for _, missing := range []string{"Ort", "Top1_Machine", "URL"} {
		if !strings.Contains(err.Error(), missing) {
			t.Fatalf("error should name %s: %v", missing, err)
		}
	}
}
