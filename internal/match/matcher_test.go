package match

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTestMatcher(cfg Config) *Matcher {
	return NewMatcher(cfg, zerolog.Nop())
}

func TestMatchExactNamePrecedence(t *testing.T) {
	t.Parallel()

	source := []Company{{Name: "Acme Stahl GmbH"}}
	// A near-duplicate sits before the exact entry; exact equality must
	// still win with score 1.0.
	base := []Company{
		{Name: "Acme Stahlbau GmbH"},
		{Name: "Acme Stahl GmbH"},
	}

	results := newTestMatcher(DefaultConfig()).Match(source, base)
	if len(results) != 1 {
		t.Fatalf("expected one result per source row, got %d", len(results))
	}
	r := results[0]
	if r.Method != MethodExactName {
		t.Fatalf("expected exact_name, got %q", r.Method)
	}
	if r.BaseIndex != 1 {
		t.Fatalf("expected base index 1, got %d", r.BaseIndex)
	}
	if r.Score != 1.0 {
		t.Fatalf("expected score 1.0, got %v", r.Score)
	}
}

func TestMatchExactNameFirstWinsOnTie(t *testing.T) {
	t.Parallel()

	source := []Company{{Name: "Beta GmbH"}}
	base := []Company{
		{Name: "beta gmbh"},
		{Name: "Beta GmbH"},
	}

	r := newTestMatcher(DefaultConfig()).Match(source, base)[0]
	if r.Method != MethodExactName || r.BaseIndex != 0 {
		t.Fatalf("expected first base row to win the exact tie, got method %q index %d", r.Method, r.BaseIndex)
	}
}

func TestMatchFuzzyNameUmlautVariant(t *testing.T) {
	t.Parallel()

	source := []Company{{Name: "Müller GmbH & Co.KG."}}
	base := []Company{{Name: "Mueller GmbH & Co. KG"}}

	r := newTestMatcher(DefaultConfig()).Match(source, base)[0]
	if r.Method != MethodFuzzyName {
		t.Fatalf("expected fuzzy_name, got %q", r.Method)
	}
	if r.BaseIndex != 0 {
		t.Fatalf("expected base index 0, got %d", r.BaseIndex)
	}
	if r.Score < 0.90 || r.Score >= 1.0 {
		t.Fatalf("expected fuzzy score in [0.90,1.0), got %v", r.Score)
	}
}

func TestMatchUnmatchedRowIsTerminal(t *testing.T) {
	t.Parallel()

	source := []Company{{Name: "Völlig Unbekannt UG"}}
	base := []Company{{Name: "Acme Stahl GmbH", URL: "https://acme-stahl.de"}}

	r := newTestMatcher(DefaultConfig()).Match(source, base)[0]
	if r.Method != MethodNone {
		t.Fatalf("expected none, got %q", r.Method)
	}
	if r.BaseIndex != -1 {
		t.Fatalf("unmatched row must keep base index -1, got %d", r.BaseIndex)
	}
}

func TestMatchExactDomainFallback(t *testing.T) {
	t.Parallel()

	source := []Company{{Name: "völlig anders", URL: "https://www.acme-stahl.de/kontakt"}}
	base := []Company{{Name: "Acme Stahl GmbH", URL: "acme-stahl.de"}}

	r := newTestMatcher(DefaultConfig()).Match(source, base)[0]
	if r.Method != MethodExactDomain {
		t.Fatalf("expected exact_domain, got %q", r.Method)
	}
	if r.Score != 1.0 || r.BaseIndex != 0 {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r.DuplicateDomain {
		t.Fatalf("single-owner domain must not flag a collision")
	}
}

func TestMatchDuplicateDomainCollision(t *testing.T) {
	t.Parallel()

	source := []Company{{Name: "kein name treffer", URL: "https://example.com"}}
	base := []Company{
		{Name: "Erste Werke GmbH", URL: "https://example.com/werk1"},
		{Name: "Zweite Werke GmbH", URL: "https://example.com/werk2"},
	}

	r := newTestMatcher(DefaultConfig()).Match(source, base)[0]
	if r.Method != MethodExactDomain {
		t.Fatalf("expected exact_domain, got %q", r.Method)
	}
	if r.BaseIndex != 0 {
		t.Fatalf("collision must resolve to the first base row, got %d", r.BaseIndex)
	}
	if !r.DuplicateDomain {
		t.Fatalf("expected duplicate-domain flag")
	}

	stats := Summarize(newTestMatcher(DefaultConfig()).Match(source, base))
	if stats.DuplicateDomains != 1 {
		t.Fatalf("expected duplicate_domains = 1, got %d", stats.DuplicateDomains)
	}
}

func TestMatchFuzzyDomain(t *testing.T) {
	t.Parallel()

	source := []Company{{Name: "anders", URL: "https://examples.com"}}
	base := []Company{{Name: "Example GmbH", URL: "https://example.com"}}

	r := newTestMatcher(DefaultConfig()).Match(source, base)[0]
	if r.Method != MethodFuzzyDomain {
		t.Fatalf("expected fuzzy_domain, got %q", r.Method)
	}
	if r.Score < 0.90 || r.Score >= 1.0 {
		t.Fatalf("expected fuzzy score in [0.90,1.0), got %v", r.Score)
	}
}

func TestMatchDomainClaimedOnce(t *testing.T) {
	t.Parallel()

	source := []Company{
		{Name: "erster ohne namen", URL: "https://example.com/a"},
		{Name: "zweiter ohne namen", URL: "https://example.com/b"},
	}
	base := []Company{{Name: "Example GmbH", URL: "example.com"}}

	results := newTestMatcher(DefaultConfig()).Match(source, base)
	if results[0].Method != MethodExactDomain {
		t.Fatalf("first claimant should match, got %q", results[0].Method)
	}
	if results[1].Method != MethodNone {
		t.Fatalf("second claimant must stay unmatched, got %q", results[1].Method)
	}
}

func TestMatchNamePassDoesNotClaimDomains(t *testing.T) {
	t.Parallel()

	// Two source rows may share a base row when both matched by name.
	source := []Company{
		{Name: "Example GmbH"},
		{Name: "example gmbh"},
	}
	base := []Company{{Name: "Example GmbH", URL: "example.com"}}

	results := newTestMatcher(DefaultConfig()).Match(source, base)
	for i, r := range results {
		if r.Method != MethodExactName || r.BaseIndex != 0 {
			t.Fatalf("row %d: expected exact_name on base 0, got %+v", i, r)
		}
	}
}

func TestMatchFoldDiacriticsOption(t *testing.T) {
	t.Parallel()

	source := []Company{{Name: "Müller GmbH"}}
	base := []Company{{Name: "Muller GmbH"}}

	cfg := DefaultConfig()
	cfg.FoldDiacritics = true
	r := newTestMatcher(cfg).Match(source, base)[0]
	if r.Method != MethodExactName {
		t.Fatalf("expected exact_name with folding enabled, got %q", r.Method)
	}
}

func TestMatchOneResultPerSourceRow(t *testing.T) {
	t.Parallel()

	source := []Company{
		{Name: "Acme Stahl GmbH"},
		{Name: ""},
		{Name: "unbekannt", URL: "nicht mal eine url"},
	}
	base := []Company{{Name: "Acme Stahl GmbH"}}

	results := newTestMatcher(DefaultConfig()).Match(source, base)
	if len(results) != len(source) {
		t.Fatalf("expected %d results, got %d", len(source), len(results))
	}
	for i, r := range results {
		if r.SourceIndex != i {
			t.Fatalf("result %d has source index %d", i, r.SourceIndex)
		}
		if (r.BaseIndex == -1) != (r.Method == MethodNone) {
			t.Fatalf("base index and method disagree: %+v", r)
		}
	}
}
