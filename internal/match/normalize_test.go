package match

import "testing"

func TestNormalizeDisplay(t *testing.T) {
	t.Parallel()

	if got := NormalizeDisplay("  Müller   GmbH & Co.KG. "); got != "Müller GmbH & Co. KG" {
		t.Fatalf("unexpected display normalization: %q", got)
	}
	if got := NormalizeDisplay("Krause GmbH & Co.KG"); got != "Krause GmbH & Co. KG" {
		t.Fatalf("unexpected suffix unification: %q", got)
	}
	if got := NormalizeDisplay("Schulz GmbH & Co. KG."); got != "Schulz GmbH & Co. KG" {
		t.Fatalf("unexpected suffix unification: %q", got)
	}
	if got := NormalizeDisplay("Plain AG"); got != "Plain AG" {
		t.Fatalf("expected untouched name, got %q", got)
	}
}

func TestNormalizeDisplayIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Müller GmbH & Co.KG.",
		"  spaced   out  ",
		"Under_Score & Partner",
		"",
	}
	for _, in := range inputs {
		once := NormalizeDisplay(in)
		if twice := NormalizeDisplay(once); twice != once {
			t.Fatalf("NormalizeDisplay not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeComparison(t *testing.T) {
	t.Parallel()

	if got := NormalizeComparison("Müller GmbH & Co.KG."); got != "müller gmbh and co. kg" {
		t.Fatalf("unexpected comparison key: %q", got)
	}
	if got := NormalizeComparison("ACME_Stahl & Sohn"); got != "acme stahl and sohn" {
		t.Fatalf("unexpected comparison key: %q", got)
	}

	for _, in := range []string{"Müller GmbH & Co.KG.", "A_B & C", ""} {
		once := NormalizeComparison(in)
		if twice := NormalizeComparison(once); twice != once {
			t.Fatalf("NormalizeComparison not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCleanTrailingSymbols(t *testing.T) {
	t.Parallel()

	if got := CleanTrailingSymbols("Acme GmbH,"); got != "Acme GmbH" {
		t.Fatalf("unexpected cleaned name: %q", got)
	}
	if got := CleanTrailingSymbols("Beta AG ,. "); got != "Beta AG" {
		t.Fatalf("unexpected cleaned name: %q", got)
	}
	if got := CleanTrailingSymbols("Gamma KG"); got != "Gamma KG" {
		t.Fatalf("expected untouched name, got %q", got)
	}
	if got := CleanTrailingSymbols(",."); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestFoldDiacritics(t *testing.T) {
	t.Parallel()

	if got := FoldDiacritics("müller straße"); got != "muller straße" {
		t.Fatalf("unexpected folded string: %q", got)
	}
	if got := FoldDiacritics("plain"); got != "plain" {
		t.Fatalf("expected untouched string, got %q", got)
	}
}
