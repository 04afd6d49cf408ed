package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The registry writes the same legal form several ways; all variants
// collapse onto the first target so exact comparison can work at all.
var legalSuffixRewrites = [][2]string{
	{"GmbH & Co. KG.", "GmbH & Co. KG"},
	{"GmbH & Co.KG.", "GmbH & Co. KG"},
	{"GmbH & Co.KG", "GmbH & Co. KG"},
}

// NormalizeDisplay canonicalizes a company name for output: collapses
// repeated whitespace, trims, and unifies the "GmbH & Co. KG" legal-suffix
// spelling variants. The result is still human-readable and keeps case.
func NormalizeDisplay(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	for _, rewrite := range legalSuffixRewrites {
		name = strings.ReplaceAll(name, rewrite[0], rewrite[1])
	}
	return name
}

// NormalizeComparison produces the aggressive comparison key used for
// matching: display normalization plus lowercasing, "&" -> "and" and
// "_" -> " ". Idempotent: applying it twice yields the same string.
func NormalizeComparison(name string) string {
	name = NormalizeDisplay(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "&", "and")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.Join(strings.Fields(name), " ")
}

// CleanTrailingSymbols strips trailing commas and periods (and the
// whitespace around them) from a company name.
func CleanTrailingSymbols(name string) string {
	name = strings.TrimSpace(name)
	for name != "" {
		last := name[len(name)-1]
		if last != ',' && last != '.' {
			break
		}
		name = strings.TrimSpace(name[:len(name)-1])
	}
	return name
}

// FoldDiacritics removes combining marks (Müller -> Muller). Used as an
// optional extra comparison step when source and base lists disagree on
// umlaut spelling. Returns the input unchanged if the transform fails.
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
