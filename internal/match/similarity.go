package match

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Ratio returns a similarity score in [0,1] based on the edit distance
// between a and b, measured in runes. Identical non-empty strings score
// 1.0; an empty string scores 0 against anything, including itself.
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	longest := utf8.RuneCountInString(a)
	if lb := utf8.RuneCountInString(b); lb > longest {
		longest = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	score := 1 - float64(dist)/float64(longest)
	if score < 0 {
		return 0
	}
	return score
}

// TokenSetRatio scores two strings on their whitespace-delimited token
// sets, tolerant of word reordering and partial overlap. It builds the
// sorted token intersection t0 and the two sorted full variants
// t0+diff(a) and t0+diff(b), and returns the best pairwise Ratio. When
// one token set contains the other the score is 1.0.
func TokenSetRatio(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for tok := range tokensA {
		if _, ok := tokensB[tok]; ok {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tokensB {
		if _, ok := tokensA[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(common, " ")
	full1 := joinTokens(common, onlyA)
	full2 := joinTokens(common, onlyB)

	best := Ratio(base, full1)
	if s := Ratio(base, full2); s > best {
		best = s
	}
	if s := Ratio(full1, full2); s > best {
		best = s
	}
	return best
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func joinTokens(common, rest []string) string {
	joined := strings.Join(common, " ")
	if len(rest) == 0 {
		return joined
	}
	if joined == "" {
		return strings.Join(rest, " ")
	}
	return joined + " " + strings.Join(rest, " ")
}
