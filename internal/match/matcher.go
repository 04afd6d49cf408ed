package match

import (
	"strings"

	"github.com/rs/zerolog"
)

// Method records how a source record was matched against the base list.
type Method string

const (
	MethodExactName   Method = "exact_name"
	MethodFuzzyName   Method = "fuzzy_name"
	MethodExactDomain Method = "exact_domain"
	MethodFuzzyDomain Method = "fuzzy_domain"
	MethodNone        Method = "none"
)

// Company is the minimal view of a record the matcher needs.
type Company struct {
	Name string
	URL  string
}

// Result is the outcome for one source record. BaseIndex is -1 exactly
// when Method is MethodNone. Results are produced once per run and not
// mutated afterwards.
type Result struct {
	SourceIndex     int
	BaseIndex       int
	Method          Method
	Score           float64
	DuplicateDomain bool
}

// Matched reports whether the source record found a base counterpart.
func (r Result) Matched() bool {
	return r.Method != MethodNone
}

// Config carries the tunable thresholds. The two merge paths in the
// field data use different name thresholds (0.90 for keyword merges,
// 0.85 for machine reports), so this is configuration, not a constant.
type Config struct {
	NameThreshold   float64
	DomainThreshold float64
	FoldDiacritics  bool
}

// DefaultConfig mirrors the keyword-merge defaults.
func DefaultConfig() Config {
	return Config{NameThreshold: 0.90, DomainThreshold: 0.90}
}

// Matcher reconciles a noisy source company list against a base list in
// two passes: normalized names first, then extracted base domains for
// whatever is left. Unmatched is a valid terminal state, never an error.
type Matcher struct {
	cfg    Config
	logger zerolog.Logger
}

func NewMatcher(cfg Config, logger zerolog.Logger) *Matcher {
	if cfg.NameThreshold <= 0 {
		cfg.NameThreshold = 0.90
	}
	if cfg.DomainThreshold <= 0 {
		cfg.DomainThreshold = 0.90
	}
	return &Matcher{cfg: cfg, logger: logger}
}

// Match returns exactly one Result per source record, in source order.
func (m *Matcher) Match(source, base []Company) []Result {
	baseKeys := make([]string, len(base))
	for i, b := range base {
		baseKeys[i] = m.comparisonKey(b.Name)
	}

	results := make([]Result, len(source))
	var leftover []int

	for i, src := range source {
		results[i] = Result{SourceIndex: i, BaseIndex: -1, Method: MethodNone}

		key := m.comparisonKey(src.Name)
		if key == "" {
			leftover = append(leftover, i)
			continue
		}

		if j, ok := firstExact(baseKeys, key); ok {
			results[i] = Result{SourceIndex: i, BaseIndex: j, Method: MethodExactName, Score: 1.0}
			continue
		}

		bestScore, bestIdx := 0.0, -1
		for j, bk := range baseKeys {
			if bk == "" {
				continue
			}
			if score := TokenSetRatio(key, bk); score > bestScore {
				bestScore, bestIdx = score, j
			}
		}
		if bestIdx >= 0 && bestScore >= m.cfg.NameThreshold {
			results[i] = Result{SourceIndex: i, BaseIndex: bestIdx, Method: MethodFuzzyName, Score: bestScore}
			m.logger.Debug().
				Str("source", src.Name).
				Str("matched", base[bestIdx].Name).
				Float64("score", bestScore).
				Msg("fuzzy name match")
			continue
		}
		leftover = append(leftover, i)
	}

	if len(leftover) > 0 {
		m.matchByDomain(source, base, leftover, results)
	}
	return results
}

// matchByDomain is the second pass. Each base domain can be claimed at
// most once, in source-row order, so one base company cannot absorb
// several source rows through the same URL.
func (m *Matcher) matchByDomain(source, base []Company, leftover []int, results []Result) {
	lookup := make(map[string][]int)
	var order []string // unique base domains in base-list order
	for j, b := range base {
		dom, ok := ExtractBaseDomain(b.URL)
		if !ok {
			continue
		}
		if _, seen := lookup[dom]; !seen {
			order = append(order, dom)
		}
		lookup[dom] = append(lookup[dom], j)
	}

	claimed := make(map[string]struct{})
	for _, i := range leftover {
		dom, ok := ExtractBaseDomain(source[i].URL)
		if !ok {
			continue
		}
		if _, used := claimed[dom]; used {
			continue
		}

		if indices, found := lookup[dom]; found {
			dup := m.noteCollision(dom, indices, base, 1.0)
			results[i] = Result{SourceIndex: i, BaseIndex: indices[0], Method: MethodExactDomain, Score: 1.0, DuplicateDomain: dup}
			claimed[dom] = struct{}{}
			continue
		}

		bestScore, bestDom := 0.0, ""
		for _, cand := range order {
			if _, used := claimed[cand]; used {
				continue
			}
			if score := Ratio(dom, cand); score > bestScore {
				bestScore, bestDom = score, cand
			}
		}
		if bestDom != "" && bestScore >= m.cfg.DomainThreshold {
			indices := lookup[bestDom]
			dup := m.noteCollision(bestDom, indices, base, bestScore)
			results[i] = Result{SourceIndex: i, BaseIndex: indices[0], Method: MethodFuzzyDomain, Score: bestScore, DuplicateDomain: dup}
			claimed[bestDom] = struct{}{}
		}
	}
}

// noteCollision warns when several base companies share one domain and
// reports whether a collision happened. The first company by base-list
// order wins deterministically.
func (m *Matcher) noteCollision(domain string, indices []int, base []Company, score float64) bool {
	if len(indices) <= 1 {
		return false
	}
	names := make([]string, 0, len(indices))
	for _, j := range indices {
		names = append(names, base[j].Name)
	}
	m.logger.Warn().
		Str("domain", domain).
		Float64("score", score).
		Strs("companies", names).
		Str("taking", names[0]).
		Msg("multiple base companies share domain")
	return true
}

func (m *Matcher) comparisonKey(name string) string {
	key := NormalizeComparison(name)
	if m.cfg.FoldDiacritics {
		key = FoldDiacritics(key)
	}
	return strings.TrimSpace(key)
}

func firstExact(keys []string, key string) (int, bool) {
	for j, k := range keys {
		if k != "" && k == key {
			return j, true
		}
	}
	return -1, false
}
