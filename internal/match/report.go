package match

import "github.com/rs/zerolog"

// Statistics aggregates one merge run's match outcomes. It is always
// recomputed from the full result set, never incremented in place.
type Statistics struct {
	Total            int `json:"total"`
	ExactName        int `json:"exact_name_matches"`
	FuzzyName        int `json:"fuzzy_name_matches"`
	ExactDomain      int `json:"exact_url_matches"`
	FuzzyDomain      int `json:"fuzzy_url_matches"`
	Unmatched        int `json:"unmatched"`
	DuplicateDomains int `json:"duplicate_domains"`
}

// Summarize derives statistics from a run's results.
func Summarize(results []Result) Statistics {
	stats := Statistics{Total: len(results)}
	for _, r := range results {
		switch r.Method {
		case MethodExactName:
			stats.ExactName++
		case MethodFuzzyName:
			stats.FuzzyName++
		case MethodExactDomain:
			stats.ExactDomain++
		case MethodFuzzyDomain:
			stats.FuzzyDomain++
		default:
			stats.Unmatched++
		}
		if r.DuplicateDomain {
			stats.DuplicateDomains++
		}
	}
	return stats
}

// Matched is the number of source rows that found a base counterpart.
func (s Statistics) Matched() int {
	return s.Total - s.Unmatched
}

// Percent expresses count relative to the total source rows.
func (s Statistics) Percent(count int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(count) / float64(s.Total) * 100
}

// LogSummary renders the human-readable statistics block. Rendering is
// logging only; callers consume the Statistics value programmatically.
func (s Statistics) LogSummary(logger zerolog.Logger) {
	logger.Info().
		Int("total_rows", s.Total).
		Int("matched", s.Matched()).
		Float64("matched_pct", s.Percent(s.Matched())).
		Msg("matching statistics summary")
	logger.Info().
		Int("exact_name", s.ExactName).
		Float64("exact_name_pct", s.Percent(s.ExactName)).
		Int("fuzzy_name", s.FuzzyName).
		Float64("fuzzy_name_pct", s.Percent(s.FuzzyName)).
		Msg("name matches")
	logger.Info().
		Int("exact_url", s.ExactDomain).
		Float64("exact_url_pct", s.Percent(s.ExactDomain)).
		Int("fuzzy_url", s.FuzzyDomain).
		Float64("fuzzy_url_pct", s.Percent(s.FuzzyDomain)).
		Msg("url matches")
	logger.Info().
		Int("unmatched", s.Unmatched).
		Float64("unmatched_pct", s.Percent(s.Unmatched)).
		Int("duplicate_domains", s.DuplicateDomains).
		Msg("unmatched and collisions")
}
