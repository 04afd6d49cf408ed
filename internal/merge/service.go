package merge

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fabrikdata/firmenmatch/internal/db"
	"github.com/fabrikdata/firmenmatch/internal/match"
	"github.com/fabrikdata/firmenmatch/internal/table"
)

// TechnicalDataColumn is the export column carrying the matched
// company's technical-equipment value.
const TechnicalDataColumn = "technische Anlagen und Maschinen 2021/22"

// Columns copied from a matched base row into the export.
var enrichmentColumns = []string{TechnicalDataColumn, "Ort", "Sachanlagen", "Maschinen_Park_Size"}

// Request describes one keyword merge.
type Request struct {
	SourcePath string
	BasePath   string
	OutputPath string  // derived from SourcePath when empty
	Threshold  float64 // name threshold override; 0 keeps the configured value
}

// Outcome is what a completed merge reports back.
type Outcome struct {
	OutputPath string           `json:"output_path"`
	RunUUID    string           `json:"run_uuid,omitempty"`
	Stats      match.Statistics `json:"stats"`
}

// Service runs keyword merges: load both tables, reconcile source rows
// against the base list, write the left-outer-join export, and persist
// the audit trail when a pool is attached (nil pool = log-only).
type Service struct {
	pool   *db.Pool
	logger zerolog.Logger
	cfg    match.Config
}

func NewService(pool *db.Pool, logger zerolog.Logger, cfg match.Config) *Service {
	return &Service{pool: pool, logger: logger, cfg: cfg}
}

// Run executes one merge. Load-time problems (missing files, missing
// essential columns, unsupported formats) fail fast; unmatched rows are
// not errors and stay in the export with empty technical fields.
func (s *Service) Run(ctx context.Context, req Request) (*Outcome, error) {
	startedAt := time.Now().UTC()

	if _, err := os.Stat(req.SourcePath); err != nil {
		return nil, fmt.Errorf("source file not found: %s: %w", req.SourcePath, err)
	}
	if _, err := os.Stat(req.BasePath); err != nil {
		return nil, fmt.Errorf("base file not found: %s: %w", req.BasePath, err)
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = DeriveOutputPath(req.SourcePath)
		s.logger.Info().Str("output", outputPath).Msg("no output path given, derived from source filename")
	}
	outputPath = EnsureCSVExtension(outputPath)

	source, err := table.ReadCSV(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source table: %w", err)
	}
	s.logger.Info().Int("rows", source.Len()).Str("path", req.SourcePath).Msg("source table loaded")

	base, err := table.Load(req.BasePath)
	if err != nil {
		return nil, fmt.Errorf("read base table: %w", err)
	}
	s.logger.Info().Int("rows", base.Len()).Str("path", req.BasePath).Msg("base table loaded")

	resolved, err := table.ResolveBaseColumns(base)
	if err != nil {
		return nil, fmt.Errorf("resolve base columns: %w", err)
	}
	if !resolved["Top1_Machine"] {
		s.logger.Warn().Msg("base table has no Top1_Machine column, technical data will be empty")
	}

	nameColumn, ok := table.FindColumn(source, table.CompanyNameAliases)
	if !ok {
		return nil, fmt.Errorf("%w: source table needs a company-name column (tried %v)",
			table.ErrMissingColumns, table.CompanyNameAliases)
	}
	urlColumn, hasURL := table.FindColumn(source, table.SourceURLPriority)
	if !hasURL {
		s.logger.Warn().Strs("tried", table.SourceURLPriority).Msg("no URL column in source table, domain pass disabled")
	}

	cleanBaseNames(base, s.logger)

	sources := make([]match.Company, source.Len())
	for i := range sources {
		sources[i] = match.Company{Name: source.Get(i, nameColumn)}
		if hasURL {
			sources[i].URL = source.Get(i, urlColumn)
		}
	}
	bases := make([]match.Company, base.Len())
	for i := range bases {
		bases[i] = match.Company{
			Name: base.Get(i, "Firma1"),
			URL:  base.Get(i, "URL"),
		}
	}

	cfg := s.cfg
	if req.Threshold > 0 {
		cfg.NameThreshold = req.Threshold
	}
	results := match.NewMatcher(cfg, s.logger).Match(sources, bases)

	output := buildOutput(source, base, results, s.logger)
	if err := output.WriteCSV(outputPath); err != nil {
		return nil, fmt.Errorf("write merged export: %w", err)
	}

	stats := match.Summarize(results)
	stats.LogSummary(s.logger)
	logUnmatched(s.logger, sources, results)

	outcome := &Outcome{OutputPath: outputPath, Stats: stats}
	if s.pool != nil {
		runUUID, err := s.persist(ctx, req, outputPath, cfg, sources, bases, results, stats, startedAt)
		if err != nil {
			return nil, fmt.Errorf("persist audit trail: %w", err)
		}
		outcome.RunUUID = runUUID
	}

	s.logger.Info().
		Str("output", outputPath).
		Int("rows", output.Len()).
		Dur("elapsed", time.Since(startedAt)).
		Msg("merge completed")
	return outcome, nil
}

// cleanBaseNames strips trailing punctuation and unifies legal-suffix
// spellings on the base company names before any comparison.
func cleanBaseNames(base *table.Table, logger zerolog.Logger) {
	cleaned := 0
	for i := 0; i < base.Len(); i++ {
		name := base.Get(i, "Firma1")
		fixed := match.NormalizeDisplay(match.CleanTrailingSymbols(name))
		if fixed != name {
			base.Set(i, "Firma1", fixed)
			cleaned++
		}
	}
	if cleaned > 0 {
		logger.Info().Int("count", cleaned).Msg("cleaned base company names")
	}
}

// buildOutput produces the left outer join: every source row survives,
// matched rows gain the base record's designated fields.
func buildOutput(source, base *table.Table, results []match.Result, logger zerolog.Logger) *table.Table {
	output := source.Clone()
	// A source column literally named URL is scratch input for the
	// domain pass and does not belong in the export.
	output.DropColumns("URL")
	if base.ColumnIndex("Top1_Machine") >= 0 {
		// The export renames the machine column to its reporting label.
		base = base.Clone()
		base.RenameColumn("Top1_Machine", TechnicalDataColumn)
	}
	for _, col := range enrichmentColumns {
		output.AddColumn(col)
	}

	for _, r := range results {
		if !r.Matched() {
			continue
		}
		for _, col := range enrichmentColumns {
			if base.ColumnIndex(col) >= 0 {
				output.Set(r.SourceIndex, col, base.Get(r.BaseIndex, col))
			}
		}

		tech := output.Get(r.SourceIndex, TechnicalDataColumn)
		sach := output.Get(r.SourceIndex, "Sachanlagen")
		if tech == "" && sach == "" {
			logger.Warn().
				Str("company", base.Get(r.BaseIndex, "Firma1")).
				Msg("technical data empty for matched company")
		}
	}
	return output
}

func logUnmatched(logger zerolog.Logger, sources []match.Company, results []match.Result) {
	for _, r := range results {
		if r.Matched() {
			continue
		}
		logger.Info().Str("company", sources[r.SourceIndex].Name).Msg("unmatched company")
	}
}

func (s *Service) persist(
	ctx context.Context,
	req Request,
	outputPath string,
	cfg match.Config,
	sources, bases []match.Company,
	results []match.Result,
	stats match.Statistics,
	startedAt time.Time,
) (string, error) {
	finishedAt := time.Now().UTC()
	run := &db.MergeRun{
		RunUUID:          uuid.NewString(),
		Kind:             "keywords",
		SourcePath:       req.SourcePath,
		BasePath:         req.BasePath,
		OutputPath:       outputPath,
		NameThreshold:    cfg.NameThreshold,
		DomainThreshold:  cfg.DomainThreshold,
		TotalRows:        stats.Total,
		ExactName:        stats.ExactName,
		FuzzyName:        stats.FuzzyName,
		ExactDomain:      stats.ExactDomain,
		FuzzyDomain:      stats.FuzzyDomain,
		Unmatched:        stats.Unmatched,
		DuplicateDomains: stats.DuplicateDomains,
		StartedAt:        startedAt,
		FinishedAt:       &finishedAt,
	}
	runID, err := s.pool.InsertMergeRun(ctx, run)
	if err != nil {
		return "", err
	}

	decisions := make([]db.MatchDecision, 0, len(results))
	for _, r := range results {
		decision := db.MatchDecision{
			RunID:           runID,
			SourceIndex:     r.SourceIndex,
			SourceName:      sources[r.SourceIndex].Name,
			Method:          string(r.Method),
			Score:           r.Score,
			DuplicateDomain: r.DuplicateDomain,
		}
		if r.Matched() {
			matched := bases[r.BaseIndex].Name
			decision.MatchedName = &matched
		}
		decisions = append(decisions, decision)
	}
	if err := s.pool.InsertMatchDecisions(ctx, decisions); err != nil {
		return "", err
	}
	return run.RunUUID, nil
}
