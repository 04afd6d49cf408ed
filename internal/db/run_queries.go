package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// InsertMergeRun persists a finished run and returns its database id.
func (p *Pool) InsertMergeRun(ctx context.Context, run *MergeRun) (int64, error) {
	if p == nil || p.gdb == nil {
		return 0, fmt.Errorf("database pool is not initialized")
	}
	if run == nil {
		return 0, fmt.Errorf("merge run is nil")
	}
	if res := p.gdb.WithContext(ctx).Create(run); res.Error != nil {
		return 0, fmt.Errorf("insert merge run: %w", res.Error)
	}
	return run.RunID, nil
}

// InsertMatchDecisions persists the per-record audit trail in batches.
func (p *Pool) InsertMatchDecisions(ctx context.Context, decisions []MatchDecision) error {
	if p == nil || p.gdb == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if len(decisions) == 0 {
		return nil
	}
	if res := p.gdb.WithContext(ctx).CreateInBatches(decisions, 500); res.Error != nil {
		return fmt.Errorf("insert match decisions: %w", res.Error)
	}
	return nil
}

// ListMergeRuns returns runs newest-first.
func (p *Pool) ListMergeRuns(ctx context.Context, limit, offset int) ([]MergeRun, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}
	if limit <= 0 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}

	var runs []MergeRun
	res := p.gdb.WithContext(ctx).
		Order("started_at DESC, run_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&runs)
	if res.Error != nil {
		return nil, fmt.Errorf("list merge runs: %w", res.Error)
	}
	return runs, nil
}

// GetMergeRun loads one run by its public uuid.
func (p *Pool) GetMergeRun(ctx context.Context, runUUID string) (*MergeRun, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	var run MergeRun
	res := p.gdb.WithContext(ctx).Where("run_uuid = ?", runUUID).First(&run)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNoRows
		}
		return nil, fmt.Errorf("get merge run %s: %w", runUUID, res.Error)
	}
	return &run, nil
}

// ListMatchDecisions returns a run's audit trail in source-row order.
func (p *Pool) ListMatchDecisions(ctx context.Context, runID int64, limit, offset int) ([]MatchDecision, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var decisions []MatchDecision
	res := p.gdb.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("source_index ASC").
		Limit(limit).
		Offset(offset).
		Find(&decisions)
	if res.Error != nil {
		return nil, fmt.Errorf("list match decisions for run %d: %w", runID, res.Error)
	}
	return decisions, nil
}

// MatchMethodCount is a per-method aggregate across all recorded runs.
type MatchMethodCount struct {
	Method string `json:"method"`
	Count  int64  `json:"count"`
}

// AuditStats is the read model served by the stats endpoint.
type AuditStats struct {
	TotalRuns      int64              `json:"total_runs"`
	TotalDecisions int64              `json:"total_decisions"`
	Methods        []MatchMethodCount `json:"methods"`
}

// QueryAuditStats aggregates run and decision counts.
func (p *Pool) QueryAuditStats(ctx context.Context) (*AuditStats, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	stats := &AuditStats{Methods: make([]MatchMethodCount, 0, 5)}

	if res := p.gdb.WithContext(ctx).Model(&MergeRun{}).Count(&stats.TotalRuns); res.Error != nil {
		return nil, fmt.Errorf("count merge runs: %w", res.Error)
	}
	if res := p.gdb.WithContext(ctx).Model(&MatchDecision{}).Count(&stats.TotalDecisions); res.Error != nil {
		return nil, fmt.Errorf("count match decisions: %w", res.Error)
	}

	res := p.gdb.WithContext(ctx).
		Model(&MatchDecision{}).
		Select("method, COUNT(*) AS count").
		Group("method").
		Order("method ASC").
		Scan(&stats.Methods)
	if res.Error != nil {
		return nil, fmt.Errorf("aggregate match methods: %w", res.Error)
	}
	return stats, nil
}
