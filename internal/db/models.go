package db

import "time"

// MergeRun maps firmenmatch.merge_runs: one row per executed merge.
type MergeRun struct {
	RunID            int64      `gorm:"column:run_id;primaryKey;autoIncrement" json:"run_id"`
	RunUUID          string     `gorm:"column:run_uuid;type:uuid;not null;unique" json:"run_uuid"`
	Kind             string     `gorm:"column:kind;type:text;not null" json:"kind"`
	SourcePath       string     `gorm:"column:source_path;type:text;not null" json:"source_path"`
	BasePath         string     `gorm:"column:base_path;type:text;not null" json:"base_path"`
	OutputPath       string     `gorm:"column:output_path;type:text;not null" json:"output_path"`
	NameThreshold    float64    `gorm:"column:name_threshold;type:double precision;not null" json:"name_threshold"`
	DomainThreshold  float64    `gorm:"column:domain_threshold;type:double precision;not null" json:"domain_threshold"`
	TotalRows        int        `gorm:"column:total_rows;not null;default:0" json:"total_rows"`
	ExactName        int        `gorm:"column:exact_name_matches;not null;default:0" json:"exact_name_matches"`
	FuzzyName        int        `gorm:"column:fuzzy_name_matches;not null;default:0" json:"fuzzy_name_matches"`
	ExactDomain      int        `gorm:"column:exact_url_matches;not null;default:0" json:"exact_url_matches"`
	FuzzyDomain      int        `gorm:"column:fuzzy_url_matches;not null;default:0" json:"fuzzy_url_matches"`
	Unmatched        int        `gorm:"column:unmatched;not null;default:0" json:"unmatched"`
	DuplicateDomains int        `gorm:"column:duplicate_domains;not null;default:0" json:"duplicate_domains"`
	StartedAt        time.Time  `gorm:"column:started_at;type:timestamptz;not null" json:"started_at"`
	FinishedAt       *time.Time `gorm:"column:finished_at;type:timestamptz" json:"finished_at,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at;type:timestamptz;not null;autoCreateTime" json:"created_at"`
}

func (MergeRun) TableName() string { return "merge_runs" }

// MatchDecision maps firmenmatch.match_decisions: the audit trail, one
// row per source record of a run.
type MatchDecision struct {
	DecisionID      int64   `gorm:"column:decision_id;primaryKey;autoIncrement" json:"decision_id"`
	RunID           int64   `gorm:"column:run_id;not null;index" json:"run_id"`
	SourceIndex     int     `gorm:"column:source_index;not null" json:"source_index"`
	SourceName      string  `gorm:"column:source_name;type:text;not null" json:"source_name"`
	MatchedName     *string `gorm:"column:matched_name;type:text" json:"matched_name,omitempty"`
	Method          string  `gorm:"column:method;type:text;not null" json:"method"`
	Score           float64 `gorm:"column:score;type:double precision;not null" json:"score"`
	DuplicateDomain bool    `gorm:"column:duplicate_domain;not null;default:false" json:"duplicate_domain"`
}

func (MatchDecision) TableName() string { return "match_decisions" }
