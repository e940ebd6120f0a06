package models

import (
	"time"

	"ChainHealth/internal/domain/faults"
)

// ReorgLogEntry is one parsed node log line.
type ReorgLogEntry struct {
	DateTag string
	IsReorg bool
	Depth   *uint // set only for well-formed reorg lines
}

// ReorgWindowSummary aggregates the reorg lines of the trailing day.
type ReorgWindowSummary struct {
	Count    uint                      `json:"count"`
	Deepest  uint                      `json:"deepest"`
	Lines    int                       `json:"lines"`
	InWindow int                       `json:"in_window"`
	Warnings []faults.DateParseWarning `json:"warnings,omitempty"`
}

// ReorgResult is the outcome of the reorg-risk scorer.
type ReorgResult struct {
	Score int      `json:"score"`
	Fired []string `json:"fired_rules"`
}

// ReorgReport is the audit record kept on a HealthScore.
type ReorgReport struct {
	ReorgResult
	Summary     ReorgWindowSummary `json:"summary"`
	LastChecked time.Time          `json:"last_checked"`
}
