package models

import "time"

// HealthData carries the granular sub-reports behind a HealthScore.
type HealthData struct {
	Market MarketReport `json:"market"`
	Reorg  ReorgReport  `json:"reorg"`
}

// HealthScore is an immutable snapshot produced by one scoring cycle.
// A new value is built on every cycle; published snapshots are never mutated.
type HealthScore struct {
	ID           string     `json:"id"`
	OverallScore int        `json:"overall_score"`
	MarketScore  int        `json:"nicehash_score"`
	ReorgScore   int        `json:"reorg_score"`
	LastChecked  time.Time  `json:"last_checked"`
	Data         HealthData `json:"data"`
}
