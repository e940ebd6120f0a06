package service

import (
	"context"
	"time"

	"ChainHealth/internal/domain/models"
)

// MarketAssessor scores hashrate marketplace conditions.
type MarketAssessor interface {
	Assess(ctx context.Context) (models.MarketReport, error)
}

// ReorgAssessor scores recent chain reorganizations relative to now.
type ReorgAssessor interface {
	Assess(ctx context.Context, now time.Time) (models.ReorgReport, error)
}
