package usecase

import (
	"context"
	"fmt"
	"time"

	"ChainHealth/internal/domain/models"
	drepo "ChainHealth/internal/domain/repository"
	"ChainHealth/internal/services/scoring"
	applogger "ChainHealth/pkg/logger"
)

// MarketAssessor collects a market sample and scores it.
type MarketAssessor struct {
	collector drepo.SampleCollector
	clock     drepo.Clock
	log       *applogger.Logger
}

// NewMarketAssessor creates a new MarketAssessor instance.
func NewMarketAssessor(collector drepo.SampleCollector, clock drepo.Clock, l *applogger.Logger) *MarketAssessor {
	if clock == nil {
		clock = time.Now
	}
	return &MarketAssessor{collector: collector, clock: clock, log: l.Component("market")}
}

func (a *MarketAssessor) Assess(ctx context.Context) (models.MarketReport, error) {
	sample, err := a.collector.Collect(ctx)
	if err != nil {
		return models.MarketReport{}, fmt.Errorf("collect market sample: %w", err)
	}

	result, err := scoring.MarketScore(sample)
	if err != nil {
		return models.MarketReport{}, fmt.Errorf("score market sample: %w", err)
	}

	a.log.Debug("market scored",
		applogger.Int("score", result.Score),
		applogger.Strings("fired", result.Fired),
		applogger.Float64("network_ratio", result.Ratios.Network),
	)

	return models.MarketReport{
		MarketResult: result,
		Sample:       sample,
		LastChecked:  a.clock(),
	}, nil
}
