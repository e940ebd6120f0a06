package usecase

import (
	"context"
	"fmt"
	"time"

	"ChainHealth/internal/domain/models"
	drepo "ChainHealth/internal/domain/repository"
	"ChainHealth/internal/services/reorglog"
	"ChainHealth/internal/services/scoring"
	applogger "ChainHealth/pkg/logger"
)

// maxLoggedWarnings caps per-line date warnings written to the log per cycle.
const maxLoggedWarnings = 5

// ReorgAssessor reads the node log and scores the trailing day's reorgs.
type ReorgAssessor struct {
	source drepo.LogSource
	log    *applogger.Logger
}

func NewReorgAssessor(source drepo.LogSource, l *applogger.Logger) *ReorgAssessor {
	return &ReorgAssessor{source: source, log: l.Component("reorg")}
}

func (a *ReorgAssessor) Assess(ctx context.Context, now time.Time) (models.ReorgReport, error) {
	lines, err := a.source.Lines(ctx)
	if err != nil {
		return models.ReorgReport{}, fmt.Errorf("read node log: %w", err)
	}

	summary, err := reorglog.Extract(lines, now)
	if err != nil {
		return models.ReorgReport{}, fmt.Errorf("extract reorgs: %w", err)
	}

	for i, w := range summary.Warnings {
		if i == maxLoggedWarnings {
			a.log.Warn("further date warnings suppressed",
				applogger.Int("remaining", len(summary.Warnings)-maxLoggedWarnings))
			break
		}
		a.log.Warn("skipped log line", applogger.String("warning", w.String()))
	}

	result := scoring.ReorgScore(summary.Count, summary.Deepest)
	a.log.Debug("reorg scored",
		applogger.Int("score", result.Score),
		applogger.Uint("count", summary.Count),
		applogger.Uint("deepest", summary.Deepest),
	)

	return models.ReorgReport{
		ReorgResult: result,
		Summary:     summary,
		LastChecked: now,
	}, nil
}
