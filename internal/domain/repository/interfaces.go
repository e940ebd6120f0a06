package repository

import (
	"context"
	"time"

	"ChainHealth/internal/domain/models"
)

// DocumentFetcher retrieves and decodes remote JSON documents.
type DocumentFetcher interface {
	GetJSON(ctx context.Context, url string, dest interface{}) error
}

// SampleCollector gathers one market sample from the marketplace,
// the network stats service and the exchange.
type SampleCollector interface {
	Collect(ctx context.Context) (models.MarketSample, error)
}

// LogSource yields the node log as terminated lines.
type LogSource interface {
	Lines(ctx context.Context) ([]string, error)
}

// SnapshotStore persists the latest snapshot across restarts.
type SnapshotStore interface {
	Save(ctx context.Context, s *models.HealthScore) error
	Load(ctx context.Context) (*models.HealthScore, error)
}

// Publisher fans a new snapshot out to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, s *models.HealthScore) error
}

type Metrics interface {
	RecordSnapshot(s *models.HealthScore)
	RecordCycle(result string)
	RecordError(kind string)
	RecordDateWarnings(n int)
	RecordLatency(op string, seconds float64)
}

// Clock returns the current time.
type Clock func() time.Time
