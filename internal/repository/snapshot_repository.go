package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ChainHealth/internal/domain/models"
	"ChainHealth/internal/domain/repository"
	"ChainHealth/pkg/cache"
)

// LatestSnapshotKey holds the most recent HealthScore.
const LatestSnapshotKey = "health:latest"

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// CacheSnapshotStore implements SnapshotStore on a cache.Service.
type CacheSnapshotStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewCacheSnapshotStore creates a snapshot store; ttl <= 0 keeps snapshots indefinitely.
func NewCacheSnapshotStore(c cache.Service, ttl time.Duration) repository.SnapshotStore {
	return &CacheSnapshotStore{cache: c, ttl: ttl}
}

func (s *CacheSnapshotStore) Save(ctx context.Context, snap *models.HealthScore) error {
	if err := s.cache.Set(ctx, LatestSnapshotKey, snap, s.ttl); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *CacheSnapshotStore) Load(ctx context.Context) (*models.HealthScore, error) {
	var snap models.HealthScore
	if err := s.cache.Get(ctx, LatestSnapshotKey, &snap); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &snap, nil
}

type messageWriter interface {
	Publish(ctx context.Context, key []byte, value interface{}) error
}

// KafkaPublisher implements Publisher for Kafka, keying messages by environment.
type KafkaPublisher struct {
	producer messageWriter
	key      []byte
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer messageWriter, environment string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, key: []byte(environment)}
}

func (p *KafkaPublisher) Publish(ctx context.Context, snap *models.HealthScore) error {
	return p.producer.Publish(ctx, p.key, snap)
}

// Fanout publishes to every target and joins their errors.
type Fanout []repository.Publisher

// NewFanout drops nil targets.
func NewFanout(targets ...repository.Publisher) Fanout {
	f := make(Fanout, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			f = append(f, t)
		}
	}
	return f
}

func (f Fanout) Publish(ctx context.Context, snap *models.HealthScore) error {
	var errs []error
	for _, t := range f {
		if err := t.Publish(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
