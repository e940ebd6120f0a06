package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"ChainHealth/internal/domain/faults"
	"ChainHealth/internal/domain/models"
	drepo "ChainHealth/internal/domain/repository"
	"ChainHealth/internal/domain/service"
	internalrepo "ChainHealth/internal/repository"
	"ChainHealth/internal/services/scoring"
	applogger "ChainHealth/pkg/logger"

	"github.com/google/uuid"
)

// MonitorConfig controls the refresh loop.
type MonitorConfig struct {
	Interval     time.Duration
	CycleTimeout time.Duration
}

// HealthMonitor runs scoring cycles and holds the latest HealthScore.
// Readers never observe a partially built snapshot: each cycle builds a new
// value and swaps it in only after every component scored.
type HealthMonitor struct {
	market  service.MarketAssessor
	reorg   service.ReorgAssessor
	store   drepo.SnapshotStore
	pub     drepo.Publisher
	metrics drepo.Metrics
	clock   drepo.Clock
	newID   func() string
	cfg     MonitorConfig
	log     *applogger.Logger

	latest  atomic.Pointer[models.HealthScore]
	cycleMu sync.Mutex
}

// NewHealthMonitor creates a new HealthMonitor instance. store and pub may be nil.
func NewHealthMonitor(
	market service.MarketAssessor,
	reorg service.ReorgAssessor,
	store drepo.SnapshotStore,
	pub drepo.Publisher,
	metrics drepo.Metrics,
	clock drepo.Clock,
	cfg MonitorConfig,
	l *applogger.Logger,
) *HealthMonitor {
	if clock == nil {
		clock = time.Now
	}
	return &HealthMonitor{
		market:  market,
		reorg:   reorg,
		store:   store,
		pub:     pub,
		metrics: metrics,
		clock:   clock,
		newID:   uuid.NewString,
		cfg:     cfg,
		log:     l.Component("monitor"),
	}
}

// Latest returns the current snapshot, or nil before the first cycle.
func (m *HealthMonitor) Latest() *models.HealthScore {
	return m.latest.Load()
}

// Warm seeds the latest snapshot from the store. It never replaces a
// snapshot produced by a cycle.
func (m *HealthMonitor) Warm(ctx context.Context) error {
	if m.store == nil || m.latest.Load() != nil {
		return nil
	}
	snap, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, internalrepo.ErrNoSnapshot) {
			return nil
		}
		return err
	}
	if m.latest.CompareAndSwap(nil, snap) {
		m.log.Info("warm start from stored snapshot",
			applogger.String("id", snap.ID),
			applogger.Int("overall_score", snap.OverallScore),
		)
	}
	return nil
}

// Refresh runs one cycle. On failure the previous snapshot stays in place.
func (m *HealthMonitor) Refresh(ctx context.Context) (*models.HealthScore, error) {
	m.cycleMu.Lock()
	defer m.cycleMu.Unlock()

	start := time.Now()
	cycleCtx := ctx
	if m.cfg.CycleTimeout > 0 {
		var cancel context.CancelFunc
		cycleCtx, cancel = context.WithTimeout(ctx, m.cfg.CycleTimeout)
		defer cancel()
	}

	snap, err := m.assemble(cycleCtx)
	m.metrics.RecordLatency("cycle", time.Since(start).Seconds())
	if err != nil {
		m.metrics.RecordCycle("error")
		m.metrics.RecordError(faults.Kind(err))
		m.log.Error("health cycle failed", applogger.Error(err), applogger.String("kind", faults.Kind(err)))
		return nil, err
	}

	m.latest.Store(snap)
	m.metrics.RecordCycle("ok")
	m.metrics.RecordSnapshot(snap)
	if n := len(snap.Data.Reorg.Summary.Warnings); n > 0 {
		m.metrics.RecordDateWarnings(n)
	}
	m.log.Info("health cycle complete",
		applogger.String("id", snap.ID),
		applogger.Int("overall_score", snap.OverallScore),
		applogger.Int("market_score", snap.MarketScore),
		applogger.Int("reorg_score", snap.ReorgScore),
		applogger.Duration("duration_ms", time.Since(start)),
	)

	if m.store != nil {
		if err := m.store.Save(ctx, snap); err != nil {
			m.metrics.RecordError("snapshot_store")
			m.log.Warn("snapshot not stored", applogger.Error(err))
		}
	}
	if m.pub != nil {
		if err := m.pub.Publish(ctx, snap); err != nil {
			m.metrics.RecordError("publish")
			m.log.Warn("snapshot not published", applogger.Error(err))
		}
	}
	return snap, nil
}

func (m *HealthMonitor) assemble(ctx context.Context) (*models.HealthScore, error) {
	now := m.clock()

	t := time.Now()
	market, err := m.market.Assess(ctx)
	m.metrics.RecordLatency("market", time.Since(t).Seconds())
	if err != nil {
		return nil, err
	}

	t = time.Now()
	reorg, err := m.reorg.Assess(ctx, now)
	m.metrics.RecordLatency("reorg", time.Since(t).Seconds())
	if err != nil {
		return nil, err
	}

	overall, err := scoring.CompositeScore(market.Score, reorg.Score)
	if err != nil {
		return nil, fmt.Errorf("composite score: %w", err)
	}

	return &models.HealthScore{
		ID:           m.newID(),
		OverallScore: overall,
		MarketScore:  market.Score,
		ReorgScore:   reorg.Score,
		LastChecked:  m.clock(),
		Data: models.HealthData{
			Market: market,
			Reorg:  reorg,
		},
	}, nil
}

// Run warms from the store, runs a cycle immediately and then one per
// interval until ctx is done. Failed cycles are logged and the loop goes on.
func (m *HealthMonitor) Run(ctx context.Context) error {
	if err := m.Warm(ctx); err != nil {
		m.log.Warn("warm start failed", applogger.Error(err))
	}

	interval := m.cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.log.Info("health monitor started", applogger.Duration("interval_ms", interval))
	_, _ = m.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			m.log.Info("health monitor stopped")
			return nil
		case <-ticker.C:
			_, _ = m.Refresh(ctx)
		}
	}
}
