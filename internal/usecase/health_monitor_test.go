package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"ChainHealth/internal/domain/faults"
	"ChainHealth/internal/domain/models"
	applogger "ChainHealth/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monitorNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func calmSample() models.MarketSample {
	return models.MarketSample{
		CurrentPrice:    1,
		AveragePrice:    1,
		CurrentHashrate: 20,
		AverageHashrate: 20,
		NetworkHashrate: 200,
		ExchangeRatio:   1e-5,
	}
}

// sixReorgsDeepest15 scores 2 on the reorg scale.
func sixReorgsDeepest15() []string {
	return []string{
		"20261015 08:00:00 INFO block accepted\n",
		"20261015 08:01:00 WARN REORG depth: 2\n",
		"20261015 08:02:00 WARN REORG depth: 3\n",
		"20261014 23:02:00 WARN REORG depth: 15\n",
		"20261014 22:02:00 WARN REORG depth: 4\n",
		"20261014 21:02:00 WARN REORG depth: 1\n",
		"20261014 20:02:00 WARN REORG depth: 2\n",
		"20261012 20:02:00 WARN REORG depth: 90\n",
		"garbage line\n",
	}
}

type monitorFixture struct {
	collector *fakeCollector
	logs      *fakeLogSource
	store     *fakeStore
	pub       *fakePublisher
	metrics   *fakeMetrics
	monitor   *HealthMonitor
}

func newMonitorFixture(cfg MonitorConfig) *monitorFixture {
	f := &monitorFixture{
		collector: &fakeCollector{sample: calmSample()},
		logs:      &fakeLogSource{lines: sixReorgsDeepest15()},
		store:     &fakeStore{},
		pub:       &fakePublisher{},
		metrics:   newFakeMetrics(),
	}
	l := applogger.Nop()
	clock := fixedClock(monitorNow)
	f.monitor = NewHealthMonitor(
		NewMarketAssessor(f.collector, clock, l),
		NewReorgAssessor(f.logs, l),
		f.store,
		f.pub,
		f.metrics,
		clock,
		cfg,
		l,
	)
	n := 0
	f.monitor.newID = func() string {
		n++
		return "snap-" + string(rune('0'+n))
	}
	return f
}

func TestRefreshBuildsSnapshot(t *testing.T) {
	f := newMonitorFixture(MonitorConfig{})
	assert.Nil(t, f.monitor.Latest())

	snap, err := f.monitor.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "snap-1", snap.ID)
	assert.Equal(t, 5, snap.MarketScore)
	assert.Equal(t, 2, snap.ReorgScore)
	assert.Equal(t, 3, snap.OverallScore)
	assert.Equal(t, monitorNow, snap.LastChecked)

	assert.EqualValues(t, 6, snap.Data.Reorg.Summary.Count)
	assert.EqualValues(t, 15, snap.Data.Reorg.Summary.Deepest)
	assert.Len(t, snap.Data.Reorg.Summary.Warnings, 1)
	assert.Equal(t, calmSample(), snap.Data.Market.Sample)
	assert.Equal(t, monitorNow, snap.Data.Market.LastChecked)

	assert.Same(t, snap, f.monitor.Latest())
	assert.Equal(t, []*models.HealthScore{snap}, f.store.saved)
	assert.Equal(t, []*models.HealthScore{snap}, f.pub.published)
	assert.Equal(t, 1, f.metrics.cycleCount("ok"))
	assert.Equal(t, 1, f.metrics.snapshots)
	assert.Equal(t, 1, f.metrics.dateWarnings)
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	f := newMonitorFixture(MonitorConfig{})
	first, err := f.monitor.Refresh(context.Background())
	require.NoError(t, err)

	f.collector.err = faults.Unavailable("marketplace", errUpstream)
	_, err = f.monitor.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrDataUnavailable)
	assert.Same(t, first, f.monitor.Latest())
	assert.Len(t, f.store.saved, 1)
	assert.Len(t, f.pub.published, 1)
	assert.Equal(t, 1, f.metrics.cycleCount("error"))
	assert.Equal(t, 1, f.metrics.errors[faults.KindDataUnavailable])
}

func TestRefreshLogParseFaultAbortsCycle(t *testing.T) {
	f := newMonitorFixture(MonitorConfig{})
	f.logs.lines = []string{
		"20261015 08:01:00 WARN REORG depth: 2\n",
		"20261015 08:02:00 WARN REORG depth: deep\n",
	}

	_, err := f.monitor.Refresh(context.Background())
	require.Error(t, err)
	var perr *faults.LogParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.LineNo)
	assert.Nil(t, f.monitor.Latest())
	assert.Equal(t, 1, f.metrics.errors[faults.KindLogParseFault])
}

func TestRefreshInvalidSampleIsNotCached(t *testing.T) {
	f := newMonitorFixture(MonitorConfig{})
	s := calmSample()
	s.NetworkHashrate = 0
	f.collector.sample = s

	_, err := f.monitor.Refresh(context.Background())
	assert.ErrorIs(t, err, faults.ErrInvalidNumericInput)
	assert.Empty(t, f.store.saved)
}

func TestRefreshSkipsReorgWhenMarketFails(t *testing.T) {
	f := newMonitorFixture(MonitorConfig{})
	f.collector.err = errUpstream
	f.logs.err = errUpstream

	_, err := f.monitor.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collect market sample")
}

func TestPublishFailureDoesNotInvalidateSnapshot(t *testing.T) {
	f := newMonitorFixture(MonitorConfig{})
	f.pub.err = errUpstream
	f.store.err = errUpstream

	snap, err := f.monitor.Refresh(context.Background())
	require.NoError(t, err)
	assert.Same(t, snap, f.monitor.Latest())
	assert.Equal(t, 1, f.metrics.errors["publish"])
	assert.Equal(t, 1, f.metrics.errors["snapshot_store"])
}

func TestWarmLoadsStoredSnapshotOnce(t *testing.T) {
	f := newMonitorFixture(MonitorConfig{})
	require.NoError(t, f.monitor.Warm(context.Background()))
	assert.Nil(t, f.monitor.Latest(), "empty store leaves nothing")

	stored := &models.HealthScore{ID: "from-cache", OverallScore: 4}
	f.store.load = stored
	require.NoError(t, f.monitor.Warm(context.Background()))
	assert.Same(t, stored, f.monitor.Latest())

	fresh, err := f.monitor.Refresh(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.monitor.Warm(context.Background()))
	assert.Same(t, fresh, f.monitor.Latest(), "warm never replaces a cycle result")
}

func TestConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	f := newMonitorFixture(MonitorConfig{})
	_, err := f.monitor.Refresh(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s := f.monitor.Latest()
				if s.OverallScore != 3 || s.MarketScore != 5 || s.ReorgScore != 2 {
					t.Errorf("torn snapshot: %+v", s)
					return
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		_, err := f.monitor.Refresh(context.Background())
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestRunCyclesUntilCancelled(t *testing.T) {
	f := newMonitorFixture(MonitorConfig{Interval: 10 * time.Millisecond, CycleTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.monitor.Run(ctx) }()

	require.Eventually(t, func() bool { return f.metrics.cycleCount("ok") >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
	assert.NotNil(t, f.monitor.Latest())
}

func TestRunContinuesAfterFailedCycle(t *testing.T) {
	f := newMonitorFixture(MonitorConfig{Interval: 10 * time.Millisecond})
	f.collector.err = errUpstream
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = f.monitor.Run(ctx) }()
	require.Eventually(t, func() bool { return f.metrics.cycleCount("error") >= 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Nil(t, f.monitor.Latest())
}
