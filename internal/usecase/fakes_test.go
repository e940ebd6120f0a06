package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"ChainHealth/internal/domain/models"
	internalrepo "ChainHealth/internal/repository"
)

type fakeCollector struct {
	sample models.MarketSample
	err    error
	calls  int
}

func (f *fakeCollector) Collect(context.Context) (models.MarketSample, error) {
	f.calls++
	return f.sample, f.err
}

type fakeLogSource struct {
	lines []string
	err   error
}

func (f *fakeLogSource) Lines(context.Context) ([]string, error) {
	return f.lines, f.err
}

type fakeStore struct {
	mu    sync.Mutex
	saved []*models.HealthScore
	load  *models.HealthScore
	err   error
}

func (f *fakeStore) Save(_ context.Context, s *models.HealthScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, s)
	return f.err
}

func (f *fakeStore) Load(context.Context) (*models.HealthScore, error) {
	if f.load == nil {
		return nil, internalrepo.ErrNoSnapshot
	}
	return f.load, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*models.HealthScore
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, s *models.HealthScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, s)
	return f.err
}

type fakeMetrics struct {
	mu           sync.Mutex
	cycles       map[string]int
	errors       map[string]int
	snapshots    int
	dateWarnings int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{cycles: map[string]int{}, errors: map[string]int{}}
}

func (f *fakeMetrics) RecordSnapshot(*models.HealthScore) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots++
}

func (f *fakeMetrics) RecordCycle(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cycles[result]++
}

func (f *fakeMetrics) RecordError(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[kind]++
}

func (f *fakeMetrics) RecordDateWarnings(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dateWarnings += n
}

func (f *fakeMetrics) RecordLatency(string, float64) {}

func (f *fakeMetrics) cycleCount(result string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cycles[result]
}

var errUpstream = errors.New("upstream exploded")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
