package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ChainHealth/internal/domain/models"
	"ChainHealth/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSnapshotStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	defer mem.Close()
	store := NewCacheSnapshotStore(mem, time.Hour)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	want := &models.HealthScore{
		ID:           "3f0c",
		OverallScore: 3,
		MarketScore:  4,
		ReorgScore:   2,
		LastChecked:  time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
	}
	want.Data.Reorg.Summary.Count = 7
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.OverallScore, got.OverallScore)
	assert.True(t, want.LastChecked.Equal(got.LastChecked))
	assert.EqualValues(t, 7, got.Data.Reorg.Summary.Count)
}

type recordingWriter struct {
	key   []byte
	value []byte
	err   error
}

func (w *recordingWriter) Publish(_ context.Context, key []byte, value interface{}) error {
	w.key = key
	w.value, _ = json.Marshal(value)
	return w.err
}

func TestKafkaPublisherKeysByEnvironment(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w, "production")

	require.NoError(t, p.Publish(context.Background(), &models.HealthScore{ID: "x", OverallScore: 5}))
	assert.Equal(t, "production", string(w.key))
	assert.Contains(t, string(w.value), `"overall_score":5`)
	assert.Contains(t, string(w.value), `"nicehash_score":0`)
}

type publisherFunc func(ctx context.Context, s *models.HealthScore) error

func (f publisherFunc) Publish(ctx context.Context, s *models.HealthScore) error { return f(ctx, s) }

func TestFanoutPublishesToAllAndJoinsErrors(t *testing.T) {
	boom := errors.New("broker down")
	var calls int
	ok := publisherFunc(func(context.Context, *models.HealthScore) error { calls++; return nil })
	bad := publisherFunc(func(context.Context, *models.HealthScore) error { calls++; return boom })

	f := NewFanout(bad, nil, ok)
	assert.Len(t, f, 2)

	err := f.Publish(context.Background(), &models.HealthScore{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)

	assert.NoError(t, NewFanout().Publish(context.Background(), &models.HealthScore{}))
}
