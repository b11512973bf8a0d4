package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopherblog/internal/model"
)

type fakeLengthSource struct {
	lengths []int
	err     error
	calls   int
}

func (s *fakeLengthSource) Lengths() ([]int, error) {
	s.calls++
	return s.lengths, s.err
}

type fakeStatsCache struct {
	stored *model.PostStats
	dirty  bool
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{}
}

func (c *fakeStatsCache) Get(context.Context) (*model.PostStats, bool, error) {
	if c.stored == nil {
		return nil, false, nil
	}
	copied := *c.stored
	return &copied, true, nil
}

func (c *fakeStatsCache) Set(_ context.Context, stats model.PostStats) error {
	c.stored = &stats
	return nil
}

func (c *fakeStatsCache) Delete(context.Context) error {
	c.stored = nil
	return nil
}

func (c *fakeStatsCache) MarkDirty(context.Context) error {
	c.dirty = true
	return nil
}

func (c *fakeStatsCache) IsDirty(context.Context) (bool, error) {
	return c.dirty, nil
}

func TestStatsOverThreePosts(t *testing.T) {
	svc := NewStatsService(&fakeLengthSource{lengths: []int{5, 10, 15}}, nil)

	stats, err := svc.Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 30, stats.Sum)
	assert.Equal(t, 5, stats.Min)
	assert.Equal(t, 15, stats.Max)
	assert.InDelta(t, 10, stats.Mean, 1e-9)
	assert.InDelta(t, 10, stats.Median, 1e-9)
}

func TestStatsOverZeroPosts(t *testing.T) {
	svc := NewStatsService(&fakeLengthSource{}, nil)

	stats, err := svc.Compute(context.Background())
	require.NoError(t, err, "empty sequence must not crash")
	assert.Equal(t, model.PostStats{}, stats)
}

func TestStatsMedianEvenCount(t *testing.T) {
	svc := NewStatsService(&fakeLengthSource{lengths: []int{8, 2, 6, 4}}, nil)

	stats, err := svc.Compute(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 5, stats.Median, 1e-9)
	assert.InDelta(t, 5, stats.Mean, 1e-9)
	assert.Equal(t, 2, stats.Min)
	assert.Equal(t, 8, stats.Max)
}

func TestStatsUsesCacheUntilDirty(t *testing.T) {
	source := &fakeLengthSource{lengths: []int{5, 10, 15}}
	cache := newFakeStatsCache()
	svc := NewStatsService(source, cache)

	first, err := svc.Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)

	second, err := svc.Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls, "clean cache serves the snapshot")

	cache.dirty = true
	cache.stored = nil
	source.lengths = []int{5, 10, 15, 20}

	third, err := svc.Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls, "dirty marker forces a recompute")
	assert.Equal(t, 4, third.Count)
	assert.Nil(t, cache.stored, "dirty snapshot is not written back")
}

func TestStatsPropagatesStorageFailure(t *testing.T) {
	storageErr := errors.New("connection lost")
	svc := NewStatsService(&fakeLengthSource{err: storageErr}, nil)

	_, err := svc.Compute(context.Background())
	require.ErrorIs(t, err, storageErr)
}
