package app

import (
	"context"
	"sort"

	"gopherblog/internal/model"
)

// PostLengthSource yields one title+content length per post.
type PostLengthSource interface {
	Lengths() ([]int, error)
}

// StatsCache holds the last computed aggregate with a TTL, plus a short-lived
// dirty marker set on every post mutation so a stale snapshot is never served
// right after a write.
type StatsCache interface {
	Get(ctx context.Context) (*model.PostStats, bool, error)
	Set(ctx context.Context, stats model.PostStats) error
	Delete(ctx context.Context) error
	MarkDirty(ctx context.Context) error
	IsDirty(ctx context.Context) (bool, error)
}

type StatsService struct {
	lengths PostLengthSource
	cache   StatsCache
}

func NewStatsService(lengths PostLengthSource, cache StatsCache) *StatsService {
	return &StatsService{
		lengths: lengths,
		cache:   cache,
	}
}

func (s *StatsService) Compute(ctx context.Context) (model.PostStats, error) {
	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.Get(ctx); cacheErr == nil && hit {
				return *cached, nil
			}
		}
	}

	lengths, err := s.lengths.Lengths()
	if err != nil {
		return model.PostStats{}, err
	}
	stats := aggregate(lengths)

	if s.cache != nil {
		if dirty, dirtyErr := s.cache.IsDirty(ctx); dirtyErr == nil && !dirty {
			_ = s.cache.Set(ctx, stats)
		}
	}
	return stats, nil
}

// aggregate returns the zero value for an empty input rather than dividing
// by zero.
func aggregate(lengths []int) model.PostStats {
	if len(lengths) == 0 {
		return model.PostStats{}
	}

	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)

	stats := model.PostStats{
		Count: len(sorted),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
	}
	for _, n := range sorted {
		stats.Sum += n
	}
	stats.Mean = float64(stats.Sum) / float64(stats.Count)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		stats.Median = float64(sorted[mid])
	} else {
		stats.Median = float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return stats
}
