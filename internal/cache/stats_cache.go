package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gopherblog/internal/model"
)

const (
	statsKey      = "blog:stats"
	statsDirtyKey = "blog:stats:dirty"
)

type StatsCache struct {
	client         *redisv9.Client
	statsTTL       time.Duration
	dirtyMarkerTTL time.Duration
}

func NewStatsCache(client *redisv9.Client, statsTTL, dirtyMarkerTTL time.Duration) *StatsCache {
	if statsTTL <= 0 {
		statsTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &StatsCache{
		client:         client,
		statsTTL:       statsTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *StatsCache) Get(ctx context.Context) (*model.PostStats, bool, error) {
	raw, err := c.client.Get(ctx, statsKey).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get stats failed: %w", err)
	}

	var stats model.PostStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached stats failed: %w", err)
	}
	return &stats, true, nil
}

func (c *StatsCache) Set(ctx context.Context, stats model.PostStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats cache failed: %w", err)
	}
	if err := c.client.Set(ctx, statsKey, payload, c.statsTTL).Err(); err != nil {
		return fmt.Errorf("redis set stats failed: %w", err)
	}
	return nil
}

func (c *StatsCache) Delete(ctx context.Context) error {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		return fmt.Errorf("redis delete stats failed: %w", err)
	}
	return nil
}

func (c *StatsCache) MarkDirty(ctx context.Context) error {
	if err := c.client.Set(ctx, statsDirtyKey, "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *StatsCache) IsDirty(ctx context.Context) (bool, error) {
	exists, err := c.client.Exists(ctx, statsDirtyKey).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}
