package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Skotchmaster/shoe_store/internal/transport"
)

const statsKey = "shoe_store:admin:stats"

// StatsCache stores the last computed admin dashboard figures.
type StatsCache interface {
	Get(ctx context.Context) (*transport.StatsResponse, bool, error)
	Set(ctx context.Context, s transport.StatsResponse) error
	Invalidate(ctx context.Context) error
}

type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl}
}

func (c *RedisStatsCache) Get(ctx context.Context) (*transport.StatsResponse, bool, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var s transport.StatsResponse
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return &s, true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, s transport.StatsResponse) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, statsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *RedisStatsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, statsKey).Err()
}

// Nop never hits; used without REDIS_URL.
type Nop struct{}

func (Nop) Get(context.Context) (*transport.StatsResponse, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, transport.StatsResponse) error           { return nil }
func (Nop) Invalidate(context.Context) error                              { return nil }
