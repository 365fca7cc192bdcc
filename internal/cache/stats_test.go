package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_store/internal/transport"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStatsCache(t *testing.T) {
	mr, client := setupRedis(t)
	c := NewRedisStatsCache(client, 30*time.Second)
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := transport.StatsResponse{Products: 4, Orders: 2, Users: 3, Revenue: 117.99}
	require.NoError(t, c.Set(ctx, want))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, *got)

	mr.FastForward(31 * time.Second)
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, want))
	require.NoError(t, c.Invalidate(ctx))
	_, ok, _ = c.Get(ctx)
	assert.False(t, ok)
}

func TestRedisStatsCache_CorruptValue(t *testing.T) {
	mr, client := setupRedis(t)
	require.NoError(t, mr.Set(statsKey, "{not json"))

	_, _, err := NewRedisStatsCache(client, time.Minute).Get(context.Background())
	assert.ErrorContains(t, err, "cache decode")
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewRedisClient(context.Background(), "::bad")
	assert.Error(t, err)
}
