package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/core"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	t.Cleanup(c.Stop)
	return c
}

func entry(key string, ttl time.Duration) *core.CacheEntry {
	now := time.Now()
	return &core.CacheEntry{
		Key:       key,
		Category:  "Billing",
		Priority:  "High",
		CachedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("key-1", time.Hour)))

	got, err := c.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "Billing", got.Category)
	assert.Equal(t, "High", got.Priority)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("key-1", -time.Minute)))

	_, err := c.Get(ctx, "key-1")
	assert.ErrorIs(t, err, ErrNotFound, "expired entries behave as misses")
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("key-1", time.Hour)))
	require.NoError(t, c.Delete(ctx, "key-1"))

	_, err := c.Get(ctx, "key-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("live", time.Hour)))
	require.NoError(t, c.Set(ctx, entry("expired", -time.Minute)))

	require.NoError(t, c.Cleanup(ctx))

	_, err := c.Get(ctx, "live")
	assert.NoError(t, err)
	assert.Len(t, c.entries, 1)
}
