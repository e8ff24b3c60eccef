package weather

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Sweep(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	cache := NewMemoryCache(clock.Now)
	ctx := context.Background()

	cache.Set(ctx, "a", Entry{Timestamp: clock.Now().Add(-90 * time.Minute)})
	cache.Set(ctx, "b", Entry{Timestamp: clock.Now().Add(-30 * time.Minute)})
	cache.Set(ctx, "c", Entry{Timestamp: clock.Now()})

	removed := cache.Sweep(ctx, time.Hour)
	require.Equal(t, 1, removed)
	require.Equal(t, 2, cache.Len())

	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)

	clock.Advance(time.Hour)
	require.Equal(t, 1, cache.Sweep(ctx, time.Hour))
	_, ok = cache.Get(ctx, "c")
	require.True(t, ok)
}

func TestMemoryCache_SetOverwrites(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	cache := NewMemoryCache(clock.Now)
	ctx := context.Background()

	cache.Set(ctx, "k", Entry{Timestamp: clock.Now()})
	clock.Advance(time.Minute)
	cache.Set(ctx, "k", Entry{Timestamp: clock.Now()})

	got, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, clock.Now(), got.Timestamp)
	require.Equal(t, 1, cache.Len())
}
