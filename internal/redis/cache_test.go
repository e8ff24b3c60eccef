package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelex/internal/domain"
	"travelex/internal/weather"
)

// unreachableClient fails every command without waiting on the network.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCachedCatalog_KeepsCatalogOrder(t *testing.T) {
	catalog := &domain.RateCatalog{
		DistanceRate: 1.5,
		DurationRate: 15,
		Surcharges: []domain.Adjustment{
			{ID: "fee", Name: "Booking fee", Kind: domain.AdjustmentKindFixed, Rate: 10, Position: 4},
			{ID: "peak", Name: "Peak season", Kind: domain.AdjustmentKindPercentage, Rate: 15, Position: 9},
		},
		Discounts: []domain.Adjustment{},
	}

	data, err := json.Marshal(newCachedCatalog(catalog))
	require.NoError(t, err)

	var cached CachedCatalog
	require.NoError(t, json.Unmarshal(data, &cached))
	got := cached.toDomain()

	assert.Equal(t, 1.5, got.DistanceRate)
	require.Len(t, got.Surcharges, 2)
	assert.Equal(t, "fee", got.Surcharges[0].ID)
	assert.Equal(t, 1, got.Surcharges[0].Position)
	assert.Equal(t, "peak", got.Surcharges[1].ID)
	assert.Equal(t, domain.AdjustmentKindPercentage, got.Surcharges[1].Kind)
	assert.NotNil(t, got.Discounts)
}

func TestNewCatalogCache_DefaultTTL(t *testing.T) {
	cache := NewCatalogCache(nil, 0)
	assert.Equal(t, CatalogCacheTTL, cache.ttl)
}

func TestCatalogCache_ErrorIsNotAMiss(t *testing.T) {
	cache := NewCatalogCache(unreachableClient(t), time.Minute)

	catalog, err := cache.GetCatalog(context.Background())
	assert.Error(t, err)
	assert.Nil(t, catalog)
}

func TestWeatherCache_ErrorIsAMiss(t *testing.T) {
	cache := NewWeatherCache(unreachableClient(t), 0)
	assert.Equal(t, weather.DefaultSweepMaxAge, cache.maxAge)

	_, ok := cache.Get(context.Background(), weather.CacheKey(38.72, -9.14, ""))
	assert.False(t, ok)

	cache.Set(context.Background(), "k", weather.Entry{Timestamp: time.Now()})
	assert.Zero(t, cache.Sweep(context.Background(), time.Hour))
}
