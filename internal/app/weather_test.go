package app

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelex/internal/config"
	internalRedis "travelex/internal/redis"
	"travelex/internal/weather"
)

func TestNewWeatherCache(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:0"})
	defer client.Close()

	cache, err := NewWeatherCache(config.WeatherConfig{CacheBackend: CacheBackendMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &weather.MemoryCache{}, cache)

	cache, err = NewWeatherCache(config.WeatherConfig{CacheBackend: CacheBackendRedis, SweepMaxAge: time.Hour}, client)
	require.NoError(t, err)
	assert.IsType(t, &internalRedis.WeatherCache{}, cache)

	_, err = NewWeatherCache(config.WeatherConfig{CacheBackend: CacheBackendRedis}, nil)
	assert.Error(t, err)

	_, err = NewWeatherCache(config.WeatherConfig{CacheBackend: "memcached"}, nil)
	assert.Error(t, err)
}

func TestCollectionOf(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name string
		cmd  goredis.Cmder
		want string
	}{
		{"catalog cache", goredis.NewStringCmd(ctx, "get", "cache:catalog:full"), "cache:catalog"},
		{"order lock", goredis.NewBoolCmd(ctx, "setnx", "lock:order:42", "1"), "lock:order"},
		{"flat key", goredis.NewStringCmd(ctx, "get", "plain"), "redis"},
		{"no key", goredis.NewStatusCmd(ctx, "ping"), "redis"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, collectionOf(tc.cmd))
		})
	}
}
