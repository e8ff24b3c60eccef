package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"travelex/internal/weather"
)

const weatherCachePrefix = "cache:weather:"

// WeatherCache is a weather.Cache shared across instances. Entries expire in
// Redis after maxAge, so Sweep has nothing to do.
type WeatherCache struct {
	client *redis.Client
	maxAge time.Duration
}

// NewWeatherCache creates a new WeatherCache.
func NewWeatherCache(client *redis.Client, maxAge time.Duration) *WeatherCache {
	if maxAge <= 0 {
		maxAge = weather.DefaultSweepMaxAge
	}
	return &WeatherCache{client: client, maxAge: maxAge}
}

// Get implements weather.Cache. Redis errors are logged and treated as a miss.
func (s *WeatherCache) Get(ctx context.Context, key string) (weather.Entry, bool) {
	data, err := s.client.Get(ctx, weatherCachePrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("weather cache: get %s: %v", key, err)
		}
		return weather.Entry{}, false
	}

	var entry weather.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Printf("weather cache: decode %s: %v", key, err)
		return weather.Entry{}, false
	}
	return entry, true
}

// Set implements weather.Cache.
func (s *WeatherCache) Set(ctx context.Context, key string, entry weather.Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("weather cache: encode %s: %v", key, err)
		return
	}
	if err := s.client.Set(ctx, weatherCachePrefix+key, data, s.maxAge).Err(); err != nil {
		log.Printf("weather cache: set %s: %v", key, err)
	}
}

// Sweep implements weather.Cache.
func (s *WeatherCache) Sweep(context.Context, time.Duration) int {
	return 0
}

var _ weather.Cache = (*WeatherCache)(nil)
