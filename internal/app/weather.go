package app

import (
	"fmt"
	"math"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"travelex/internal/config"
	internalRedis "travelex/internal/redis"
	"travelex/internal/weather"
)

// Weather cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// NewWeatherCache selects the assessment cache backend.
func NewWeatherCache(cfg config.WeatherConfig, redisClient *goredis.Client) (weather.Cache, error) {
	switch cfg.CacheBackend {
	case "", CacheBackendMemory:
		return weather.NewMemoryCache(nil), nil
	case CacheBackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("weather cache backend %q requires redis", cfg.CacheBackend)
		}
		return internalRedis.NewWeatherCache(redisClient, cfg.SweepMaxAge), nil
	default:
		return nil, fmt.Errorf("unknown weather cache backend %q", cfg.CacheBackend)
	}
}

// NewWeatherAssessor wires both provider clients into an Assessor.
func NewWeatherAssessor(
	cfg config.WeatherConfig,
	httpClient *http.Client,
	cache weather.Cache,
	notifier weather.HazardNotifier,
) *weather.Assessor {
	var limiter *rate.Limiter
	if cfg.WeatherAPIRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.WeatherAPIRPS), int(math.Max(1, math.Ceil(cfg.WeatherAPIRPS))))
	}

	forecasts := weather.NewOpenMeteoClient(httpClient, cfg.OpenMeteoURL)
	alerts := weather.NewWeatherAPIClient(httpClient, cfg.WeatherAPIURL, cfg.WeatherAPIKey, limiter)

	return weather.NewAssessor(forecasts, alerts, cache, weather.Options{
		CacheTTL:        cfg.CacheTTL,
		ProviderTimeout: cfg.ProviderTimeout,
		NotifyTimeout:   cfg.NotifyTimeout,
		SweepInterval:   cfg.SweepInterval,
		SweepMaxAge:     cfg.SweepMaxAge,
		Notifier:        notifier,
	})
}
