package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Weather  WeatherConfig
	Pricing  PricingConfig
	Events   EventsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// WeatherConfig holds weather provider and cache configuration.
type WeatherConfig struct {
	OpenMeteoURL    string
	WeatherAPIURL   string
	WeatherAPIKey   string
	WeatherAPIRPS   float64
	ProviderTimeout time.Duration
	NotifyTimeout   time.Duration
	CacheBackend    string // "memory" or "redis"
	CacheTTL        time.Duration
	SweepInterval   time.Duration
	SweepMaxAge     time.Duration
}

// PricingConfig holds quote configuration.
type PricingConfig struct {
	PreviewCatalogTTL time.Duration
	SeedFile          string
}

// EventsConfig holds domain event publishing configuration.
// Events are logged only when no brokers are configured.
type EventsConfig struct {
	KafkaBrokers []string
	KafkaTopic   string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "travelex"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "travelex-api"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Weather: WeatherConfig{
			OpenMeteoURL:    getEnv("OPEN_METEO_URL", "https://api.open-meteo.com"),
			WeatherAPIURL:   getEnv("WEATHERAPI_URL", "https://api.weatherapi.com"),
			WeatherAPIKey:   getEnv("WEATHERAPI_KEY", ""),
			WeatherAPIRPS:   getFloatEnv("WEATHERAPI_RPS", 5),
			ProviderTimeout: getDurationEnv("WEATHER_PROVIDER_TIMEOUT", 5*time.Second),
			NotifyTimeout:   getDurationEnv("WEATHER_NOTIFY_TIMEOUT", 5*time.Second),
			CacheBackend:    getEnv("WEATHER_CACHE_BACKEND", "memory"),
			CacheTTL:        getDurationEnv("WEATHER_CACHE_TTL", 15*time.Minute),
			SweepInterval:   getDurationEnv("WEATHER_SWEEP_INTERVAL", time.Hour),
			SweepMaxAge:     getDurationEnv("WEATHER_SWEEP_MAX_AGE", time.Hour),
		},
		Pricing: PricingConfig{
			PreviewCatalogTTL: getDurationEnv("PREVIEW_CATALOG_TTL", 30*time.Second),
			SeedFile:          getEnv("CATALOG_SEED_FILE", ""),
		},
		Events: EventsConfig{
			KafkaBrokers: getListEnv("KAFKA_BROKERS"),
			KafkaTopic:   getEnv("KAFKA_TOPIC", "travelex.events"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated value, dropping blanks.
func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
