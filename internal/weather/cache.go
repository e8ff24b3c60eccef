package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"travelex/internal/domain"
)

// Cache TTL defaults.
const (
	DefaultCacheTTL      = 15 * time.Minute
	DefaultSweepInterval = time.Hour
	DefaultSweepMaxAge   = time.Hour
)

// Entry is a cached assessment and the time it was computed.
type Entry struct {
	Timestamp time.Time                `json:"timestamp"`
	Data      domain.WeatherAssessment `json:"data"`
}

// Cache stores assessments by key. Freshness is decided by the caller;
// Sweep removes entries older than maxAge and returns how many were removed.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Set(ctx context.Context, key string, entry Entry)
	Sweep(ctx context.Context, maxAge time.Duration) int
}

// CacheKey builds the cache key for a coordinate pair and optional date.
func CacheKey(lat, lng float64, date string) string {
	if date == "" {
		date = "current"
	}
	return fmt.Sprintf("%.4f,%.4f,%s", lat, lng, date)
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewMemoryCache creates a new MemoryCache. A nil clock uses time.Now.
func NewMemoryCache(clock func() time.Time) *MemoryCache {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryCache{
		entries: make(map[string]Entry),
		now:     clock,
	}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, key string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// Sweep implements Cache.
func (c *MemoryCache) Sweep(_ context.Context, maxAge time.Duration) int {
	cutoff := c.now().Add(-maxAge)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.Timestamp.Before(cutoff) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ Cache = (*MemoryCache)(nil)
