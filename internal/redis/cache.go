package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"travelex/internal/domain"
)

// CatalogCacheTTL bounds how stale a preview catalog can be after a write
// that failed to invalidate it.
const CatalogCacheTTL = 30 * time.Second

const catalogCacheKey = "cache:catalog:full"

// CachedAdjustment represents a cached surcharge or discount.
type CachedAdjustment struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Kind string  `json:"kind"`
	Rate float64 `json:"rate"`
}

// CachedCatalog represents the cached full rate catalog.
type CachedCatalog struct {
	DistanceRate float64            `json:"distance_rate"`
	DurationRate float64            `json:"duration_rate"`
	Surcharges   []CachedAdjustment `json:"surcharges"`
	Discounts    []CachedAdjustment `json:"discounts"`
}

// CatalogCache handles rate catalog caching in Redis.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a new CatalogCache. A non-positive ttl uses CatalogCacheTTL.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = CatalogCacheTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// GetCatalog retrieves the full catalog from cache. Returns nil on a miss.
func (s *CatalogCache) GetCatalog(ctx context.Context) (*domain.RateCatalog, error) {
	data, err := s.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var cached CachedCatalog
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return cached.toDomain(), nil
}

// SetCatalog stores the full catalog in cache.
func (s *CatalogCache) SetCatalog(ctx context.Context, catalog *domain.RateCatalog) error {
	data, err := json.Marshal(newCachedCatalog(catalog))
	if err != nil {
		return err
	}
	return s.client.Set(ctx, catalogCacheKey, data, s.ttl).Err()
}

// InvalidateCatalog removes the cached catalog.
func (s *CatalogCache) InvalidateCatalog(ctx context.Context) error {
	return s.client.Del(ctx, catalogCacheKey).Err()
}

func newCachedCatalog(c *domain.RateCatalog) CachedCatalog {
	return CachedCatalog{
		DistanceRate: c.DistanceRate,
		DurationRate: c.DurationRate,
		Surcharges:   toCachedAdjustments(c.Surcharges),
		Discounts:    toCachedAdjustments(c.Discounts),
	}
}

func toCachedAdjustments(in []domain.Adjustment) []CachedAdjustment {
	out := make([]CachedAdjustment, 0, len(in))
	for _, a := range in {
		out = append(out, CachedAdjustment{ID: a.ID, Name: a.Name, Kind: string(a.Kind), Rate: a.Rate})
	}
	return out
}

func (c CachedCatalog) toDomain() *domain.RateCatalog {
	return &domain.RateCatalog{
		DistanceRate: c.DistanceRate,
		DurationRate: c.DurationRate,
		Surcharges:   fromCachedAdjustments(c.Surcharges),
		Discounts:    fromCachedAdjustments(c.Discounts),
	}
}

func fromCachedAdjustments(in []CachedAdjustment) []domain.Adjustment {
	out := make([]domain.Adjustment, 0, len(in))
	for i, a := range in {
		out = append(out, domain.Adjustment{
			ID:       a.ID,
			Name:     a.Name,
			Kind:     domain.AdjustmentKind(a.Kind),
			Rate:     a.Rate,
			Position: i + 1,
		})
	}
	return out
}
