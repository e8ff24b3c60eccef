package redis

import (
	"context"
	"time"

	"travelex/internal/domain"
)

// CatalogCacheInterface defines the interface for rate catalog caching.
type CatalogCacheInterface interface {
	GetCatalog(ctx context.Context) (*domain.RateCatalog, error)
	SetCatalog(ctx context.Context, catalog *domain.RateCatalog) error
	InvalidateCatalog(ctx context.Context) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireOrderLock(ctx context.Context, orderID string, ttl time.Duration) (bool, error)
	ReleaseOrderLock(ctx context.Context, orderID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ CatalogCacheInterface = (*CatalogCache)(nil)
	_ LockStoreInterface    = (*LockStore)(nil)
)
