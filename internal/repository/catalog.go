package repository

import (
	"context"

	"travelex/internal/domain"
)

// CatalogRepository defines the persistence operations for the rate catalog.
type CatalogRepository interface {
	// LoadCatalog loads the rates and only the selected adjustments, in catalog order.
	// Empty selections yield empty lists.
	LoadCatalog(ctx context.Context, surchargeIDs, discountIDs []string) (*domain.RateCatalog, error)

	// LoadFullCatalog loads the rates and every adjustment, in catalog order.
	LoadFullCatalog(ctx context.Context) (*domain.RateCatalog, error)

	// GetRates retrieves the base rates.
	GetRates(ctx context.Context) (*domain.Rates, error)

	// UpdateRates replaces the base rates.
	UpdateRates(ctx context.Context, rates *domain.Rates) error

	// ListAdjustments retrieves all adjustments of a type, in catalog order.
	ListAdjustments(ctx context.Context, typ domain.AdjustmentType) ([]domain.Adjustment, error)

	// GetAdjustment retrieves one adjustment by ID.
	GetAdjustment(ctx context.Context, typ domain.AdjustmentType, id string) (*domain.Adjustment, error)

	// CreateAdjustment persists a new adjustment.
	CreateAdjustment(ctx context.Context, typ domain.AdjustmentType, adj *domain.Adjustment) error

	// UpdateAdjustment updates an existing adjustment.
	UpdateAdjustment(ctx context.Context, typ domain.AdjustmentType, adj *domain.Adjustment) error

	// DeleteAdjustment removes an adjustment.
	DeleteAdjustment(ctx context.Context, typ domain.AdjustmentType, id string) error
}
