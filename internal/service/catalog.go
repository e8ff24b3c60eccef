package service

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"travelex/internal/domain"
	"travelex/internal/redis"
	"travelex/internal/repository"
)

// CatalogService manages the rate catalog and its cached snapshot.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	cache       redis.CatalogCacheInterface
	access      *AccessService
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(
	catalogRepo repository.CatalogRepository,
	cache redis.CatalogCacheInterface,
	access *AccessService,
) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		cache:       cache,
		access:      access,
	}
}

// Snapshot returns the full catalog, served from cache when possible.
// The result may lag an admin write by up to the cache TTL.
func (s *CatalogService) Snapshot(ctx context.Context) (*domain.RateCatalog, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCatalog(ctx)
		if err != nil {
			log.Printf("catalog cache: get: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	catalog, err := s.catalogRepo.LoadFullCatalog(ctx)
	if err != nil {
		return nil, catalogLoadError(err)
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, catalog); err != nil {
			log.Printf("catalog cache: set: %v", err)
		}
	}
	return catalog, nil
}

// RatesInput contains new base rates.
type RatesInput struct {
	DistanceRate float64
	DurationRate float64
}

// UpdateRates replaces the base rates. Admin only.
func (s *CatalogService) UpdateRates(ctx context.Context, callerID string, in RatesInput) (*domain.Rates, error) {
	if err := s.access.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if !validRate(in.DistanceRate) || !validRate(in.DurationRate) {
		return nil, ErrInvalidRate
	}

	rates := &domain.Rates{DistanceRate: in.DistanceRate, DurationRate: in.DurationRate}
	if err := s.catalogRepo.UpdateRates(ctx, rates); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return rates, nil
}

// ListAdjustments returns the adjustments of one type in catalog order.
func (s *CatalogService) ListAdjustments(ctx context.Context, typ domain.AdjustmentType) ([]domain.Adjustment, error) {
	return s.catalogRepo.ListAdjustments(ctx, typ)
}

// AdjustmentInput contains the editable fields of an adjustment.
// An empty ID on create generates one; a zero Position appends.
type AdjustmentInput struct {
	ID       string
	Name     string
	Kind     domain.AdjustmentKind
	Rate     float64
	Position int
}

func (in AdjustmentInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidName
	}
	if !in.Kind.Valid() {
		return ErrInvalidAdjustmentKind
	}
	if !finiteRate(in.Rate) {
		return ErrInvalidRate
	}
	return nil
}

// CreateAdjustment adds a surcharge or discount. Admin only.
func (s *CatalogService) CreateAdjustment(ctx context.Context, callerID string, typ domain.AdjustmentType, in AdjustmentInput) (*domain.Adjustment, error) {
	if err := s.access.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	adj := &domain.Adjustment{
		ID:       strings.TrimSpace(in.ID),
		Name:     strings.TrimSpace(in.Name),
		Kind:     in.Kind,
		Rate:     in.Rate,
		Position: in.Position,
	}
	if adj.ID == "" {
		adj.ID = uuid.New().String()
	}

	if err := s.catalogRepo.CreateAdjustment(ctx, typ, adj); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAdjustmentExists
		}
		return nil, err
	}
	s.invalidate(ctx)
	return adj, nil
}

// UpdateAdjustment edits a surcharge or discount. Admin only.
// A zero Position keeps the current position.
func (s *CatalogService) UpdateAdjustment(ctx context.Context, callerID string, typ domain.AdjustmentType, in AdjustmentInput) (*domain.Adjustment, error) {
	if err := s.access.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, ErrInvalidAdjustmentID
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	adj, err := s.catalogRepo.GetAdjustment(ctx, typ, in.ID)
	if err != nil {
		return nil, err
	}

	adj.Name = strings.TrimSpace(in.Name)
	adj.Kind = in.Kind
	adj.Rate = in.Rate
	if in.Position != 0 {
		adj.Position = in.Position
	}

	if err := s.catalogRepo.UpdateAdjustment(ctx, typ, adj); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return adj, nil
}

// DeleteAdjustment removes a surcharge or discount. Admin only.
func (s *CatalogService) DeleteAdjustment(ctx context.Context, callerID string, typ domain.AdjustmentType, id string) error {
	if err := s.access.RequireAdmin(ctx, callerID); err != nil {
		return err
	}
	if id == "" {
		return ErrInvalidAdjustmentID
	}

	if err := s.catalogRepo.DeleteAdjustment(ctx, typ, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops the cached snapshot. Failures are logged; the TTL bounds staleness.
func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		log.Printf("catalog cache: invalidate: %v", err)
	}
}

func validRate(v float64) bool {
	return finiteRate(v) && v >= 0
}

// finiteRate is the only check on adjustment rates. A negative surcharge or
// discount is allowed; the engine clamps the final price.
func finiteRate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
