package service

import (
	"context"
	"errors"
	"fmt"

	"travelex/internal/domain"
	"travelex/internal/pricing"
	"travelex/internal/repository"
)

// QuoteService prices trips against the rate catalog.
type QuoteService struct {
	catalogRepo    repository.CatalogRepository
	catalogService *CatalogService
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(catalogRepo repository.CatalogRepository, catalogService *CatalogService) *QuoteService {
	return &QuoteService{
		catalogRepo:    catalogRepo,
		catalogService: catalogService,
	}
}

// QuoteInput contains raw quote parameters as received at the API boundary.
type QuoteInput struct {
	Distance     float64
	Duration     float64
	DurationUnit string
	SurchargeIDs []string
	DiscountIDs  []string
}

func (in QuoteInput) request() (domain.QuoteRequest, error) {
	req, err := pricing.NewRequest(in.Distance, in.Duration, in.DurationUnit, in.SurchargeIDs, in.DiscountIDs)
	if err != nil {
		return domain.QuoteRequest{}, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}
	return req, nil
}

// Quote computes the authoritative price from a catalog loaded for this request.
func (s *QuoteService) Quote(ctx context.Context, in QuoteInput) (*domain.QuoteResult, error) {
	req, err := in.request()
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalogRepo.LoadCatalog(ctx, req.SurchargeIDs, req.DiscountIDs)
	if err != nil {
		return nil, catalogLoadError(err)
	}

	result := pricing.Compute(req, *catalog)
	return &result, nil
}

// Preview computes a price from the cached full catalog. It runs the same
// computation as Quote and may differ only when the catalog changed in between.
func (s *QuoteService) Preview(ctx context.Context, in QuoteInput) (*domain.QuoteResult, error) {
	req, err := in.request()
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalogService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := pricing.Compute(req, *catalog)
	return &result, nil
}

// catalogLoadError wraps a storage failure so the message reaches the caller.
func catalogLoadError(err error) error {
	if errors.Is(err, ErrCatalogUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
}
