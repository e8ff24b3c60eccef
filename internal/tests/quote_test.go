package tests

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"travelex/internal/domain"
	"travelex/internal/service"
)

func TestQuote_SurchargeThenDiscount(t *testing.T) {
	f := newFixture(t)

	result, err := f.quoteService.Quote(context.Background(), standardQuote())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 45.00 base, +6.75 surcharge, -5.00 discount.
	if result.BasePrice != 45 {
		t.Errorf("expected base 45, got %v", result.BasePrice)
	}
	if got := result.PriceString(); got != "46.75" {
		t.Errorf("expected price 46.75, got %s", got)
	}
	if len(result.Breakdown.Surcharges) != 1 || math.Abs(result.Breakdown.Surcharges[0].Amount-6.75) > 1e-9 {
		t.Errorf("unexpected surcharge breakdown: %+v", result.Breakdown.Surcharges)
	}
	if len(result.Breakdown.Discounts) != 1 || result.Breakdown.Discounts[0].Amount != 5 {
		t.Errorf("unexpected discount breakdown: %+v", result.Breakdown.Discounts)
	}
}

func TestQuote_MinutesConvertToHours(t *testing.T) {
	f := newFixture(t)

	in := standardQuote()
	in.Duration = 120
	in.DurationUnit = "minutes"

	result, err := f.quoteService.Quote(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.PriceString(); got != "46.75" {
		t.Errorf("expected price 46.75, got %s", got)
	}
}

func TestQuote_UnknownDurationUnit(t *testing.T) {
	f := newFixture(t)

	in := standardQuote()
	in.DurationUnit = "fortnights"

	_, err := f.quoteService.Quote(context.Background(), in)
	if !errors.Is(err, service.ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
	if f.catalog.LoadCatalogCallCount != 0 {
		t.Error("catalog should not be loaded for invalid input")
	}
}

func TestQuote_NegativeAndNaNInputsPriceAsZero(t *testing.T) {
	f := newFixture(t)

	result, err := f.quoteService.Quote(context.Background(), service.QuoteInput{
		Distance: -10,
		Duration: math.NaN(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FinalPrice != 0 || result.BasePrice != 0 {
		t.Errorf("expected zero price, got base=%v final=%v", result.BasePrice, result.FinalPrice)
	}
}

func TestQuote_FinalPriceNeverNegative(t *testing.T) {
	f := newFixture(t)
	f.catalog.AddAdjustment(domain.AdjustmentTypeDiscount, domain.Adjustment{
		ID: "d500", Name: "Voucher", Kind: domain.AdjustmentKindFixed, Rate: 500,
	})

	result, err := f.quoteService.Quote(context.Background(), service.QuoteInput{
		Distance:    10,
		Duration:    2,
		DiscountIDs: []string{"d500"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FinalPrice != 0 {
		t.Errorf("expected final price clamped to 0, got %v", result.FinalPrice)
	}
}

func TestQuote_UnknownIDsIgnored(t *testing.T) {
	f := newFixture(t)

	in := standardQuote()
	in.SurchargeIDs = append(in.SurchargeIDs, "does-not-exist")

	result, err := f.quoteService.Quote(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.PriceString(); got != "46.75" {
		t.Errorf("expected price 46.75, got %s", got)
	}
}

func TestQuote_CatalogFailureSurfacesMessage(t *testing.T) {
	f := newFixture(t)
	f.catalog.LoadError = errors.New("connection refused")

	_, err := f.quoteService.Quote(context.Background(), standardQuote())
	if !errors.Is(err, service.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected underlying message in error, got %q", err.Error())
	}
}

func TestQuote_ReadsFreshCatalogEveryTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.quoteService.Quote(ctx, standardQuote()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.catalog.SetRates(3, 30)

	result, err := f.quoteService.Quote(ctx, standardQuote())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BasePrice != 90 {
		t.Errorf("expected base 90 after rate change, got %v", result.BasePrice)
	}
	if f.catalog.LoadCatalogCallCount != 2 {
		t.Errorf("expected 2 catalog loads, got %d", f.catalog.LoadCatalogCallCount)
	}
	if f.cache.GetCallCount != 0 {
		t.Error("authoritative quote should not read the cache")
	}
}

func TestPreview_MatchesQuoteForSameCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	quote, err := f.quoteService.Quote(ctx, standardQuote())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	preview, err := f.quoteService.Preview(ctx, standardQuote())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.PriceString() != preview.PriceString() {
		t.Errorf("preview %s differs from quote %s", preview.PriceString(), quote.PriceString())
	}
}

func TestPreview_ServedFromCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.quoteService.Preview(ctx, standardQuote()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if f.catalog.LoadFullCatalogCallCount != 1 {
		t.Errorf("expected 1 full catalog load, got %d", f.catalog.LoadFullCatalogCallCount)
	}
	if !f.cache.IsCached() {
		t.Error("expected catalog snapshot to be cached")
	}
}

func TestPreview_CacheErrorFallsBackToRepository(t *testing.T) {
	f := newFixture(t)
	f.cache.GetError = ErrMockTimeout

	result, err := f.quoteService.Preview(context.Background(), standardQuote())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.PriceString(); got != "46.75" {
		t.Errorf("expected price 46.75, got %s", got)
	}
}

func TestPreview_CatalogFailure(t *testing.T) {
	f := newFixture(t)
	f.catalog.LoadError = errors.New("relation \"settings\" does not exist")

	_, err := f.quoteService.Preview(context.Background(), standardQuote())
	if !errors.Is(err, service.ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}
