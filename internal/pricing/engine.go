// Package pricing computes trip quotes from a rate catalog snapshot.
//
// Compute is the single implementation of the pricing rules. Both the
// authoritative quote path and the preview path call it, so a preview shown
// to a user always matches the price billed for the same catalog snapshot.
package pricing

import (
	"math"

	"travelex/internal/domain"
)

// Compute prices a request against a catalog snapshot.
//
// Surcharges are applied first, then discounts, each in catalog order and
// against the running price. Ids not present in the catalog are ignored.
// The final price is clamped at zero; intermediate values are not rounded.
func Compute(req domain.QuoteRequest, catalog domain.RateCatalog) domain.QuoteResult {
	base := req.Distance*catalog.DistanceRate + req.DurationHours*catalog.DurationRate
	price := base

	surcharges := make([]domain.LineItem, 0, len(req.SurchargeIDs))
	selected := idSet(req.SurchargeIDs)
	for _, adj := range catalog.Surcharges {
		if _, ok := selected[adj.ID]; !ok {
			continue
		}
		amount := adjustmentAmount(adj, price)
		price += amount
		surcharges = append(surcharges, domain.LineItem{ID: adj.ID, Name: adj.Name, Amount: amount})
	}

	discounts := make([]domain.LineItem, 0, len(req.DiscountIDs))
	selected = idSet(req.DiscountIDs)
	for _, adj := range catalog.Discounts {
		if _, ok := selected[adj.ID]; !ok {
			continue
		}
		amount := adjustmentAmount(adj, price)
		price -= amount
		discounts = append(discounts, domain.LineItem{ID: adj.ID, Name: adj.Name, Amount: amount})
	}

	return domain.QuoteResult{
		BasePrice:  base,
		FinalPrice: math.Max(0, price),
		Breakdown: domain.QuoteBreakdown{
			Base:       base,
			Surcharges: surcharges,
			Discounts:  discounts,
		},
	}
}

// adjustmentAmount returns the absolute amount an adjustment contributes at
// the given running price. Unknown kinds contribute nothing.
func adjustmentAmount(adj domain.Adjustment, running float64) float64 {
	switch adj.Kind {
	case domain.AdjustmentKindPercentage:
		return running * (adj.Rate / 100)
	case domain.AdjustmentKindFixed:
		return adj.Rate
	default:
		return 0
	}
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
