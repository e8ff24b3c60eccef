package domain

import "time"

// AdjustmentKind describes how an adjustment rate is applied.
type AdjustmentKind string

const (
	AdjustmentKindPercentage AdjustmentKind = "percentage"
	AdjustmentKindFixed      AdjustmentKind = "fixed"
)

// Valid reports whether the kind is one of the known kinds.
func (k AdjustmentKind) Valid() bool {
	return k == AdjustmentKindPercentage || k == AdjustmentKindFixed
}

// AdjustmentType distinguishes surcharges from discounts.
type AdjustmentType string

const (
	AdjustmentTypeSurcharge AdjustmentType = "surcharge"
	AdjustmentTypeDiscount  AdjustmentType = "discount"
)

// Adjustment is a named surcharge or discount.
// A percentage rate applies to the running price at the time it is applied;
// a fixed rate is an absolute currency amount.
type Adjustment struct {
	ID        string
	Name      string
	Kind      AdjustmentKind
	Rate      float64
	Position  int // Catalog order within its list
	CreatedAt time.Time
}

// Rates holds the base per-unit prices.
type Rates struct {
	DistanceRate float64 // Price per km
	DurationRate float64 // Price per hour
	UpdatedAt    time.Time
}

// RateCatalog is a read-only snapshot used for a single quote computation.
// Surcharges and Discounts are in catalog order.
type RateCatalog struct {
	DistanceRate float64
	DurationRate float64
	Surcharges   []Adjustment
	Discounts    []Adjustment
}
