package domain

import "strconv"

// QuoteRequest is the sanitized input of a quote computation.
// DurationHours is always in hours; conversions happen at the API boundary.
type QuoteRequest struct {
	Distance      float64
	DurationHours float64
	SurchargeIDs  []string
	DiscountIDs   []string
}

// LineItem is one applied adjustment in a quote breakdown.
type LineItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// QuoteBreakdown lists the applied adjustments in catalog order.
type QuoteBreakdown struct {
	Base       float64    `json:"base"`
	Surcharges []LineItem `json:"surcharges"`
	Discounts  []LineItem `json:"discounts"`
}

// QuoteResult is the output of a quote computation.
type QuoteResult struct {
	BasePrice  float64
	FinalPrice float64
	Breakdown  QuoteBreakdown
}

// PriceString returns the final price formatted with two decimals.
func (q QuoteResult) PriceString() string {
	return strconv.FormatFloat(q.FinalPrice, 'f', 2, 64)
}
