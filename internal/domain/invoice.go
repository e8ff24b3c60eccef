package domain

import "time"

// Invoice is issued once per order. Amount is copied from the order.
type Invoice struct {
	ID        string
	OrderID   string
	TripID    string
	OwnerID   string
	Number    string
	Amount    float64
	Breakdown QuoteBreakdown
	IssuedAt  time.Time
}
