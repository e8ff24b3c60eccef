package domain

import "time"

// Trip is a priced trip. The price fields are frozen at save time and are no
// longer tied to the rate catalog.
type Trip struct {
	ID             string
	OwnerID        string
	Title          string
	Destination    string
	DestinationLat float64
	DestinationLng float64
	TravelDate     string // YYYY-MM-DD, optional
	Distance       float64
	DurationHours  float64
	SurchargeIDs   []string
	DiscountIDs    []string
	BasePrice      float64
	FinalPrice     float64
	Breakdown      QuoteBreakdown
	CreatedAt      time.Time
}
