package domain

import "time"

// OrderStatus represents the current status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusInvoiced  OrderStatus = "INVOICED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order references a priced trip.
type Order struct {
	ID        string
	TripID    string
	OwnerID   string
	Amount    float64
	Status    OrderStatus
	CreatedAt time.Time
}
