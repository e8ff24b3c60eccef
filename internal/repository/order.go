package repository

import (
	"context"

	"travelex/internal/domain"
)

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// GetByOwnerID retrieves the orders of one user.
	GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Order, error)

	// UpdateStatus updates the status of an order.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
