package repository

import (
	"context"

	"travelex/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves all trips.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// GetByOwnerID retrieves the trips of one user.
	GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Trip, error)

	// Delete removes a trip.
	Delete(ctx context.Context, id string) error
}
