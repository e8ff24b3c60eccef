package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"travelex/internal/domain"
	"travelex/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

const tripColumns = `id, owner_id, title, destination, destination_lat, destination_lng, travel_date,
	distance, duration_hours, surcharge_ids, discount_ids, base_price, final_price, breakdown, created_at`

// Create persists a new trip. The breakdown is stored as JSONB.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, owner_id, title, destination, destination_lat, destination_lng, travel_date,
			distance, duration_hours, surcharge_ids, discount_ids, base_price, final_price, breakdown)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	breakdown, err := json.Marshal(trip.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}

	var travelDate sql.NullString
	if trip.TravelDate != "" {
		travelDate = sql.NullString{String: trip.TravelDate, Valid: true}
	}

	return r.q.QueryRowContext(ctx, query,
		trip.ID,
		trip.OwnerID,
		trip.Title,
		trip.Destination,
		trip.DestinationLat,
		trip.DestinationLng,
		travelDate,
		trip.Distance,
		trip.DurationHours,
		pq.Array(trip.SurchargeIDs),
		pq.Array(trip.DiscountIDs),
		trip.BasePrice,
		trip.FinalPrice,
		breakdown,
	).Scan(&trip.CreatedAt)
}

func scanTrip(s scanner) (*domain.Trip, error) {
	var trip domain.Trip
	var travelDate sql.NullString
	var breakdown []byte

	if err := s.Scan(
		&trip.ID,
		&trip.OwnerID,
		&trip.Title,
		&trip.Destination,
		&trip.DestinationLat,
		&trip.DestinationLng,
		&travelDate,
		&trip.Distance,
		&trip.DurationHours,
		pq.Array(&trip.SurchargeIDs),
		pq.Array(&trip.DiscountIDs),
		&trip.BasePrice,
		&trip.FinalPrice,
		&breakdown,
		&trip.CreatedAt,
	); err != nil {
		return nil, err
	}

	trip.TravelDate = travelDate.String
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &trip.Breakdown); err != nil {
			return nil, fmt.Errorf("unmarshal breakdown: %w", err)
		}
	}
	return &trip, nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return trip, nil
}

// GetAll retrieves all trips.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at DESC LIMIT 100`
	return r.queryTrips(ctx, query)
}

// GetByOwnerID retrieves the trips of one user.
func (r *TripRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.queryTrips(ctx, query, ownerID)
}

func (r *TripRepository) queryTrips(ctx context.Context, query string, args ...any) ([]*domain.Trip, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

// Delete removes a trip.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(result, repository.ErrNotFound)
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
