package postgres

import (
	"context"
	"database/sql"

	"travelex/internal/domain"
	"travelex/internal/repository"
)

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	q Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{q: db}
}

// NewOrderRepositoryWithTx creates an order repository using a transaction.
func NewOrderRepositoryWithTx(tx *sql.Tx) *OrderRepository {
	return &OrderRepository{q: tx}
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, trip_id, owner_id, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	return r.q.QueryRowContext(ctx, query,
		order.ID,
		order.TripID,
		order.OwnerID,
		order.Amount,
		order.Status,
	).Scan(&order.CreatedAt)
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, trip_id, owner_id, amount, status, created_at
		FROM orders WHERE id = $1
	`

	var order domain.Order
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.TripID,
		&order.OwnerID,
		&order.Amount,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetByOwnerID retrieves the orders of one user.
func (r *OrderRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Order, error) {
	query := `
		SELECT id, trip_id, owner_id, amount, status, created_at
		FROM orders WHERE owner_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.TripID,
			&order.OwnerID,
			&order.Amount,
			&order.Status,
			&order.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}

// UpdateStatus updates the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(result, repository.ErrNotFound)
}

// Ensure OrderRepository implements repository.OrderRepository.
var _ repository.OrderRepository = (*OrderRepository)(nil)
