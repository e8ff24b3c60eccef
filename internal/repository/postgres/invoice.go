package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"travelex/internal/domain"
	"travelex/internal/repository"
)

// InvoiceRepository is a PostgreSQL implementation of repository.InvoiceRepository.
type InvoiceRepository struct {
	q Querier
}

// NewInvoiceRepository creates a new PostgreSQL invoice repository.
func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{q: db}
}

// NewInvoiceRepositoryWithTx creates an invoice repository using a transaction.
func NewInvoiceRepositoryWithTx(tx *sql.Tx) *InvoiceRepository {
	return &InvoiceRepository{q: tx}
}

// Create persists a new invoice. A second invoice for the same order
// returns repository.ErrDuplicate.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (id, order_id, trip_id, owner_id, number, amount, breakdown, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	breakdown, err := json.Marshal(invoice.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}

	_, err = r.q.ExecContext(ctx, query,
		invoice.ID,
		invoice.OrderID,
		invoice.TripID,
		invoice.OwnerID,
		invoice.Number,
		invoice.Amount,
		breakdown,
		invoice.IssuedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	invoice, err := r.getOne(ctx, `WHERE id = $1`, id)
	if isNotFound(err) {
		return nil, repository.ErrNotFound
	}
	return invoice, err
}

// GetByOrderID retrieves the invoice of an order.
// Returns nil if the order has not been invoiced.
func (r *InvoiceRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Invoice, error) {
	invoice, err := r.getOne(ctx, `WHERE order_id = $1`, orderID)
	if isNotFound(err) {
		return nil, nil
	}
	return invoice, err
}

func (r *InvoiceRepository) getOne(ctx context.Context, where string, arg string) (*domain.Invoice, error) {
	query := `
		SELECT id, order_id, trip_id, owner_id, number, amount, breakdown, issued_at
		FROM invoices ` + where

	var invoice domain.Invoice
	var breakdown []byte
	err := r.q.QueryRowContext(ctx, query, arg).Scan(
		&invoice.ID,
		&invoice.OrderID,
		&invoice.TripID,
		&invoice.OwnerID,
		&invoice.Number,
		&invoice.Amount,
		&breakdown,
		&invoice.IssuedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &invoice.Breakdown); err != nil {
			return nil, fmt.Errorf("unmarshal breakdown: %w", err)
		}
	}
	return &invoice, nil
}

// Ensure InvoiceRepository implements repository.InvoiceRepository.
var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)
