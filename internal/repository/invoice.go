package repository

import (
	"context"

	"travelex/internal/domain"
)

// InvoiceRepository defines the persistence operations for invoices.
type InvoiceRepository interface {
	// Create persists a new invoice.
	Create(ctx context.Context, invoice *domain.Invoice) error

	// GetByID retrieves an invoice by ID.
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)

	// GetByOrderID retrieves the invoice of an order.
	// Returns nil if the order has not been invoiced.
	GetByOrderID(ctx context.Context, orderID string) (*domain.Invoice, error)
}
