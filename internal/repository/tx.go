package repository

import "context"

// TxRepositories are repositories bound to a single transaction.
type TxRepositories struct {
	Orders   OrderRepository
	Invoices InvoiceRepository
}

// UnitOfWork runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos TxRepositories) error) error
}
