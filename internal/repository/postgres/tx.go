package postgres

import (
	"context"
	"database/sql"

	"travelex/internal/repository"
)

// UnitOfWork implements repository.UnitOfWork with a database/sql transaction.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a new UnitOfWork.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do runs fn with transaction-scoped repositories.
func (u *UnitOfWork) Do(ctx context.Context, fn func(repos repository.TxRepositories) error) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	repos := repository.TxRepositories{
		Orders:   NewOrderRepositoryWithTx(tx),
		Invoices: NewInvoiceRepositoryWithTx(tx),
	}

	if err = fn(repos); err != nil {
		return err
	}

	return tx.Commit()
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
