package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"travelex/internal/domain"
	"travelex/internal/repository"
)

// settingsRowID is the primary key of the single rate settings row.
const settingsRowID = 1

// CatalogRepository is a PostgreSQL implementation of repository.CatalogRepository.
type CatalogRepository struct {
	q  Querier
	db *sql.DB // nil when bound to a transaction
}

// NewCatalogRepository creates a new PostgreSQL catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{q: db, db: db}
}

// NewCatalogRepositoryWithTx creates a catalog repository using a transaction.
func NewCatalogRepositoryWithTx(tx *sql.Tx) *CatalogRepository {
	return &CatalogRepository{q: tx}
}

func adjustmentTable(typ domain.AdjustmentType) (string, error) {
	switch typ {
	case domain.AdjustmentTypeSurcharge:
		return "surcharge_factors", nil
	case domain.AdjustmentTypeDiscount:
		return "discounts", nil
	default:
		return "", fmt.Errorf("unknown adjustment type %q", typ)
	}
}

// LoadCatalog loads the rates and only the selected adjustments, in catalog order.
// All reads see one snapshot, so a concurrent admin edit is never half-applied.
func (r *CatalogRepository) LoadCatalog(ctx context.Context, surchargeIDs, discountIDs []string) (*domain.RateCatalog, error) {
	var catalog *domain.RateCatalog
	err := r.readSnapshot(ctx, func(repo *CatalogRepository) error {
		rates, err := repo.GetRates(ctx)
		if err != nil {
			return err
		}
		surcharges, err := repo.selectAdjustments(ctx, "surcharge_factors", surchargeIDs)
		if err != nil {
			return fmt.Errorf("load surcharges: %w", err)
		}
		discounts, err := repo.selectAdjustments(ctx, "discounts", discountIDs)
		if err != nil {
			return fmt.Errorf("load discounts: %w", err)
		}
		catalog = newRateCatalog(rates, surcharges, discounts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadFullCatalog loads the rates and every adjustment, in catalog order.
func (r *CatalogRepository) LoadFullCatalog(ctx context.Context) (*domain.RateCatalog, error) {
	var catalog *domain.RateCatalog
	err := r.readSnapshot(ctx, func(repo *CatalogRepository) error {
		rates, err := repo.GetRates(ctx)
		if err != nil {
			return err
		}
		surcharges, err := repo.ListAdjustments(ctx, domain.AdjustmentTypeSurcharge)
		if err != nil {
			return fmt.Errorf("load surcharges: %w", err)
		}
		discounts, err := repo.ListAdjustments(ctx, domain.AdjustmentTypeDiscount)
		if err != nil {
			return fmt.Errorf("load discounts: %w", err)
		}
		catalog = newRateCatalog(rates, surcharges, discounts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// readSnapshot runs fn inside a read-only repeatable-read transaction.
// A repository already bound to a transaction runs fn directly.
func (r *CatalogRepository) readSnapshot(ctx context.Context, fn func(repo *CatalogRepository) error) (err error) {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin catalog snapshot: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(NewCatalogRepositoryWithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func newRateCatalog(rates *domain.Rates, surcharges, discounts []domain.Adjustment) *domain.RateCatalog {
	return &domain.RateCatalog{
		DistanceRate: rates.DistanceRate,
		DurationRate: rates.DurationRate,
		Surcharges:   surcharges,
		Discounts:    discounts,
	}
}

// selectAdjustments returns the rows whose id is in ids.
// An empty selection returns an empty list without querying.
func (r *CatalogRepository) selectAdjustments(ctx context.Context, table string, ids []string) ([]domain.Adjustment, error) {
	if len(ids) == 0 {
		return []domain.Adjustment{}, nil
	}

	query := fmt.Sprintf(`
		SELECT id, name, kind, rate, position, created_at
		FROM %s WHERE id = ANY($1)
		ORDER BY position, created_at, id
	`, table)

	return r.queryAdjustments(ctx, query, pq.Array(ids))
}

// GetRates retrieves the base rates.
func (r *CatalogRepository) GetRates(ctx context.Context) (*domain.Rates, error) {
	query := `SELECT distance_rate, duration_rate, updated_at FROM settings WHERE id = $1`

	var rates domain.Rates
	err := r.q.QueryRowContext(ctx, query, settingsRowID).Scan(
		&rates.DistanceRate,
		&rates.DurationRate,
		&rates.UpdatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("rate settings: %w", repository.ErrNotFound)
		}
		return nil, err
	}
	return &rates, nil
}

// UpdateRates replaces the base rates, creating the settings row if needed.
func (r *CatalogRepository) UpdateRates(ctx context.Context, rates *domain.Rates) error {
	query := `
		INSERT INTO settings (id, distance_rate, duration_rate, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET distance_rate = EXCLUDED.distance_rate, duration_rate = EXCLUDED.duration_rate, updated_at = NOW()
		RETURNING updated_at
	`

	return r.q.QueryRowContext(ctx, query, settingsRowID, rates.DistanceRate, rates.DurationRate).Scan(&rates.UpdatedAt)
}

// ListAdjustments retrieves all adjustments of a type, in catalog order.
func (r *CatalogRepository) ListAdjustments(ctx context.Context, typ domain.AdjustmentType) ([]domain.Adjustment, error) {
	table, err := adjustmentTable(typ)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, kind, rate, position, created_at
		FROM %s ORDER BY position, created_at, id
	`, table)

	return r.queryAdjustments(ctx, query)
}

func (r *CatalogRepository) queryAdjustments(ctx context.Context, query string, args ...any) ([]domain.Adjustment, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	adjustments := []domain.Adjustment{}
	for rows.Next() {
		adj, err := scanAdjustment(rows)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, *adj)
	}
	return adjustments, rows.Err()
}

func scanAdjustment(s scanner) (*domain.Adjustment, error) {
	var adj domain.Adjustment
	if err := s.Scan(&adj.ID, &adj.Name, &adj.Kind, &adj.Rate, &adj.Position, &adj.CreatedAt); err != nil {
		return nil, err
	}
	return &adj, nil
}

// GetAdjustment retrieves one adjustment by ID.
func (r *CatalogRepository) GetAdjustment(ctx context.Context, typ domain.AdjustmentType, id string) (*domain.Adjustment, error) {
	table, err := adjustmentTable(typ)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, name, kind, rate, position, created_at FROM %s WHERE id = $1`, table)

	adj, err := scanAdjustment(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return adj, nil
}

// CreateAdjustment persists a new adjustment. A zero Position appends it to
// the end of the list.
func (r *CatalogRepository) CreateAdjustment(ctx context.Context, typ domain.AdjustmentType, adj *domain.Adjustment) error {
	table, err := adjustmentTable(typ)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (id, name, kind, rate, position)
		VALUES ($1, $2, $3, $4, COALESCE($5, (SELECT COALESCE(MAX(position), 0) + 1 FROM %[1]s)))
		RETURNING position, created_at
	`, table)

	var position sql.NullInt64
	if adj.Position != 0 {
		position = sql.NullInt64{Int64: int64(adj.Position), Valid: true}
	}

	err = r.q.QueryRowContext(ctx, query, adj.ID, adj.Name, adj.Kind, adj.Rate, position).
		Scan(&adj.Position, &adj.CreatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// UpdateAdjustment updates an existing adjustment.
func (r *CatalogRepository) UpdateAdjustment(ctx context.Context, typ domain.AdjustmentType, adj *domain.Adjustment) error {
	table, err := adjustmentTable(typ)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET name = $1, kind = $2, rate = $3, position = $4 WHERE id = $5`, table)

	result, err := r.q.ExecContext(ctx, query, adj.Name, adj.Kind, adj.Rate, adj.Position, adj.ID)
	if err != nil {
		return err
	}
	return checkRowsAffected(result, repository.ErrNotFound)
}

// DeleteAdjustment removes an adjustment.
func (r *CatalogRepository) DeleteAdjustment(ctx context.Context, typ domain.AdjustmentType, id string) error {
	table, err := adjustmentTable(typ)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return err
	}
	return checkRowsAffected(result, repository.ErrNotFound)
}

// Ensure CatalogRepository implements repository.CatalogRepository.
var _ repository.CatalogRepository = (*CatalogRepository)(nil)
