package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

const budgetColumns = `id, number, client_id, project_name, items, distance_km, global_difficulty_factor,
	adjustment, adjustment_reason, subtotal, distance_fee, total_price, status, observations, locale,
	created_at, updated_at, sent_at`

type BudgetRepository struct {
	db *sql.DB
}

var _ interfaces.IBudgetRepository = (*BudgetRepository)(nil)

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	items, err := encodeItems(b.Items)
	if err != nil {
		return entities.Budget{}, err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO budgets (`+budgetColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		b.ID, b.Number, b.ClientID, b.ProjectName, string(items), b.DistanceKm,
		nullDecimal(b.GlobalDifficultyFactor), nullDecimal(b.Adjustment), b.AdjustmentReason,
		b.Subtotal, b.DistanceFee, b.TotalPrice, string(b.Status), b.Observations, b.Locale,
		b.CreatedAt.UTC(), b.UpdatedAt.UTC(), nullTime(b.SentAt),
	)
	if err != nil {
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	b, err := scanBudget(r.db.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Budget{}, nil
	}
	return b, err
}

func (r *BudgetRepository) List(ctx context.Context) ([]entities.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+budgetColumns+` FROM budgets ORDER BY number DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entities.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus keeps the stored sent_at when sentAt is nil.
func (r *BudgetRepository) UpdateStatus(ctx context.Context, id string, status entities.BudgetStatus, sentAt *time.Time) (entities.Budget, error) {
	b, err := scanBudget(r.db.QueryRowContext(ctx,
		`UPDATE budgets SET status = $2, updated_at = $3, sent_at = COALESCE($4, sent_at)
		 WHERE id = $1 RETURNING `+budgetColumns,
		id, string(status), time.Now().UTC(), nullTime(sentAt),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Budget{}, nil
	}
	return b, err
}

func scanBudget(row rowScanner) (entities.Budget, error) {
	var (
		b      entities.Budget
		items  []byte
		factor decimal.NullDecimal
		adj    decimal.NullDecimal
		status string
		sentAt sql.NullTime
	)
	err := row.Scan(
		&b.ID, &b.Number, &b.ClientID, &b.ProjectName, &items, &b.DistanceKm, &factor,
		&adj, &b.AdjustmentReason, &b.Subtotal, &b.DistanceFee, &b.TotalPrice, &status, &b.Observations, &b.Locale,
		&b.CreatedAt, &b.UpdatedAt, &sentAt,
	)
	if err != nil {
		return entities.Budget{}, err
	}
	if b.Items, err = decodeItems(items); err != nil {
		return entities.Budget{}, err
	}
	b.GlobalDifficultyFactor = decimalPtr(factor)
	b.Adjustment = decimalPtr(adj)
	b.Status = entities.BudgetStatus(status)
	b.SentAt = timePtr(sentAt)
	return b, nil
}
