package postgres

import (
	"context"
	"database/sql"
	"errors"

	"obra_presupuestos/internal/usecase/interfaces"
)

// SequenceRepository keeps one counter row per sequence name. The upsert
// makes Next atomic without an explicit transaction.
type SequenceRepository struct {
	db *sql.DB
}

var _ interfaces.ISequenceGenerator = (*SequenceRepository)(nil)

func NewSequenceRepository(db *sql.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sequences (name, value) VALUES ($1, 1)
		 ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		 RETURNING value`,
		name,
	).Scan(&n)
	return n, err
}

func (r *SequenceRepository) Peek(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT value FROM sequences WHERE name = $1`, name).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}
