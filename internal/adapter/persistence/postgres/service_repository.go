package postgres

import (
	"context"
	"database/sql"
	"errors"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"
)

const serviceColumns = "id, name, unit, base_unit_price, created_at, updated_at"

type ServiceRepository struct {
	db *sql.DB
}

var _ interfaces.IServiceRepository = (*ServiceRepository)(nil)

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s entities.Service) (entities.Service, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO services (`+serviceColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.Unit, s.BaseUnitPrice, s.CreatedAt.UTC(), s.UpdatedAt.UTC(),
	)
	if err != nil {
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	s, err := scanService(r.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Service{}, nil
	}
	return s, err
}

func (r *ServiceRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.Service, error) {
	if len(ids) == 0 {
		return []entities.Service{}, nil
	}
	// pgx encodes a []string argument as text[].
	return r.query(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ANY($1)`, ids)
}

func (r *ServiceRepository) List(ctx context.Context) ([]entities.Service, error) {
	return r.query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY name`)
}

func (r *ServiceRepository) Update(ctx context.Context, s entities.Service) (entities.Service, error) {
	updated, err := scanService(r.db.QueryRowContext(ctx,
		`UPDATE services SET name = $2, unit = $3, base_unit_price = $4, updated_at = $5
		 WHERE id = $1 RETURNING `+serviceColumns,
		s.ID, s.Name, s.Unit, s.BaseUnitPrice, s.UpdatedAt.UTC(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Service{}, nil
	}
	return updated, err
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ServiceRepository) query(ctx context.Context, q string, args ...any) ([]entities.Service, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entities.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanService(row rowScanner) (entities.Service, error) {
	var s entities.Service
	if err := row.Scan(&s.ID, &s.Name, &s.Unit, &s.BaseUnitPrice, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return entities.Service{}, err
	}
	return s, nil
}
