package postgres

import (
	"context"
	"database/sql"
	"errors"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"
)

const clientColumns = "id, email, name, phone, created_at"

type ClientRepository struct {
	db *sql.DB
}

var _ interfaces.IClientRepository = (*ClientRepository)(nil)

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) FindOrCreateByEmail(ctx context.Context, c entities.Client) (entities.Client, bool, error) {
	c.Email = entities.NormalizeEmail(c.Email)

	created, err := scanClient(r.db.QueryRowContext(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO NOTHING RETURNING `+clientColumns,
		c.ID, c.Email, c.Name, c.Phone, c.CreatedAt.UTC(),
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return entities.Client{}, false, err
	}

	existing, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE email = $1`, c.Email))
	if err != nil {
		return entities.Client{}, false, err
	}
	return existing, false, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Client{}, nil
	}
	return c, err
}

func scanClient(row rowScanner) (entities.Client, error) {
	var c entities.Client
	if err := row.Scan(&c.ID, &c.Email, &c.Name, &c.Phone, &c.CreatedAt); err != nil {
		return entities.Client{}, err
	}
	return c, nil
}
