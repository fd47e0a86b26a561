package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"
)

const invoiceColumns = `id, number, client_id, project_name, items, subtotal, tax, grand_total, status,
	observations, locale, created_at, updated_at, sent_at`

type InvoiceRepository struct {
	db *sql.DB
}

var _ interfaces.IInvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return entities.Invoice{}, err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO invoices (`+invoiceColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		inv.ID, inv.Number, inv.ClientID, inv.ProjectName, string(items), inv.Subtotal, inv.Tax, inv.GrandTotal,
		string(inv.Status), inv.Observations, inv.Locale, inv.CreatedAt.UTC(), inv.UpdatedAt.UTC(), nullTime(inv.SentAt),
	)
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Invoice{}, nil
	}
	return inv, err
}

func (r *InvoiceRepository) List(ctx context.Context) ([]entities.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY number DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entities.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus, sentAt *time.Time) (entities.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(ctx,
		`UPDATE invoices SET status = $2, updated_at = $3, sent_at = COALESCE($4, sent_at)
		 WHERE id = $1 RETURNING `+invoiceColumns,
		id, string(status), time.Now().UTC(), nullTime(sentAt),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Invoice{}, nil
	}
	return inv, err
}

func scanInvoice(row rowScanner) (entities.Invoice, error) {
	var (
		inv    entities.Invoice
		items  []byte
		status string
		sentAt sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.ClientID, &inv.ProjectName, &items, &inv.Subtotal, &inv.Tax, &inv.GrandTotal, &status,
		&inv.Observations, &inv.Locale, &inv.CreatedAt, &inv.UpdatedAt, &sentAt,
	)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Items, err = decodeItems(items); err != nil {
		return entities.Invoice{}, err
	}
	inv.Status = entities.InvoiceStatus(status)
	inv.SentAt = timePtr(sentAt)
	return inv, nil
}
