package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"
)

const invoicePaymentColumns = "id, invoice_id, date, status, mp_payload_raw"

// InvoicePaymentRepository stores the raw provider body only. The parsed
// payload is rebuilt from it on read.
type InvoicePaymentRepository struct {
	db *sql.DB
}

var _ interfaces.IInvoicePaymentRepository = (*InvoicePaymentRepository)(nil)

func NewInvoicePaymentRepository(db *sql.DB) *InvoicePaymentRepository {
	return &InvoicePaymentRepository{db: db}
}

func (r *InvoicePaymentRepository) Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invoice_payments (`+invoicePaymentColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.InvoiceID, p.Date.UTC(), string(p.Status), string(p.MPPayloadRaw),
	)
	if err != nil {
		return entities.InvoicePayment{}, err
	}
	return p, nil
}

func (r *InvoicePaymentRepository) GetByID(ctx context.Context, id string) (entities.InvoicePayment, error) {
	p, err := scanInvoicePayment(r.db.QueryRowContext(ctx, `SELECT `+invoicePaymentColumns+` FROM invoice_payments WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.InvoicePayment{}, nil
	}
	return p, err
}

func (r *InvoicePaymentRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invoicePaymentColumns+` FROM invoice_payments WHERE invoice_id = $1 ORDER BY date`,
		invoiceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entities.InvoicePayment{}
	for rows.Next() {
		p, err := scanInvoicePayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanInvoicePayment(row rowScanner) (entities.InvoicePayment, error) {
	var (
		p      entities.InvoicePayment
		status string
		raw    string
	)
	if err := row.Scan(&p.ID, &p.InvoiceID, &p.Date, &status, &raw); err != nil {
		return entities.InvoicePayment{}, err
	}
	p.Status = entities.PaymentStatus(status)
	if raw != "" {
		p.MPPayloadRaw = json.RawMessage(raw)
		var parsed map[string]interface{}
		if json.Unmarshal(p.MPPayloadRaw, &parsed) == nil {
			p.MPPayload = parsed
		}
	}
	return p, nil
}
