package postgres

import (
	"context"
	"database/sql"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"
)

type EmailHistoryRepository struct {
	db *sql.DB
}

var _ interfaces.IEmailHistoryRepository = (*EmailHistoryRepository)(nil)

func NewEmailHistoryRepository(db *sql.DB) *EmailHistoryRepository {
	return &EmailHistoryRepository{db: db}
}

func (r *EmailHistoryRepository) Append(ctx context.Context, e entities.EmailHistoryEntry) (entities.EmailHistoryEntry, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO email_history (id, document_id, type, subject, content, sent_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.DocumentID, string(e.Type), e.Subject, e.Content, e.SentAt.UTC(),
	)
	if err != nil {
		return entities.EmailHistoryEntry{}, err
	}
	return e, nil
}

func (r *EmailHistoryRepository) ListByDocumentID(ctx context.Context, documentID string) ([]entities.EmailHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, document_id, type, subject, content, sent_at FROM email_history
		 WHERE document_id = $1 ORDER BY sent_at`,
		documentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entities.EmailHistoryEntry{}
	for rows.Next() {
		var (
			e   entities.EmailHistoryEntry
			typ string
		)
		if err := rows.Scan(&e.ID, &e.DocumentID, &typ, &e.Subject, &e.Content, &e.SentAt); err != nil {
			return nil, err
		}
		e.Type = entities.EmailType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}
