package interfaces

import (
	"context"

	"obra_presupuestos/internal/domain/entities"
)

//go:generate mockgen -source=email_history_repository_interface.go -destination=mocks/mock_email_history_repository.go -package=mock_interfaces

// IEmailHistoryRepository is append-only.
type IEmailHistoryRepository interface {
	Append(ctx context.Context, e entities.EmailHistoryEntry) (entities.EmailHistoryEntry, error)
	ListByDocumentID(ctx context.Context, documentID string) ([]entities.EmailHistoryEntry, error)
}
