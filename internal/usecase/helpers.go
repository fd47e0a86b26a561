package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/domain/pricing"
	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func uniqueTrimmed(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func validateClient(in ClientInput) (ClientInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = entities.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" {
		return in, ErrInvalidClientName
	}
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email {
		return in, ErrInvalidClientEmail
	}
	return in, nil
}

func resolveLocale(raw string, b *document.Builder) (document.Locale, error) {
	if strings.TrimSpace(raw) == "" {
		return b.Settings().DefaultLocale, nil
	}
	l, err := document.ParseLocale(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLocale, err)
	}
	return l, nil
}

func loadCatalog(ctx context.Context, repo interfaces.IServiceRepository, items []entities.LineItem) (pricing.Catalog, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ServiceID)
	}
	ids = uniqueTrimmed(ids)
	if len(ids) == 0 {
		return pricing.Catalog{}, nil
	}
	services, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return pricing.NewCatalog(services), nil
}

// sendAndRecord delivers msg and appends it to the document's email history.
// A missing sender or a delivery failure is logged and reported as false;
// history is only written for delivered emails.
func sendAndRecord(
	ctx context.Context,
	logger *zap.Logger,
	sender interfaces.IEmailSender,
	history interfaces.IEmailHistoryRepository,
	documentID string,
	kind entities.EmailType,
	msg interfaces.EmailMessage,
	now func() time.Time,
) bool {
	if sender == nil {
		logger.Warn("[email][usecase] sender not configured", zap.String("document_id", documentID))
		return false
	}
	providerID, err := sender.Send(ctx, msg)
	if err != nil {
		logger.Warn("[email][usecase] send failed", zap.String("document_id", documentID), zap.Error(err))
		return false
	}
	logger.Info("[email][usecase] sent", zap.String("document_id", documentID), zap.String("provider_id", providerID), zap.String("type", string(kind)))

	if history == nil {
		return true
	}
	if _, err := history.Append(ctx, entities.EmailHistoryEntry{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Type:       kind,
		Subject:    msg.Subject,
		Content:    msg.Text,
		SentAt:     now(),
	}); err != nil {
		logger.Error("[email][usecase] history append failed", zap.String("document_id", documentID), zap.Error(err))
	}
	return true
}

func newID() string {
	return uuid.NewString()
}
