package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrEmptyClientMessage     = errors.New("empty client message")
	ErrEmptyResponse          = errors.New("empty response content")
	ErrLLMNotConfigured       = errors.New("llm not configured")
	ErrEmailNotConfigured     = errors.New("email sender not configured")
	ErrEmailDeliveryFailed    = errors.New("email delivery failed")
	ErrClientNotFound         = errors.New("client not found")
	errEmptyGeneratedResponse = errors.New("llm returned an empty response")
)

type ResponseResult struct {
	Content string
	Entry   entities.EmailHistoryEntry
}

// IResponseUseCase answers client replies to a budget (typically price
// objections), either with an LLM draft or with text written by the user.
type IResponseUseCase interface {
	Draft(ctx context.Context, budgetID, clientMessage string) (string, error)
	Send(ctx context.Context, budgetID, content string) (entities.EmailHistoryEntry, error)
	Respond(ctx context.Context, budgetID, clientMessage string) (ResponseResult, error)
}

type ResponseUseCase struct {
	budgets IBudgetUseCase
	clients interfaces.IClientRepository
	history interfaces.IEmailHistoryRepository
	sender  interfaces.IEmailSender
	llm     interfaces.ITextGenerator
	builder *document.Builder
	logger  *zap.Logger
	now     func() time.Time
}

var _ IResponseUseCase = (*ResponseUseCase)(nil)

func NewResponseUseCase(
	budgets IBudgetUseCase,
	clients interfaces.IClientRepository,
	history interfaces.IEmailHistoryRepository,
	sender interfaces.IEmailSender,
	llm interfaces.ITextGenerator,
	builder *document.Builder,
	logger *zap.Logger,
) *ResponseUseCase {
	return &ResponseUseCase{
		budgets: budgets,
		clients: clients,
		history: history,
		sender:  sender,
		llm:     llm,
		builder: builder,
		logger:  orNop(logger),
		now:     utcNow,
	}
}

func (u *ResponseUseCase) Draft(ctx context.Context, budgetID, clientMessage string) (string, error) {
	clientMessage = strings.TrimSpace(clientMessage)
	if clientMessage == "" {
		return "", ErrEmptyClientMessage
	}
	if u.llm == nil {
		return "", ErrLLMNotConfigured
	}

	b, client, err := u.load(ctx, budgetID)
	if err != nil {
		return "", err
	}

	text, err := u.llm.Generate(ctx, interfaces.TextPrompt{
		Prompt:      objectionPrompt(b, client, clientMessage),
		Temperature: 0.6,
		MaxTokens:   450,
	})
	if err != nil {
		u.logger.Error("[response][usecase] llm failed", zap.String("budget_id", b.ID), zap.Error(err))
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptyGeneratedResponse
	}
	u.logger.Info("[response][usecase] draft generated", zap.String("budget_id", b.ID), zap.Int("length", len(text)))
	return text, nil
}

func (u *ResponseUseCase) Send(ctx context.Context, budgetID, content string) (entities.EmailHistoryEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return entities.EmailHistoryEntry{}, ErrEmptyResponse
	}
	if u.sender == nil {
		return entities.EmailHistoryEntry{}, ErrEmailNotConfigured
	}

	b, client, err := u.load(ctx, budgetID)
	if err != nil {
		return entities.EmailHistoryEntry{}, err
	}

	locale, _ := document.ParseLocale(b.Locale)
	subject := u.builder.ResponseSubject(locale, b.ProjectName)
	if _, err := u.sender.Send(ctx, interfaces.EmailMessage{To: client.Email, Subject: subject, Text: content}); err != nil {
		u.logger.Error("[response][usecase] send failed", zap.String("budget_id", b.ID), zap.Error(err))
		return entities.EmailHistoryEntry{}, fmt.Errorf("%w: %v", ErrEmailDeliveryFailed, err)
	}

	entry, err := u.history.Append(ctx, entities.EmailHistoryEntry{
		ID:         newID(),
		DocumentID: b.ID,
		Type:       entities.EmailTypeResponse,
		Subject:    subject,
		Content:    content,
		SentAt:     u.now(),
	})
	if err != nil {
		return entities.EmailHistoryEntry{}, err
	}
	u.logger.Info("[response][usecase] response sent", zap.String("budget_id", b.ID), zap.String("entry_id", entry.ID))
	return entry, nil
}

func (u *ResponseUseCase) Respond(ctx context.Context, budgetID, clientMessage string) (ResponseResult, error) {
	text, err := u.Draft(ctx, budgetID, clientMessage)
	if err != nil {
		return ResponseResult{}, err
	}
	entry, err := u.Send(ctx, budgetID, text)
	if err != nil {
		return ResponseResult{Content: text}, err
	}
	return ResponseResult{Content: text, Entry: entry}, nil
}

func (u *ResponseUseCase) load(ctx context.Context, budgetID string) (entities.Budget, entities.Client, error) {
	b, err := u.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return entities.Budget{}, entities.Client{}, err
	}
	client, err := u.clients.GetByID(ctx, b.ClientID)
	if err != nil {
		return entities.Budget{}, entities.Client{}, err
	}
	if client.ID == "" {
		return entities.Budget{}, entities.Client{}, ErrClientNotFound
	}
	return b, client, nil
}

func objectionPrompt(b entities.Budget, client entities.Client, clientMessage string) string {
	var sb strings.Builder
	sb.WriteString("Eres un profesional de la construcción respondiendo a una objeción de precio.\n\n")
	sb.WriteString("CONTEXTO REAL:\n")
	fmt.Fprintf(&sb, "- Cliente: %s\n", client.Name)
	fmt.Fprintf(&sb, "- Proyecto: %s\n", b.ProjectName)
	fmt.Fprintf(&sb, "- Presupuesto: %s€\n", b.TotalPrice.StringFixed(2))
	fmt.Fprintf(&sb, "- Distancia: %s km\n", b.DistanceKm.String())
	fmt.Fprintf(&sb, "- Objeción del cliente: %q\n\n", clientMessage)
	sb.WriteString("INSTRUCCIONES CRÍTICAS:\n")
	sb.WriteString("1. NO inventes información que no conoces (herramientas, garantías, técnicas)\n")
	sb.WriteString("2. SÉ FACTUAL: solo habla de lo que está en el contexto\n")
	sb.WriteString("3. Usa argumentos genéricos pero reales (calidad, experiencia, responsabilidad)\n")
	sb.WriteString("4. NO uses placeholders como [Tu Nombre] o [Tu Empresa]\n")
	sb.WriteString("5. Termina con \"Un cordial saludo\" (sin firma)\n\n")
	sb.WriteString("ESTRUCTURA:\n")
	sb.WriteString("- Saludo empático\n")
	sb.WriteString("- Explica el valor del precio de forma honesta\n")
	sb.WriteString("- Destaca: calidad de trabajo, experiencia, seriedad profesional\n")
	sb.WriteString("- Compara con competencia (sin detalles inventados)\n")
	sb.WriteString("- Ofrece diálogo para ajustar alcance si es necesario\n")
	sb.WriteString("- Cierre profesional\n\n")
	sb.WriteString("Responde SOLO el texto del email, directo para copiar y pegar.")
	return sb.String()
}
