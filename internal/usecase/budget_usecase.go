package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/domain/pricing"
	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrBudgetNotFound          = errors.New("budget not found")
	ErrInvalidBudgetID         = errors.New("invalid budget id")
	ErrInvalidClientName       = errors.New("invalid client name")
	ErrInvalidClientEmail      = errors.New("invalid client email")
	ErrInvalidProjectName      = errors.New("invalid project name")
	ErrNoLineItems             = errors.New("no line items")
	ErrNoPricedItems           = errors.New("no line item could be priced")
	ErrInvalidLocale           = errors.New("invalid locale")
	ErrInvalidDocumentNumber   = errors.New("invalid document number")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrRendererNotConfigured   = errors.New("document renderer not configured")
)

type ClientInput struct {
	Name  string
	Email string
	Phone string
}

type CreateBudgetCommand struct {
	Client                 ClientInput
	ProjectName            string
	Items                  []entities.LineItem
	DistanceKm             decimal.Decimal
	GlobalDifficultyFactor *decimal.Decimal
	Adjustment             *decimal.Decimal
	AdjustmentReason       string
	// AnalyzeObservations asks the LLM for an adjustment when none is given.
	AnalyzeObservations bool
	Observations        string
	Locale              string
	Number              *int64
}

// BudgetResult is returned after a budget has been stored and (maybe) sent.
type BudgetResult struct {
	Budget               entities.Budget
	Client               entities.Client
	Content              document.Content
	UnresolvedServiceIDs []string
	Issues               []pricing.Issue
	EmailSent            bool
}

// BudgetPreview is a priced, rendered budget that was not stored.
type BudgetPreview struct {
	Quote                pricing.BudgetQuote
	Content              document.Content
	AdjustmentReason     string
	UnresolvedServiceIDs []string
	Issues               []pricing.Issue
}

type RenderedDocument struct {
	FileName string
	PDF      []byte
}

// IBudgetUseCase exposes the budget workflow.
//
//   - Create: price, store, email and mark as sent
//   - Preview/PreviewPDF: same content without side effects
//   - Accept/Reject: client answer, set by the user
type IBudgetUseCase interface {
	Create(ctx context.Context, cmd CreateBudgetCommand) (BudgetResult, error)
	Preview(ctx context.Context, cmd CreateBudgetCommand) (BudgetPreview, error)
	PreviewPDF(ctx context.Context, cmd CreateBudgetCommand) (RenderedDocument, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	List(ctx context.Context) ([]entities.Budget, error)
	Accept(ctx context.Context, id string) (entities.Budget, error)
	Reject(ctx context.Context, id string) (entities.Budget, error)
	History(ctx context.Context, id string) ([]entities.EmailHistoryEntry, error)
}

// BudgetDependencies groups the collaborators of BudgetUseCase. Sender,
// Renderer and Observations may be nil.
type BudgetDependencies struct {
	Budgets      interfaces.IBudgetRepository
	Clients      interfaces.IClientRepository
	Services     interfaces.IServiceRepository
	History      interfaces.IEmailHistoryRepository
	Sequence     interfaces.ISequenceGenerator
	Sender       interfaces.IEmailSender
	Renderer     interfaces.IDocumentRenderer
	Observations IObservationUseCase
	Engine       *pricing.Engine
	Builder      *document.Builder
	// NumberOffset is added to the sequence value (first number = offset+1).
	NumberOffset int64
	Logger       *zap.Logger
}

type BudgetUseCase struct {
	deps   BudgetDependencies
	logger *zap.Logger
	now    func() time.Time
}

var _ IBudgetUseCase = (*BudgetUseCase)(nil)

func NewBudgetUseCase(deps BudgetDependencies) *BudgetUseCase {
	return &BudgetUseCase{deps: deps, logger: orNop(deps.Logger), now: utcNow}
}

func (u *BudgetUseCase) Create(ctx context.Context, cmd CreateBudgetCommand) (BudgetResult, error) {
	u.logger.Info("[budget][usecase] create start", zap.String("client_email", cmd.Client.Email), zap.Int("items", len(cmd.Items)))

	cmd, locale, err := u.validate(cmd)
	if err != nil {
		return BudgetResult{}, err
	}

	quote, reason, err := u.price(ctx, cmd)
	if err != nil {
		return BudgetResult{}, err
	}

	client, created, err := u.deps.Clients.FindOrCreateByEmail(ctx, entities.Client{
		ID:        uuid.NewString(),
		Name:      cmd.Client.Name,
		Email:     cmd.Client.Email,
		Phone:     cmd.Client.Phone,
		CreatedAt: u.now(),
	})
	if err != nil {
		return BudgetResult{}, err
	}
	u.logger.Debug("[budget][usecase] client resolved", zap.String("client_id", client.ID), zap.Bool("created", created))

	number, err := u.number(ctx, cmd.Number)
	if err != nil {
		return BudgetResult{}, err
	}

	now := u.now()
	b := entities.Budget{
		ID:                     uuid.NewString(),
		Number:                 number,
		ClientID:               client.ID,
		ProjectName:            cmd.ProjectName,
		Items:                  quote.LineItems(),
		DistanceKm:             cmd.DistanceKm,
		GlobalDifficultyFactor: cmd.GlobalDifficultyFactor,
		AdjustmentReason:       reason,
		Subtotal:               quote.Subtotal,
		DistanceFee:            quote.DistanceFee,
		TotalPrice:             quote.Total,
		Status:                 entities.BudgetStatusPending,
		Observations:           cmd.Observations,
		Locale:                 string(locale),
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if !quote.Adjustment.IsZero() {
		adj := quote.Adjustment
		b.Adjustment = &adj
	}

	b, err = u.deps.Budgets.Create(ctx, b)
	if err != nil {
		return BudgetResult{}, err
	}

	content := u.deps.Builder.BudgetContent(quote, client, document.Meta{
		Number:           b.Number,
		ProjectName:      b.ProjectName,
		Observations:     b.Observations,
		AdjustmentReason: reason,
		Date:             now,
		Locale:           locale,
	})

	res := BudgetResult{
		Budget:               b,
		Client:               client,
		Content:              content,
		UnresolvedServiceIDs: quote.UnresolvedServiceIDs,
		Issues:               quote.Issues,
	}

	sent := sendAndRecord(ctx, u.logger, u.deps.Sender, u.deps.History, b.ID, entities.EmailTypeProposal, interfaces.EmailMessage{
		To:      client.Email,
		Subject: content.Subject,
		Text:    content.EmailText,
	}, u.now)
	if !sent {
		u.logger.Info("[budget][usecase] create done, email not sent", zap.String("budget_id", b.ID))
		return res, nil
	}

	sentAt := u.now()
	updated, err := u.deps.Budgets.UpdateStatus(ctx, b.ID, entities.BudgetStatusSent, &sentAt)
	if err != nil {
		u.logger.Error("[budget][usecase] mark sent failed", zap.String("budget_id", b.ID), zap.Error(err))
		return BudgetResult{}, err
	}
	if updated.ID != "" {
		res.Budget = updated
	}
	res.EmailSent = true
	u.logger.Info("[budget][usecase] create done", zap.String("budget_id", b.ID), zap.Int64("number", b.Number), zap.String("total", b.TotalPrice.StringFixed(2)))
	return res, nil
}

func (u *BudgetUseCase) Preview(ctx context.Context, cmd CreateBudgetCommand) (BudgetPreview, error) {
	cmd, locale, err := u.validate(cmd)
	if err != nil {
		return BudgetPreview{}, err
	}
	quote, reason, err := u.price(ctx, cmd)
	if err != nil {
		return BudgetPreview{}, err
	}
	number, err := u.previewNumber(ctx, cmd.Number)
	if err != nil {
		return BudgetPreview{}, err
	}

	content := u.deps.Builder.BudgetContent(quote, entities.Client{
		Name:  cmd.Client.Name,
		Email: cmd.Client.Email,
		Phone: cmd.Client.Phone,
	}, document.Meta{
		Number:           number,
		ProjectName:      cmd.ProjectName,
		Observations:     cmd.Observations,
		AdjustmentReason: reason,
		Date:             u.now(),
		Locale:           locale,
	})
	return BudgetPreview{
		Quote:                quote,
		Content:              content,
		AdjustmentReason:     reason,
		UnresolvedServiceIDs: quote.UnresolvedServiceIDs,
		Issues:               quote.Issues,
	}, nil
}

func (u *BudgetUseCase) PreviewPDF(ctx context.Context, cmd CreateBudgetCommand) (RenderedDocument, error) {
	if u.deps.Renderer == nil {
		return RenderedDocument{}, ErrRendererNotConfigured
	}
	p, err := u.Preview(ctx, cmd)
	if err != nil {
		return RenderedDocument{}, err
	}
	pdf, err := u.deps.Renderer.Render(ctx, p.Content.Document)
	if err != nil {
		return RenderedDocument{}, err
	}
	return RenderedDocument{FileName: p.Content.Document.FileName, PDF: pdf}, nil
}

func (u *BudgetUseCase) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Budget{}, ErrInvalidBudgetID
	}
	b, err := u.deps.Budgets.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	if b.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	return b, nil
}

func (u *BudgetUseCase) List(ctx context.Context) ([]entities.Budget, error) {
	return u.deps.Budgets.List(ctx)
}

func (u *BudgetUseCase) Accept(ctx context.Context, id string) (entities.Budget, error) {
	return u.answer(ctx, id, entities.BudgetStatusAccepted)
}

func (u *BudgetUseCase) Reject(ctx context.Context, id string) (entities.Budget, error) {
	return u.answer(ctx, id, entities.BudgetStatusRejected)
}

func (u *BudgetUseCase) History(ctx context.Context, id string) ([]entities.EmailHistoryEntry, error) {
	b, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.deps.History.ListByDocumentID(ctx, b.ID)
}

// answer records the client's decision. Only pending or sent budgets can be
// answered.
func (u *BudgetUseCase) answer(ctx context.Context, id string, status entities.BudgetStatus) (entities.Budget, error) {
	b, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	if b.Status != entities.BudgetStatusPending && b.Status != entities.BudgetStatusSent {
		return entities.Budget{}, ErrInvalidStatusTransition
	}

	updated, err := u.deps.Budgets.UpdateStatus(ctx, b.ID, status, b.SentAt)
	if err != nil {
		return entities.Budget{}, err
	}
	if updated.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	u.logger.Info("[budget][usecase] status changed", zap.String("budget_id", b.ID), zap.String("from", string(b.Status)), zap.String("to", string(status)))
	return updated, nil
}

func (u *BudgetUseCase) validate(cmd CreateBudgetCommand) (CreateBudgetCommand, document.Locale, error) {
	client, err := validateClient(cmd.Client)
	if err != nil {
		return cmd, "", err
	}
	cmd.Client = client
	cmd.ProjectName = strings.TrimSpace(cmd.ProjectName)
	cmd.Observations = strings.TrimSpace(cmd.Observations)
	cmd.AdjustmentReason = strings.TrimSpace(cmd.AdjustmentReason)
	if cmd.ProjectName == "" {
		return cmd, "", ErrInvalidProjectName
	}
	if len(cmd.Items) == 0 {
		return cmd, "", ErrNoLineItems
	}
	if cmd.Number != nil && *cmd.Number <= 0 {
		return cmd, "", ErrInvalidDocumentNumber
	}
	locale, err := resolveLocale(cmd.Locale, u.deps.Builder)
	if err != nil {
		return cmd, "", err
	}
	return cmd, locale, nil
}

// price runs the engine, asking for an observation-based adjustment first
// when the caller did not give one.
func (u *BudgetUseCase) price(ctx context.Context, cmd CreateBudgetCommand) (pricing.BudgetQuote, string, error) {
	catalog, err := loadCatalog(ctx, u.deps.Services, cmd.Items)
	if err != nil {
		return pricing.BudgetQuote{}, "", err
	}

	req := pricing.BudgetRequest{
		Items:                  cmd.Items,
		DistanceKm:             cmd.DistanceKm,
		GlobalDifficultyFactor: cmd.GlobalDifficultyFactor,
		Adjustment:             cmd.Adjustment,
	}
	quote, err := u.deps.Engine.PriceBudget(req, catalog)
	if err != nil {
		return pricing.BudgetQuote{}, "", err
	}
	if len(quote.Items) == 0 {
		return pricing.BudgetQuote{}, "", ErrNoPricedItems
	}
	if !quote.Complete() {
		u.logger.Warn("[budget][usecase] items left out of the quote",
			zap.Strings("unresolved_service_ids", quote.UnresolvedServiceIDs),
			zap.Int("issues", len(quote.Issues)),
		)
	}

	reason := cmd.AdjustmentReason
	if cmd.Adjustment != nil || !cmd.AnalyzeObservations || cmd.Observations == "" || u.deps.Observations == nil {
		return quote, reason, nil
	}

	s, err := u.deps.Observations.Analyze(ctx, cmd.Observations, quote.Total)
	if err != nil {
		return pricing.BudgetQuote{}, "", err
	}
	if s.IsZero() {
		return quote, reason, nil
	}
	req.Adjustment = &s.Amount
	quote, err = u.deps.Engine.PriceBudget(req, catalog)
	if err != nil {
		return pricing.BudgetQuote{}, "", err
	}
	return quote, s.Reason, nil
}

func (u *BudgetUseCase) number(ctx context.Context, given *int64) (int64, error) {
	if given != nil {
		return *given, nil
	}
	n, err := u.deps.Sequence.Next(ctx, interfaces.SequenceBudget)
	if err != nil {
		return 0, err
	}
	return n + u.deps.NumberOffset, nil
}

func (u *BudgetUseCase) previewNumber(ctx context.Context, given *int64) (int64, error) {
	if given != nil {
		return *given, nil
	}
	if u.deps.Sequence == nil {
		return u.deps.NumberOffset + 1, nil
	}
	n, err := u.deps.Sequence.Peek(ctx, interfaces.SequenceBudget)
	if err != nil {
		return 0, err
	}
	return n + u.deps.NumberOffset, nil
}
