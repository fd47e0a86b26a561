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
	"go.uber.org/zap"
)

var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvalidInvoiceID = errors.New("invalid invoice id")
)

type CreateInvoiceCommand struct {
	Client       ClientInput
	ProjectName  string
	Items        []entities.LineItem
	Observations string
	Locale       string
	Number       *int64
	// Optional overrides of the default invoice email.
	EmailSubject string
	EmailBody    string
}

type InvoiceResult struct {
	Invoice              entities.Invoice
	Client               entities.Client
	Content              document.Content
	FileName             string
	UnresolvedServiceIDs []string
	Issues               []pricing.Issue
	EmailSent            bool
}

// IInvoiceUseCase exposes the invoice workflow: price, render the PDF, store,
// email it as an attachment and mark it as sent.
type IInvoiceUseCase interface {
	Create(ctx context.Context, cmd CreateInvoiceCommand) (InvoiceResult, error)
	PreviewPDF(ctx context.Context, cmd CreateInvoiceCommand) (RenderedDocument, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	List(ctx context.Context) ([]entities.Invoice, error)
}

// InvoiceDependencies groups the collaborators of InvoiceUseCase. Sender may
// be nil; Renderer is required to create invoices.
type InvoiceDependencies struct {
	Invoices     interfaces.IInvoiceRepository
	Clients      interfaces.IClientRepository
	Services     interfaces.IServiceRepository
	History      interfaces.IEmailHistoryRepository
	Sequence     interfaces.ISequenceGenerator
	Sender       interfaces.IEmailSender
	Renderer     interfaces.IDocumentRenderer
	Engine       *pricing.Engine
	Builder      *document.Builder
	NumberOffset int64
	Logger       *zap.Logger
}

type InvoiceUseCase struct {
	deps   InvoiceDependencies
	logger *zap.Logger
	now    func() time.Time
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(deps InvoiceDependencies) *InvoiceUseCase {
	return &InvoiceUseCase{deps: deps, logger: orNop(deps.Logger), now: utcNow}
}

func (u *InvoiceUseCase) Create(ctx context.Context, cmd CreateInvoiceCommand) (InvoiceResult, error) {
	u.logger.Info("[invoice][usecase] create start", zap.String("client_email", cmd.Client.Email), zap.Int("items", len(cmd.Items)))

	cmd, locale, err := u.validate(cmd)
	if err != nil {
		return InvoiceResult{}, err
	}
	if u.deps.Renderer == nil {
		return InvoiceResult{}, ErrRendererNotConfigured
	}

	quote, err := u.price(ctx, cmd)
	if err != nil {
		return InvoiceResult{}, err
	}

	client, _, err := u.deps.Clients.FindOrCreateByEmail(ctx, entities.Client{
		ID:        uuid.NewString(),
		Name:      cmd.Client.Name,
		Email:     cmd.Client.Email,
		Phone:     cmd.Client.Phone,
		CreatedAt: u.now(),
	})
	if err != nil {
		return InvoiceResult{}, err
	}

	number := int64(0)
	if cmd.Number != nil {
		number = *cmd.Number
	} else {
		n, err := u.deps.Sequence.Next(ctx, interfaces.SequenceInvoice)
		if err != nil {
			return InvoiceResult{}, err
		}
		number = n + u.deps.NumberOffset
	}

	now := u.now()
	content := u.deps.Builder.InvoiceContent(quote, client, document.Meta{
		Number:       number,
		ProjectName:  cmd.ProjectName,
		Observations: cmd.Observations,
		Date:         now,
		Locale:       locale,
		EmailSubject: cmd.EmailSubject,
		EmailBody:    cmd.EmailBody,
	})

	// Render before storing so a failing renderer leaves no orphan invoice.
	pdf, err := u.deps.Renderer.Render(ctx, content.Document)
	if err != nil {
		u.logger.Error("[invoice][usecase] render failed", zap.Int64("number", number), zap.Error(err))
		return InvoiceResult{}, err
	}

	inv, err := u.deps.Invoices.Create(ctx, entities.Invoice{
		ID:           uuid.NewString(),
		Number:       number,
		ClientID:     client.ID,
		ProjectName:  cmd.ProjectName,
		Items:        quote.LineItems(),
		Subtotal:     quote.Subtotal,
		Tax:          quote.Tax,
		GrandTotal:   quote.GrandTotal,
		Status:       entities.InvoiceStatusPending,
		Observations: cmd.Observations,
		Locale:       string(locale),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return InvoiceResult{}, err
	}

	res := InvoiceResult{
		Invoice:              inv,
		Client:               client,
		Content:              content,
		FileName:             content.Document.FileName,
		UnresolvedServiceIDs: quote.UnresolvedServiceIDs,
		Issues:               quote.Issues,
	}

	sent := sendAndRecord(ctx, u.logger, u.deps.Sender, u.deps.History, inv.ID, entities.EmailTypeProposal, interfaces.EmailMessage{
		To:      client.Email,
		Subject: content.Subject,
		Text:    content.EmailText,
		Attachments: []interfaces.EmailAttachment{{
			FileName:    content.Document.FileName,
			ContentType: "application/pdf",
			Content:     pdf,
		}},
	}, u.now)
	if !sent {
		return res, nil
	}

	sentAt := u.now()
	updated, err := u.deps.Invoices.UpdateStatus(ctx, inv.ID, entities.InvoiceStatusSent, &sentAt)
	if err != nil {
		u.logger.Error("[invoice][usecase] mark sent failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		return InvoiceResult{}, err
	}
	if updated.ID != "" {
		res.Invoice = updated
	}
	res.EmailSent = true
	u.logger.Info("[invoice][usecase] create done", zap.String("invoice_id", inv.ID), zap.Int64("number", number), zap.String("grand_total", inv.GrandTotal.StringFixed(2)))
	return res, nil
}

func (u *InvoiceUseCase) PreviewPDF(ctx context.Context, cmd CreateInvoiceCommand) (RenderedDocument, error) {
	cmd, locale, err := u.validate(cmd)
	if err != nil {
		return RenderedDocument{}, err
	}
	if u.deps.Renderer == nil {
		return RenderedDocument{}, ErrRendererNotConfigured
	}
	quote, err := u.price(ctx, cmd)
	if err != nil {
		return RenderedDocument{}, err
	}

	number := u.deps.NumberOffset + 1
	if cmd.Number != nil {
		number = *cmd.Number
	} else if u.deps.Sequence != nil {
		n, err := u.deps.Sequence.Peek(ctx, interfaces.SequenceInvoice)
		if err != nil {
			return RenderedDocument{}, err
		}
		number = n + u.deps.NumberOffset
	}

	content := u.deps.Builder.InvoiceContent(quote, entities.Client{
		Name:  cmd.Client.Name,
		Email: cmd.Client.Email,
		Phone: cmd.Client.Phone,
	}, document.Meta{
		Number:       number,
		ProjectName:  cmd.ProjectName,
		Observations: cmd.Observations,
		Date:         u.now(),
		Locale:       locale,
	})
	pdf, err := u.deps.Renderer.Render(ctx, content.Document)
	if err != nil {
		return RenderedDocument{}, err
	}
	return RenderedDocument{FileName: content.Document.FileName, PDF: pdf}, nil
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	inv, err := u.deps.Invoices.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) List(ctx context.Context) ([]entities.Invoice, error) {
	return u.deps.Invoices.List(ctx)
}

func (u *InvoiceUseCase) validate(cmd CreateInvoiceCommand) (CreateInvoiceCommand, document.Locale, error) {
	client, err := validateClient(cmd.Client)
	if err != nil {
		return cmd, "", err
	}
	cmd.Client = client
	cmd.ProjectName = strings.TrimSpace(cmd.ProjectName)
	cmd.Observations = strings.TrimSpace(cmd.Observations)
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

func (u *InvoiceUseCase) price(ctx context.Context, cmd CreateInvoiceCommand) (pricing.InvoiceQuote, error) {
	catalog, err := loadCatalog(ctx, u.deps.Services, cmd.Items)
	if err != nil {
		return pricing.InvoiceQuote{}, err
	}
	quote, err := u.deps.Engine.PriceInvoice(pricing.InvoiceRequest{Items: cmd.Items}, catalog)
	if err != nil {
		return pricing.InvoiceQuote{}, err
	}
	if len(quote.Items) == 0 {
		return pricing.InvoiceQuote{}, ErrNoPricedItems
	}
	if !quote.Complete() {
		u.logger.Warn("[invoice][usecase] items left out of the invoice",
			zap.Strings("unresolved_service_ids", quote.UnresolvedServiceIDs),
			zap.Int("issues", len(quote.Issues)),
		)
	}
	return quote, nil
}
