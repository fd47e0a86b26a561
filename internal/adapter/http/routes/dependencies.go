package routes

import (
	"context"
	"database/sql"
	"fmt"

	"obra_presupuestos/internal/adapter/persistence/postgres"
	"obra_presupuestos/internal/adapter/persistence/repository"
	"obra_presupuestos/internal/config"
	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/domain/pricing"
	"obra_presupuestos/internal/infrastructure/database"
	"obra_presupuestos/internal/infrastructure/email"
	"obra_presupuestos/internal/infrastructure/llm"
	"obra_presupuestos/internal/infrastructure/payments"
	"obra_presupuestos/internal/infrastructure/pdf"
	"obra_presupuestos/internal/usecase"
	"obra_presupuestos/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// Repositories groups the storage ports of one driver.
type Repositories struct {
	Services        interfaces.IServiceRepository
	Clients         interfaces.IClientRepository
	Budgets         interfaces.IBudgetRepository
	Invoices        interfaces.IInvoiceRepository
	EmailHistory    interfaces.IEmailHistoryRepository
	InvoicePayments interfaces.IInvoicePaymentRepository
	Sequence        interfaces.ISequenceGenerator
}

// Dependencies are the use cases served over HTTP.
type Dependencies struct {
	Services        usecase.IServiceUseCase
	Budgets         usecase.IBudgetUseCase
	Invoices        usecase.IInvoiceUseCase
	Responses       usecase.IResponseUseCase
	Observations    usecase.IObservationUseCase
	InvoicePayments usecase.IInvoicePaymentUseCase
	PaymentMockMode bool
}

// OpenRepositories connects to the configured storage driver. The returned
// close func releases the connection.
func OpenRepositories(ctx context.Context, cfg *config.Config) (*Repositories, func() error, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := database.ConnectPostgres(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return postgresRepositories(db), db.Close, nil
	case config.StorageDynamoDB:
		d := cfg.Storage.DynamoDB
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBOptions{
			Region:          d.Region,
			Endpoint:        d.Endpoint,
			AccessKeyID:     d.AccessKeyID,
			SecretAccessKey: d.SecretAccessKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create dynamodb client: %w", err)
		}
		tables := repository.Tables{
			Services:        d.ServicesTable,
			Clients:         d.ClientsTable,
			Budgets:         d.BudgetsTable,
			Invoices:        d.InvoicesTable,
			EmailHistory:    d.EmailHistoryTable,
			InvoicePayments: d.InvoicePaymentsTable,
			Sequences:       d.SequencesTable,
		}
		return &Repositories{
			Services:        repository.NewServiceDynamoRepository(ddb, tables),
			Clients:         repository.NewClientDynamoRepository(ddb, tables),
			Budgets:         repository.NewBudgetDynamoRepository(ddb, tables),
			Invoices:        repository.NewInvoiceDynamoRepository(ddb, tables),
			EmailHistory:    repository.NewEmailHistoryDynamoRepository(ddb, tables),
			InvoicePayments: repository.NewInvoicePaymentDynamoRepository(ddb, tables),
			Sequence:        repository.NewSequenceDynamoRepository(ddb, tables),
		}, func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func postgresRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Services:        postgres.NewServiceRepository(db),
		Clients:         postgres.NewClientRepository(db),
		Budgets:         postgres.NewBudgetRepository(db),
		Invoices:        postgres.NewInvoiceRepository(db),
		EmailHistory:    postgres.NewEmailHistoryRepository(db),
		InvoicePayments: postgres.NewInvoicePaymentRepository(db),
		Sequence:        postgres.NewSequenceRepository(db),
	}
}

// Collaborators are the optional outbound adapters. A nil field disables
// the features that need it.
type Collaborators struct {
	Sender   interfaces.IEmailSender
	LLM      interfaces.ITextGenerator
	Renderer interfaces.IDocumentRenderer
	Gateway  interfaces.IPaymentGateway
}

// NewCollaborators builds every adapter whose credentials are configured.
func NewCollaborators(ctx context.Context, cfg *config.Config, logger *zap.Logger) Collaborators {
	var c Collaborators

	if cfg.Email.ResendAPIKey != "" {
		sender, err := email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.ReplyTo, logger)
		if err != nil {
			logger.Warn("[app] email sender not configured", zap.Error(err))
		} else {
			c.Sender = sender
		}
	} else {
		logger.Info("[app] RESEND_API_KEY not set, emails disabled")
	}

	if cfg.LLM.GeminiAPIKey != "" {
		gen, err := llm.NewGenAIGenerator(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.Model, logger)
		if err != nil {
			logger.Warn("[app] llm not configured", zap.Error(err))
		} else {
			c.LLM = gen
		}
	} else {
		logger.Info("[app] GEMINI_API_KEY not set, AI features disabled")
	}

	c.Renderer = pdf.NewChromeRenderer(pdf.Options{ExecPath: cfg.PDF.ChromePath, Timeout: cfg.PDF.Timeout}, logger)

	if !cfg.Payments.MockMode {
		gw, err := payments.NewMercadoPagoGateway(cfg.Payments.MercadoPagoAccessToken, logger)
		if err != nil {
			logger.Warn("[app] Mercado Pago gateway not configured", zap.Error(err))
		} else {
			c.Gateway = gw
		}
	}
	return c
}

// NewDependencies wires the use cases on top of repos and collaborators.
func NewDependencies(cfg *config.Config, repos *Repositories, c Collaborators, logger *zap.Logger) *Dependencies {
	engine := pricing.NewEngine(cfg.PricingConfig())
	builder := document.NewBuilder(cfg.DocumentSettings())

	observations := usecase.NewObservationUseCase(c.LLM, logger)
	budgets := usecase.NewBudgetUseCase(usecase.BudgetDependencies{
		Budgets:      repos.Budgets,
		Clients:      repos.Clients,
		Services:     repos.Services,
		History:      repos.EmailHistory,
		Sequence:     repos.Sequence,
		Sender:       c.Sender,
		Renderer:     c.Renderer,
		Observations: observations,
		Engine:       engine,
		Builder:      builder,
		NumberOffset: cfg.Numbering.BudgetOffset,
		Logger:       logger,
	})
	invoices := usecase.NewInvoiceUseCase(usecase.InvoiceDependencies{
		Invoices:     repos.Invoices,
		Clients:      repos.Clients,
		Services:     repos.Services,
		History:      repos.EmailHistory,
		Sequence:     repos.Sequence,
		Sender:       c.Sender,
		Renderer:     c.Renderer,
		Engine:       engine,
		Builder:      builder,
		NumberOffset: cfg.Numbering.InvoiceOffset,
		Logger:       logger,
	})

	return &Dependencies{
		Services:     usecase.NewServiceUseCase(repos.Services, logger),
		Budgets:      budgets,
		Invoices:     invoices,
		Responses:    usecase.NewResponseUseCase(budgets, repos.Clients, repos.EmailHistory, c.Sender, c.LLM, builder, logger),
		Observations: observations,
		InvoicePayments: usecase.NewInvoicePaymentUseCase(repos.InvoicePayments, repos.Invoices, c.Gateway, usecase.PaymentSettings{
			MockMode:        cfg.Payments.MockMode,
			SandboxToken:    cfg.Payments.SandboxToken(),
			TestPayerEmail:  cfg.Payments.TestPayerEmail,
			TestPayerUserID: cfg.Payments.TestPayerUserID,
		}, logger),
		PaymentMockMode: cfg.Payments.MockMode,
	}
}
