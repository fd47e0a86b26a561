package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/domain/pricing"
	"obra_presupuestos/internal/usecase/interfaces"
	mock_interfaces "obra_presupuestos/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func catalogServices() []entities.Service {
	return []entities.Service{
		{ID: "svc-1", Name: "Alicatado", Unit: "m²", BaseUnitPrice: decimal.NewFromInt(30)},
		{ID: "svc-2", Name: "Pintura", Unit: "m²", BaseUnitPrice: decimal.NewFromInt(12)},
	}
}

func budgetCommand() CreateBudgetCommand {
	return CreateBudgetCommand{
		Client:      ClientInput{Name: "Ana García", Email: " Ana@Example.com "},
		ProjectName: "Reforma baño",
		Items: []entities.LineItem{
			{ServiceID: "svc-1", Quantity: decimal.NewFromInt(10)},
			{ServiceID: "svc-2", Quantity: decimal.NewFromInt(10)},
		},
		DistanceKm: decimal.NewFromInt(25),
	}
}

type budgetMocks struct {
	budgets  *mock_interfaces.MockIBudgetRepository
	clients  *mock_interfaces.MockIClientRepository
	services *mock_interfaces.MockIServiceRepository
	history  *mock_interfaces.MockIEmailHistoryRepository
	sequence *mock_interfaces.MockISequenceGenerator
	sender   *mock_interfaces.MockIEmailSender
	renderer *mock_interfaces.MockIDocumentRenderer
	llm      *mock_interfaces.MockITextGenerator
}

func newBudgetUseCaseForTest(t *testing.T) (*BudgetUseCase, budgetMocks) {
	ctrl := gomock.NewController(t)
	m := budgetMocks{
		budgets:  mock_interfaces.NewMockIBudgetRepository(ctrl),
		clients:  mock_interfaces.NewMockIClientRepository(ctrl),
		services: mock_interfaces.NewMockIServiceRepository(ctrl),
		history:  mock_interfaces.NewMockIEmailHistoryRepository(ctrl),
		sequence: mock_interfaces.NewMockISequenceGenerator(ctrl),
		sender:   mock_interfaces.NewMockIEmailSender(ctrl),
		renderer: mock_interfaces.NewMockIDocumentRenderer(ctrl),
		llm:      mock_interfaces.NewMockITextGenerator(ctrl),
	}
	uc := NewBudgetUseCase(BudgetDependencies{
		Budgets:      m.budgets,
		Clients:      m.clients,
		Services:     m.services,
		History:      m.history,
		Sequence:     m.sequence,
		Sender:       m.sender,
		Renderer:     m.renderer,
		Observations: NewObservationUseCase(m.llm, nil),
		Engine:       pricing.NewEngine(pricing.DefaultConfig()),
		Builder:      document.NewBuilder(document.DefaultSettings()),
		NumberOffset: 10,
	})
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func expectClient(m budgetMocks) {
	m.clients.EXPECT().FindOrCreateByEmail(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c entities.Client) (entities.Client, bool, error) {
			c.ID = "cli-1"
			return c, true, nil
		},
	)
}

func TestBudgetUseCase_Validations(t *testing.T) {
	zero := int64(0)
	cases := []struct {
		name   string
		mutate func(*CreateBudgetCommand)
		want   error
	}{
		{name: "blank client name", mutate: func(c *CreateBudgetCommand) { c.Client.Name = " " }, want: ErrInvalidClientName},
		{name: "invalid email", mutate: func(c *CreateBudgetCommand) { c.Client.Email = "not-an-email" }, want: ErrInvalidClientEmail},
		{name: "display name email", mutate: func(c *CreateBudgetCommand) { c.Client.Email = "Ana <ana@example.com>" }, want: ErrInvalidClientEmail},
		{name: "blank project", mutate: func(c *CreateBudgetCommand) { c.ProjectName = "" }, want: ErrInvalidProjectName},
		{name: "no items", mutate: func(c *CreateBudgetCommand) { c.Items = nil }, want: ErrNoLineItems},
		{name: "zero number", mutate: func(c *CreateBudgetCommand) { c.Number = &zero }, want: ErrInvalidDocumentNumber},
		{name: "unknown locale", mutate: func(c *CreateBudgetCommand) { c.Locale = "fr" }, want: ErrInvalidLocale},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _ := newBudgetUseCaseForTest(t)
			cmd := budgetCommand()
			tc.mutate(&cmd)
			_, err := uc.Create(context.Background(), cmd)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBudgetUseCase_Create(t *testing.T) {
	t.Run("stores, emails and marks as sent", func(t *testing.T) {
		uc, m := newBudgetUseCaseForTest(t)

		m.services.EXPECT().GetByIDs(gomock.Any(), []string{"svc-1", "svc-2"}).Return(catalogServices(), nil)
		expectClient(m)
		m.sequence.EXPECT().Next(gomock.Any(), interfaces.SequenceBudget).Return(int64(3), nil)
		m.budgets.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Budget{})).DoAndReturn(
			func(_ context.Context, b entities.Budget) (entities.Budget, error) {
				assert.NotEmpty(t, b.ID)
				assert.Equal(t, int64(13), b.Number)
				assert.Equal(t, "cli-1", b.ClientID)
				assert.Equal(t, entities.BudgetStatusPending, b.Status)
				assert.Equal(t, "420", b.Subtotal.String())
				assert.Equal(t, "30", b.DistanceFee.String())
				assert.Equal(t, "450", b.TotalPrice.String())
				assert.Nil(t, b.Adjustment)
				require.Len(t, b.Items, 2)
				assert.Equal(t, "Alicatado", b.Items[0].ServiceName)
				assert.Equal(t, "300", b.Items[0].ItemTotal.String())
				assert.Equal(t, "es", b.Locale)
				return b, nil
			},
		)
		m.sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msg interfaces.EmailMessage) (string, error) {
				assert.Equal(t, "ana@example.com", msg.To)
				assert.Equal(t, "Presupuesto: Reforma baño - Ana García", msg.Subject)
				assert.Contains(t, msg.Text, "IMPORTE TOTAL: 450.00 €")
				assert.Empty(t, msg.Attachments)
				return "msg-1", nil
			},
		)
		m.history.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.EmailHistoryEntry) (entities.EmailHistoryEntry, error) {
				assert.Equal(t, entities.EmailTypeProposal, e.Type)
				assert.NotEmpty(t, e.DocumentID)
				return e, nil
			},
		)
		m.budgets.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), entities.BudgetStatusSent, gomock.Not(gomock.Nil())).DoAndReturn(
			func(_ context.Context, id string, status entities.BudgetStatus, sentAt *time.Time) (entities.Budget, error) {
				return entities.Budget{ID: id, Number: 13, Status: status, SentAt: sentAt}, nil
			},
		)

		res, err := uc.Create(context.Background(), budgetCommand())
		require.NoError(t, err)
		assert.True(t, res.EmailSent)
		assert.Equal(t, entities.BudgetStatusSent, res.Budget.Status)
		assert.Equal(t, "Presupuesto_13_025.pdf", res.Content.Document.FileName)
		assert.Empty(t, res.Issues)
	})

	t.Run("email failure keeps budget pending", func(t *testing.T) {
		uc, m := newBudgetUseCaseForTest(t)
		n := int64(40)
		cmd := budgetCommand()
		cmd.Number = &n

		m.services.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(catalogServices(), nil)
		expectClient(m)
		m.budgets.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b entities.Budget) (entities.Budget, error) {
				assert.Equal(t, int64(40), b.Number)
				return b, nil
			},
		)
		m.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("smtp down"))

		res, err := uc.Create(context.Background(), cmd)
		require.NoError(t, err)
		assert.False(t, res.EmailSent)
		assert.Equal(t, entities.BudgetStatusPending, res.Budget.Status)
	})

	t.Run("observations add an adjustment", func(t *testing.T) {
		uc, m := newBudgetUseCaseForTest(t)
		cmd := budgetCommand()
		cmd.AnalyzeObservations = true
		cmd.Observations = "Acceso por escalera estrecha"

		m.services.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(catalogServices(), nil)
		m.llm.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(`{"hasAdjustment":true,"adjustment":10,"reason":"Acceso complicado"}`, nil)
		expectClient(m)
		m.sequence.EXPECT().Next(gomock.Any(), interfaces.SequenceBudget).Return(int64(1), nil)
		m.budgets.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b entities.Budget) (entities.Budget, error) {
				require.NotNil(t, b.Adjustment)
				assert.Equal(t, "45", b.Adjustment.String())
				assert.Equal(t, "495", b.TotalPrice.String())
				assert.Equal(t, "Acceso complicado", b.AdjustmentReason)
				return b, nil
			},
		)
		m.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("down"))

		res, err := uc.Create(context.Background(), cmd)
		require.NoError(t, err)
		assert.Contains(t, res.Content.EmailText, "Ajuste (Acceso complicado): 45.00 €")
	})

	t.Run("explicit adjustment skips the llm", func(t *testing.T) {
		uc, m := newBudgetUseCaseForTest(t)
		adj := decimal.NewFromInt(-50)
		cmd := budgetCommand()
		cmd.AnalyzeObservations = true
		cmd.Observations = "cliente habitual"
		cmd.Adjustment = &adj
		n := int64(2)
		cmd.Number = &n

		m.services.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(catalogServices(), nil)

		p, err := uc.Preview(context.Background(), cmd)
		require.NoError(t, err)
		assert.Equal(t, "400", p.Quote.Total.String())
	})

	t.Run("no item could be priced", func(t *testing.T) {
		uc, m := newBudgetUseCaseForTest(t)
		cmd := budgetCommand()
		cmd.Items = []entities.LineItem{{ServiceID: "missing", Quantity: decimal.NewFromInt(1)}}
		m.services.EXPECT().GetByIDs(gomock.Any(), []string{"missing"}).Return(nil, nil)

		_, err := uc.Create(context.Background(), cmd)
		require.ErrorIs(t, err, ErrNoPricedItems)
	})

	t.Run("negative distance", func(t *testing.T) {
		uc, m := newBudgetUseCaseForTest(t)
		cmd := budgetCommand()
		cmd.DistanceKm = decimal.NewFromInt(-1)
		m.services.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(catalogServices(), nil)

		_, err := uc.Create(context.Background(), cmd)
		require.ErrorIs(t, err, pricing.ErrInvalidDistance)
	})
}

func TestBudgetUseCase_Preview(t *testing.T) {
	t.Run("reports unresolved services and peeks the number", func(t *testing.T) {
		uc, m := newBudgetUseCaseForTest(t)
		cmd := budgetCommand()
		cmd.Items = append(cmd.Items, entities.LineItem{ServiceID: "ghost", Quantity: decimal.NewFromInt(1)})

		m.services.EXPECT().GetByIDs(gomock.Any(), []string{"svc-1", "svc-2", "ghost"}).Return(catalogServices(), nil)
		m.sequence.EXPECT().Peek(gomock.Any(), interfaces.SequenceBudget).Return(int64(5), nil)

		p, err := uc.Preview(context.Background(), cmd)
		require.NoError(t, err)
		assert.Equal(t, []string{"ghost"}, p.UnresolvedServiceIDs)
		require.Len(t, p.Issues, 1)
		assert.Equal(t, 2, p.Issues[0].Index)
		assert.Equal(t, "15/025", p.Content.Document.Number)
		assert.Equal(t, "450", p.Quote.Total.String())
	})

	t.Run("pdf without renderer", func(t *testing.T) {
		uc, _ := newBudgetUseCaseForTest(t)
		uc.deps.Renderer = nil
		_, err := uc.PreviewPDF(context.Background(), budgetCommand())
		require.ErrorIs(t, err, ErrRendererNotConfigured)
	})

	t.Run("pdf renders the budget document", func(t *testing.T) {
		uc, m := newBudgetUseCaseForTest(t)
		uc.deps.Sequence = nil
		cmd := budgetCommand()
		cmd.Locale = "pt"

		m.services.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(catalogServices(), nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, doc document.Document) ([]byte, error) {
				assert.Equal(t, document.KindBudget, doc.Kind)
				assert.Equal(t, document.LocalePT, doc.Locale)
				assert.Equal(t, "11/025", doc.Number)
				return []byte("%PDF-1.4"), nil
			},
		)

		r, err := uc.PreviewPDF(context.Background(), cmd)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), r.PDF)
		assert.NotEmpty(t, r.FileName)
	})
}

func TestBudgetUseCase_StatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		current entities.BudgetStatus
		accept  bool
		want    error
	}{
		{name: "accept sent", current: entities.BudgetStatusSent, accept: true},
		{name: "reject pending", current: entities.BudgetStatusPending},
		{name: "accept rejected", current: entities.BudgetStatusRejected, accept: true, want: ErrInvalidStatusTransition},
		{name: "reject accepted", current: entities.BudgetStatusAccepted, want: ErrInvalidStatusTransition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newBudgetUseCaseForTest(t)
			m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Budget{ID: "b-1", Status: tc.current}, nil)
			target := entities.BudgetStatusRejected
			if tc.accept {
				target = entities.BudgetStatusAccepted
			}
			if tc.want == nil {
				m.budgets.EXPECT().UpdateStatus(gomock.Any(), "b-1", target, gomock.Any()).Return(entities.Budget{ID: "b-1", Status: target}, nil)
			}

			var (
				b   entities.Budget
				err error
			)
			if tc.accept {
				b, err = uc.Accept(context.Background(), "b-1")
			} else {
				b, err = uc.Reject(context.Background(), "b-1")
			}
			if tc.want != nil {
				require.ErrorIs(t, err, tc.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, target, b.Status)
		})
	}
}

func TestBudgetUseCase_Getters(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc, _ := newBudgetUseCaseForTest(t)
		_, err := uc.GetByID(context.Background(), " ")
		require.ErrorIs(t, err, ErrInvalidBudgetID)
	})

	t.Run("not found", func(t *testing.T) {
		uc, m := newBudgetUseCaseForTest(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Budget{}, nil)
		_, err := uc.GetByID(context.Background(), "b-1")
		require.ErrorIs(t, err, ErrBudgetNotFound)
	})

	t.Run("history", func(t *testing.T) {
		uc, m := newBudgetUseCaseForTest(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Budget{ID: "b-1"}, nil)
		m.history.EXPECT().ListByDocumentID(gomock.Any(), "b-1").Return([]entities.EmailHistoryEntry{{ID: "h1"}, {ID: "h2"}}, nil)

		h, err := uc.History(context.Background(), "b-1")
		require.NoError(t, err)
		assert.Len(t, h, 2)
	})
}
