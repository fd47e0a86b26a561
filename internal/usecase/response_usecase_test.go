package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"
	mock_interfaces "obra_presupuestos/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type responseMocks struct {
	budgets *mock_interfaces.MockIBudgetRepository
	clients *mock_interfaces.MockIClientRepository
	history *mock_interfaces.MockIEmailHistoryRepository
	sender  *mock_interfaces.MockIEmailSender
	llm     *mock_interfaces.MockITextGenerator
}

func newResponseUseCaseForTest(t *testing.T) (*ResponseUseCase, responseMocks) {
	ctrl := gomock.NewController(t)
	m := responseMocks{
		budgets: mock_interfaces.NewMockIBudgetRepository(ctrl),
		clients: mock_interfaces.NewMockIClientRepository(ctrl),
		history: mock_interfaces.NewMockIEmailHistoryRepository(ctrl),
		sender:  mock_interfaces.NewMockIEmailSender(ctrl),
		llm:     mock_interfaces.NewMockITextGenerator(ctrl),
	}
	budgets := NewBudgetUseCase(BudgetDependencies{Budgets: m.budgets, History: m.history})
	uc := NewResponseUseCase(budgets, m.clients, m.history, m.sender, m.llm, document.NewBuilder(document.DefaultSettings()), nil)
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func storedBudget() entities.Budget {
	return entities.Budget{
		ID:          "b-1",
		ClientID:    "cli-1",
		ProjectName: "Reforma baño",
		TotalPrice:  decimal.NewFromInt(450),
		DistanceKm:  decimal.NewFromInt(25),
		Status:      entities.BudgetStatusSent,
		Locale:      "es",
	}
}

func expectBudgetAndClient(m responseMocks) {
	m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(storedBudget(), nil)
	m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", Name: "Ana García", Email: "ana@example.com"}, nil)
}

func TestResponseUseCase_Draft(t *testing.T) {
	t.Run("empty message", func(t *testing.T) {
		uc, _ := newResponseUseCaseForTest(t)
		_, err := uc.Draft(context.Background(), "b-1", "  ")
		require.ErrorIs(t, err, ErrEmptyClientMessage)
	})

	t.Run("llm not configured", func(t *testing.T) {
		uc, _ := newResponseUseCaseForTest(t)
		uc.llm = nil
		_, err := uc.Draft(context.Background(), "b-1", "Es muy caro")
		require.ErrorIs(t, err, ErrLLMNotConfigured)
	})

	t.Run("budget not found", func(t *testing.T) {
		uc, m := newResponseUseCaseForTest(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Budget{}, nil)
		_, err := uc.Draft(context.Background(), "b-1", "Es muy caro")
		require.ErrorIs(t, err, ErrBudgetNotFound)
	})

	t.Run("client missing", func(t *testing.T) {
		uc, m := newResponseUseCaseForTest(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(storedBudget(), nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{}, nil)
		_, err := uc.Draft(context.Background(), "b-1", "Es muy caro")
		require.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("prompt carries the budget context", func(t *testing.T) {
		uc, m := newResponseUseCaseForTest(t)
		expectBudgetAndClient(m)
		m.llm.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p interfaces.TextPrompt) (string, error) {
				assert.Contains(t, p.Prompt, "Cliente: Ana García")
				assert.Contains(t, p.Prompt, "Presupuesto: 450.00€")
				assert.Contains(t, p.Prompt, `"Es muy caro"`)
				assert.False(t, p.JSON)
				return "  Hola Ana, ...\n\nUn cordial saludo  ", nil
			},
		)

		text, err := uc.Draft(context.Background(), "b-1", "Es muy caro")
		require.NoError(t, err)
		assert.Equal(t, "Hola Ana, ...\n\nUn cordial saludo", text)
	})
}

func TestResponseUseCase_Send(t *testing.T) {
	t.Run("empty content", func(t *testing.T) {
		uc, _ := newResponseUseCaseForTest(t)
		_, err := uc.Send(context.Background(), "b-1", "")
		require.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("sender not configured", func(t *testing.T) {
		uc, _ := newResponseUseCaseForTest(t)
		uc.sender = nil
		_, err := uc.Send(context.Background(), "b-1", "texto")
		require.ErrorIs(t, err, ErrEmailNotConfigured)
	})

	t.Run("delivery failure records nothing", func(t *testing.T) {
		uc, m := newResponseUseCaseForTest(t)
		expectBudgetAndClient(m)
		m.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("rate limited"))

		_, err := uc.Send(context.Background(), "b-1", "texto")
		require.ErrorIs(t, err, ErrEmailDeliveryFailed)
	})

	t.Run("appends a response entry", func(t *testing.T) {
		uc, m := newResponseUseCaseForTest(t)
		expectBudgetAndClient(m)
		m.sender.EXPECT().Send(gomock.Any(), interfaces.EmailMessage{
			To:      "ana@example.com",
			Subject: "Re: Presupuesto - Reforma baño",
			Text:    "texto",
		}).Return("msg-1", nil)
		m.history.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.EmailHistoryEntry) (entities.EmailHistoryEntry, error) {
				assert.Equal(t, "b-1", e.DocumentID)
				assert.Equal(t, entities.EmailTypeResponse, e.Type)
				assert.Equal(t, fixedNow, e.SentAt)
				return e, nil
			},
		)

		e, err := uc.Send(context.Background(), "b-1", " texto ")
		require.NoError(t, err)
		assert.Equal(t, "texto", e.Content)
	})
}

func TestResponseUseCase_Respond(t *testing.T) {
	uc, m := newResponseUseCaseForTest(t)
	m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(storedBudget(), nil).Times(2)
	m.clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", Name: "Ana", Email: "ana@example.com"}, nil).Times(2)
	m.llm.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("Respuesta", nil)
	m.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("msg-1", nil)
	m.history.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e entities.EmailHistoryEntry) (entities.EmailHistoryEntry, error) { return e, nil },
	)

	res, err := uc.Respond(context.Background(), "b-1", "Es caro")
	require.NoError(t, err)
	assert.Equal(t, "Respuesta", res.Content)
	assert.Equal(t, "Respuesta", res.Entry.Content)
}
