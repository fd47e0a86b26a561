package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"obra_presupuestos/internal/adapter/http/handlers/mocks"
	"obra_presupuestos/internal/config"
	"obra_presupuestos/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestDependencies(ctrl *gomock.Controller) (*Dependencies, *mocks.MockIServiceUseCase) {
	services := mocks.NewMockIServiceUseCase(ctrl)
	return &Dependencies{
		Services:        services,
		Budgets:         mocks.NewMockIBudgetUseCase(ctrl),
		Invoices:        mocks.NewMockIInvoiceUseCase(ctrl),
		Responses:       mocks.NewMockIResponseUseCase(ctrl),
		Observations:    mocks.NewMockIObservationUseCase(ctrl),
		InvoicePayments: mocks.NewMockIInvoicePaymentUseCase(ctrl),
	}, services
}

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ping", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		deps, _ := newTestDependencies(ctrl)
		r := NewRouter(deps, zap.NewNop())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	})

	t.Run("services are mounted under v1", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		deps, services := newTestDependencies(ctrl)
		services.EXPECT().List(gomock.Any()).Return([]entities.Service{}, nil)
		r := NewRouter(deps, zap.NewNop())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/services", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		deps, _ := newTestDependencies(ctrl)
		r := NewRouter(deps, zap.NewNop())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/estimates", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNewDependencies(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Payments.MockMode = true

	deps := NewDependencies(cfg, &Repositories{}, Collaborators{}, zap.NewNop())

	require.NotNil(t, deps)
	assert.NotNil(t, deps.Services)
	assert.NotNil(t, deps.Budgets)
	assert.NotNil(t, deps.Invoices)
	assert.NotNil(t, deps.Responses)
	assert.NotNil(t, deps.Observations)
	assert.NotNil(t, deps.InvoicePayments)
	assert.True(t, deps.PaymentMockMode)
}

func TestOpenRepositories(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Storage.Driver = "sqlite"

		_, _, err := OpenRepositories(context.Background(), cfg)

		assert.ErrorContains(t, err, "unknown storage driver")
	})

	t.Run("postgres without url", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Storage.Driver = config.StoragePostgres
		cfg.Storage.DatabaseURL = ""

		_, _, err := OpenRepositories(context.Background(), cfg)

		assert.Error(t, err)
	})
}
