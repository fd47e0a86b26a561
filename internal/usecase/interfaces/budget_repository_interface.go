package interfaces

import (
	"context"
	"time"

	"obra_presupuestos/internal/domain/entities"
)

//go:generate mockgen -source=budget_repository_interface.go -destination=mocks/mock_budget_repository.go -package=mock_interfaces

// IBudgetRepository persists budgets. Only status and timestamps change after
// creation.
type IBudgetRepository interface {
	Create(ctx context.Context, b entities.Budget) (entities.Budget, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	List(ctx context.Context) ([]entities.Budget, error)
	UpdateStatus(ctx context.Context, id string, status entities.BudgetStatus, sentAt *time.Time) (entities.Budget, error)
}
