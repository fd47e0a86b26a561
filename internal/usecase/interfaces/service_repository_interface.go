package interfaces

import (
	"context"

	"obra_presupuestos/internal/domain/entities"
)

//go:generate mockgen -source=service_repository_interface.go -destination=mocks/mock_service_repository.go -package=mock_interfaces

// IServiceRepository persists the service catalog.
//
// Lookups return a zero-value Service (empty ID) when nothing matches.
type IServiceRepository interface {
	Create(ctx context.Context, s entities.Service) (entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	GetByIDs(ctx context.Context, ids []string) ([]entities.Service, error)
	List(ctx context.Context) ([]entities.Service, error)
	Update(ctx context.Context, s entities.Service) (entities.Service, error)
	Delete(ctx context.Context, id string) (bool, error)
}
