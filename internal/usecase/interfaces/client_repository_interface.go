package interfaces

import (
	"context"

	"obra_presupuestos/internal/domain/entities"
)

//go:generate mockgen -source=client_repository_interface.go -destination=mocks/mock_client_repository.go -package=mock_interfaces

// IClientRepository owns the one-client-per-email rule.
type IClientRepository interface {
	// FindOrCreateByEmail returns the client stored under c.Email, creating it
	// from c when none exists. created reports which branch was taken.
	FindOrCreateByEmail(ctx context.Context, c entities.Client) (client entities.Client, created bool, err error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
}
