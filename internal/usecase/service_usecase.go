package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrServiceNotFound     = errors.New("service not found")
	ErrInvalidServiceID    = errors.New("invalid service id")
	ErrInvalidServiceName  = errors.New("invalid service name")
	ErrInvalidServiceUnit  = errors.New("invalid service unit")
	ErrInvalidServicePrice = errors.New("invalid service base price")
)

type ServiceInput struct {
	Name          string
	Unit          string
	BaseUnitPrice decimal.Decimal
}

// IServiceUseCase manages the service catalog.
type IServiceUseCase interface {
	Create(ctx context.Context, in ServiceInput) (entities.Service, error)
	Update(ctx context.Context, id string, in ServiceInput) (entities.Service, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.Service, error)
	List(ctx context.Context) ([]entities.Service, error)
}

type ServiceUseCase struct {
	repo   interfaces.IServiceRepository
	logger *zap.Logger
	now    func() time.Time
}

var _ IServiceUseCase = (*ServiceUseCase)(nil)

func NewServiceUseCase(repo interfaces.IServiceRepository, logger *zap.Logger) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, logger: orNop(logger), now: utcNow}
}

func (u *ServiceUseCase) Create(ctx context.Context, in ServiceInput) (entities.Service, error) {
	in, err := validateServiceInput(in)
	if err != nil {
		return entities.Service{}, err
	}

	now := u.now()
	s := entities.Service{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Unit:          in.Unit,
		BaseUnitPrice: in.BaseUnitPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := u.repo.Create(ctx, s)
	if err != nil {
		return entities.Service{}, err
	}
	u.logger.Info("[service][usecase] created", zap.String("service_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (u *ServiceUseCase) Update(ctx context.Context, id string, in ServiceInput) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	in, err := validateServiceInput(in)
	if err != nil {
		return entities.Service{}, err
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if existing.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}

	existing.Name = in.Name
	existing.Unit = in.Unit
	existing.BaseUnitPrice = in.BaseUnitPrice
	existing.UpdatedAt = u.now()

	updated, err := u.repo.Update(ctx, existing)
	if err != nil {
		return entities.Service{}, err
	}
	if updated.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return updated, nil
}

func (u *ServiceUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidServiceID
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrServiceNotFound
	}
	u.logger.Info("[service][usecase] deleted", zap.String("service_id", id))
	return nil
}

func (u *ServiceUseCase) GetByID(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return s, nil
}

func (u *ServiceUseCase) List(ctx context.Context) ([]entities.Service, error) {
	return u.repo.List(ctx)
}

func validateServiceInput(in ServiceInput) (ServiceInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" {
		return in, ErrInvalidServiceName
	}
	if in.Unit == "" {
		return in, ErrInvalidServiceUnit
	}
	if in.BaseUnitPrice.IsNegative() {
		return in, ErrInvalidServicePrice
	}
	return in, nil
}
