package request

import (
	"obra_presupuestos/internal/usecase"

	"github.com/shopspring/decimal"
)

type ServiceRequest struct {
	Name          string          `json:"name" binding:"required"`
	Unit          string          `json:"unit" binding:"required"`
	BaseUnitPrice decimal.Decimal `json:"base_unit_price"`
}

func (r ServiceRequest) ToInput() usecase.ServiceInput {
	return usecase.ServiceInput{Name: r.Name, Unit: r.Unit, BaseUnitPrice: r.BaseUnitPrice}
}
