package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry priced per unit (m², ml, ud...).
//
// Storage model (DynamoDB):
//   - PK: id
type Service struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	BaseUnitPrice decimal.Decimal `json:"base_unit_price"`
	Unit          string          `json:"unit"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
