package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus represents the lifecycle of a budget (presupuesto).
//
// pending -> sent happens when the proposal email goes out. accepted and
// rejected are set by the user once the client answers.
type BudgetStatus string

const (
	BudgetStatusPending  BudgetStatus = "pending"
	BudgetStatusSent     BudgetStatus = "sent"
	BudgetStatusAccepted BudgetStatus = "accepted"
	BudgetStatusRejected BudgetStatus = "rejected"
)

// Budget is a priced project proposal.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (client_id-index): client_id
//
// Monetary representation:
//   - TotalPrice is the exact decimal total; rounding happens when rendering.
type Budget struct {
	ID                     string           `json:"id"`
	Number                 int64            `json:"number"`
	ClientID               string           `json:"client_id"`
	ProjectName            string           `json:"project_name"`
	Items                  []LineItem       `json:"items"`
	DistanceKm             decimal.Decimal  `json:"distance_km"`
	GlobalDifficultyFactor *decimal.Decimal `json:"global_difficulty_factor,omitempty"`
	Adjustment             *decimal.Decimal `json:"adjustment,omitempty"`
	AdjustmentReason       string           `json:"adjustment_reason,omitempty"`
	Subtotal               decimal.Decimal  `json:"subtotal"`
	DistanceFee            decimal.Decimal  `json:"distance_fee"`
	TotalPrice             decimal.Decimal  `json:"total_price"`
	Status                 BudgetStatus     `json:"status"`
	Observations           string           `json:"observations,omitempty"`
	Locale                 string           `json:"locale"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
	SentAt                 *time.Time       `json:"sent_at,omitempty"`
}
