package request

import (
	"strings"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase"

	"github.com/shopspring/decimal"
)

type ClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}

func (r ClientRequest) ToInput() usecase.ClientInput {
	return usecase.ClientInput{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// LineItemRequest accepts amounts as JSON numbers or strings.
type LineItemRequest struct {
	ServiceID        string           `json:"service_id" binding:"required"`
	Quantity         decimal.Decimal  `json:"quantity"`
	DifficultyFactor *decimal.Decimal `json:"difficulty_factor,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	IncludedSubItems []string         `json:"included_sub_items,omitempty"`
}

func toLineItems(in []LineItemRequest) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, entities.LineItem{
			ServiceID:        strings.TrimSpace(it.ServiceID),
			Quantity:         it.Quantity,
			DifficultyFactor: it.DifficultyFactor,
			Notes:            strings.TrimSpace(it.Notes),
			IncludedSubItems: it.IncludedSubItems,
		})
	}
	return out
}

type BudgetRequest struct {
	Client                 ClientRequest     `json:"client"`
	ProjectName            string            `json:"project_name" binding:"required"`
	Items                  []LineItemRequest `json:"items" binding:"required,dive"`
	DistanceKm             decimal.Decimal   `json:"distance_km"`
	GlobalDifficultyFactor *decimal.Decimal  `json:"global_difficulty_factor,omitempty"`
	Adjustment             *decimal.Decimal  `json:"adjustment,omitempty"`
	AdjustmentReason       string            `json:"adjustment_reason,omitempty"`
	AnalyzeObservations    bool              `json:"analyze_observations"`
	Observations           string            `json:"observations,omitempty"`
	Locale                 string            `json:"locale,omitempty"`
	Number                 *int64            `json:"number,omitempty"`
}

func (r BudgetRequest) ToCommand() usecase.CreateBudgetCommand {
	return usecase.CreateBudgetCommand{
		Client:                 r.Client.ToInput(),
		ProjectName:            r.ProjectName,
		Items:                  toLineItems(r.Items),
		DistanceKm:             r.DistanceKm,
		GlobalDifficultyFactor: r.GlobalDifficultyFactor,
		Adjustment:             r.Adjustment,
		AdjustmentReason:       r.AdjustmentReason,
		AnalyzeObservations:    r.AnalyzeObservations,
		Observations:           r.Observations,
		Locale:                 r.Locale,
		Number:                 r.Number,
	}
}
