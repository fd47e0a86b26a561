package response

import (
	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

// Amounts are rendered as strings with two decimals to keep them exact.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalDecimal(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

type ClientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func FromClient(c entities.Client) ClientResponse {
	return ClientResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

type LineItemResponse struct {
	ServiceID        string   `json:"service_id"`
	ServiceName      string   `json:"service_name"`
	Unit             string   `json:"unit"`
	Quantity         string   `json:"quantity"`
	UnitPrice        string   `json:"unit_price"`
	DifficultyFactor *string  `json:"difficulty_factor,omitempty"`
	ItemTotal        string   `json:"item_total"`
	Notes            string   `json:"notes,omitempty"`
	IncludedSubItems []string `json:"included_sub_items,omitempty"`
}

func FromLineItems(items []entities.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, LineItemResponse{
			ServiceID:        it.ServiceID,
			ServiceName:      it.ServiceName,
			Unit:             it.Unit,
			Quantity:         it.Quantity.String(),
			UnitPrice:        money(it.UnitPrice),
			DifficultyFactor: optionalDecimal(it.DifficultyFactor),
			ItemTotal:        money(it.ItemTotal),
			Notes:            it.Notes,
			IncludedSubItems: it.IncludedSubItems,
		})
	}
	return out
}

type IssueResponse struct {
	Index     int    `json:"index"`
	ServiceID string `json:"service_id"`
	Kind      string `json:"kind"`
}

func FromIssues(issues []pricing.Issue) []IssueResponse {
	out := make([]IssueResponse, 0, len(issues))
	for _, i := range issues {
		out = append(out, IssueResponse{Index: i.Index, ServiceID: i.ServiceID, Kind: string(i.Kind)})
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
