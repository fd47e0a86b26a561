package entities

import "github.com/shopspring/decimal"

// LineItem is one service entry of a budget or invoice.
//
// DifficultyFactor is nil when the caller did not set one; pricing treats it
// as 1.0. The snapshot fields are filled once the item has been priced so a
// stored document keeps the catalog values it was sent with.
type LineItem struct {
	ServiceID        string           `json:"service_id"`
	Quantity         decimal.Decimal  `json:"quantity"`
	DifficultyFactor *decimal.Decimal `json:"difficulty_factor,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	IncludedSubItems []string         `json:"included_sub_items,omitempty"`

	ServiceName string          `json:"service_name,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ItemTotal   decimal.Decimal `json:"item_total"`
}
