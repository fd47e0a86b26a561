package repository

import (
	"time"

	"obra_presupuestos/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Tables holds the DynamoDB table names. Empty fields fall back to the
// defaults below.
type Tables struct {
	Services        string
	Clients         string
	Budgets         string
	Invoices        string
	EmailHistory    string
	InvoicePayments string
	Sequences       string
}

func (t Tables) withDefaults() Tables {
	t.Services = orDefault(t.Services, "services")
	t.Clients = orDefault(t.Clients, "clients")
	t.Budgets = orDefault(t.Budgets, "budgets")
	t.Invoices = orDefault(t.Invoices, "invoices")
	t.EmailHistory = orDefault(t.EmailHistory, "email_history")
	t.InvoicePayments = orDefault(t.InvoicePayments, "invoice_payments")
	t.Sequences = orDefault(t.Sequences, "sequences")
	return t
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// lineItemItem is the nested representation of a line item. Decimals are
// stored as strings so no precision is lost.
type lineItemItem struct {
	ServiceID        string   `dynamodbav:"service_id"`
	Quantity         string   `dynamodbav:"quantity"`
	DifficultyFactor string   `dynamodbav:"difficulty_factor,omitempty"`
	Notes            string   `dynamodbav:"notes,omitempty"`
	IncludedSubItems []string `dynamodbav:"included_sub_items,omitempty"`
	ServiceName      string   `dynamodbav:"service_name,omitempty"`
	Unit             string   `dynamodbav:"unit,omitempty"`
	UnitPrice        string   `dynamodbav:"unit_price"`
	ItemTotal        string   `dynamodbav:"item_total"`
}

func toLineItemItems(in []entities.LineItem) []lineItemItem {
	out := make([]lineItemItem, 0, len(in))
	for _, li := range in {
		out = append(out, lineItemItem{
			ServiceID:        li.ServiceID,
			Quantity:         li.Quantity.String(),
			DifficultyFactor: optionalDecimalString(li.DifficultyFactor),
			Notes:            li.Notes,
			IncludedSubItems: li.IncludedSubItems,
			ServiceName:      li.ServiceName,
			Unit:             li.Unit,
			UnitPrice:        li.UnitPrice.String(),
			ItemTotal:        li.ItemTotal.String(),
		})
	}
	return out
}

func fromLineItemItems(in []lineItemItem) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, entities.LineItem{
			ServiceID:        it.ServiceID,
			Quantity:         parseDecimal(it.Quantity),
			DifficultyFactor: parseOptionalDecimal(it.DifficultyFactor),
			Notes:            it.Notes,
			IncludedSubItems: it.IncludedSubItems,
			ServiceName:      it.ServiceName,
			Unit:             it.Unit,
			UnitPrice:        parseDecimal(it.UnitPrice),
			ItemTotal:        parseDecimal(it.ItemTotal),
		})
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseOptionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	return &t
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func optionalDecimalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func parseOptionalDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
