package document

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with exactly two decimals and a trailing
// currency symbol, e.g. "450.00 €".
func FormatMoney(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		return amount.StringFixed(2)
	}
	return amount.StringFixed(2) + " " + symbol
}

// FormatDate renders DD-MM-YY.
func FormatDate(t time.Time) string {
	return t.Format("02-01-06")
}

// FormatNumber renders a document number with the year suffix used on the
// printed forms: 150 in 2025 becomes "150/025".
func FormatNumber(n int64, date time.Time) string {
	return fmt.Sprintf("%d/%03d", n, date.Year()%1000)
}

// formatQuantity drops trailing zeros ("10", "2.5").
func formatQuantity(q decimal.Decimal) string {
	return q.String()
}
