package document

import (
	"fmt"
	"strings"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/domain/pricing"
)

var (
	doubleRule = strings.Repeat("═", 59)
	singleRule = strings.Repeat("─", 59)
)

func (b *Builder) budgetEmail(t texts, q pricing.BudgetQuote, client entities.Client, m Meta) string {
	var sb strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format, args...)
		sb.WriteByte('\n')
	}

	line(t.salutation, client.Name)
	line("")
	line("%s", t.budgetIntro)
	line("")
	line("%s", doubleRule)
	line("%s: %s", t.budgetHead, strings.ToUpper(m.ProjectName))
	line("%s", doubleRule)
	line("")
	line("%s", t.servicesHead)
	line("%s", singleRule)
	line("")

	for i, it := range q.Items {
		line("%d. %s", i+1, it.Service.Name)
		detail := fmt.Sprintf("%s × %s", joinNonEmpty(formatQuantity(it.Item.Quantity), it.Service.Unit), b.money(it.Service.BaseUnitPrice))
		if !it.Factor.Equal(one) {
			detail += " × " + it.Factor.String()
		}
		line("   %s = %s", detail, b.money(it.Total))
		if notes := strings.TrimSpace(it.Item.Notes); notes != "" {
			line("   %s: %s", t.noteLabel, notes)
		}
		line("")
	}

	line("%s", singleRule)
	line("%s: %s", t.subtotal, b.money(q.Subtotal))
	if q.DistanceFee.IsPositive() {
		line("%s: %s", fmt.Sprintf(t.distance, formatQuantity(q.DistanceKm)), b.money(q.DistanceFee))
	}
	if !q.GlobalFactor.Equal(one) {
		line("%s", fmt.Sprintf(t.difficulty, q.GlobalFactor.String()))
	}
	if !q.Adjustment.IsZero() {
		label := t.adjustment
		if reason := strings.TrimSpace(m.AdjustmentReason); reason != "" {
			label += " (" + reason + ")"
		}
		line("%s: %s", label, b.money(q.Adjustment))
	}
	line("%s", doubleRule)
	line("%s: %s", t.totalLabel, b.money(q.Total))
	line("%s", doubleRule)
	line("")

	if obs := strings.TrimSpace(m.Observations); obs != "" {
		line("%s", t.observations)
		line("%s", obs)
		line("")
	}

	for _, d := range t.disclaimers {
		line("✓ %s", d)
	}
	if b.settings.ValidityDays > 0 {
		line("✓ %s", fmt.Sprintf(t.validity, b.settings.ValidityDays))
	}
	line("")
	line("%s", t.closing)
	line("")
	sb.WriteString(t.farewell)

	return sb.String()
}
