package document

import (
	"strings"
	"testing"
	"time"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/domain/pricing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

var (
	issueDate = time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)
	client    = entities.Client{ID: "cli-1", Name: "Ana López", Email: "ana@example.com", Phone: "600 000 000"}
	catalog   = pricing.NewCatalog([]entities.Service{
		{ID: "svc-a", Name: "Alicatado", Unit: "m²", BaseUnitPrice: d("30")},
		{ID: "svc-b", Name: "Rodapié", Unit: "ml", BaseUnitPrice: d("20")},
	})
)

func budgetQuote(t *testing.T, req pricing.BudgetRequest) pricing.BudgetQuote {
	t.Helper()
	q, err := pricing.NewEngine(pricing.DefaultConfig()).PriceBudget(req, catalog)
	require.NoError(t, err)
	return q
}

func sampleRequest() pricing.BudgetRequest {
	return pricing.BudgetRequest{
		Items: []entities.LineItem{
			{ServiceID: "svc-a", Quantity: d("10"), DifficultyFactor: dp("1.0"), IncludedSubItems: []string{"Material cerámico", "  "}},
			{ServiceID: "svc-b", Quantity: d("5"), DifficultyFactor: dp("1.2"), Notes: "esquinas"},
		},
		DistanceKm: d("25"),
	}
}

func TestBuilder_BudgetEmail_Literal(t *testing.T) {
	b := NewBuilder(DefaultSettings())
	c := b.BudgetContent(budgetQuote(t, sampleRequest()), client, Meta{
		Number:       150,
		ProjectName:  "Reforma baño",
		Observations: "Acceso por patio interior",
		Date:         issueDate,
		Locale:       LocaleES,
	})

	want := `Estimado/a Ana López,

Tras nuestra visita técnica, le presentamos el presupuesto detallado para la obra solicitada.

` + doubleRule + `
PRESUPUESTO: REFORMA BAÑO
` + doubleRule + `

SERVICIOS INCLUIDOS
` + singleRule + `

1. Alicatado
   10 m² × 30.00 € = 300.00 €

2. Rodapié
   5 ml × 20.00 € × 1.2 = 120.00 €
   Nota: esquinas

` + singleRule + `
Subtotal servicios: 420.00 €
Desplazamiento (25 km): 30.00 €
` + doubleRule + `
IMPORTE TOTAL: 450.00 €
` + doubleRule + `

OBSERVACIONES:
Acceso por patio interior

✓ Presupuesto elaborado tras visita técnica
✓ Materiales de calidad incluidos
✓ Garantía del trabajo realizado
✓ Validez: 15 días

Quedamos a su disposición para cualquier consulta o aclaración.

Un cordial saludo.`

	if diff := cmp.Diff(want, c.EmailText); diff != "" {
		t.Fatalf("email text mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Presupuesto: Reforma baño - Ana López", c.Subject)
}

func TestBuilder_BudgetEmail_OptionalBlocks(t *testing.T) {
	b := NewBuilder(DefaultSettings())

	t.Run("no distance fee, no observations", func(t *testing.T) {
		req := sampleRequest()
		req.DistanceKm = d("15")
		c := b.BudgetContent(budgetQuote(t, req), client, Meta{Number: 1, ProjectName: "Obra", Date: issueDate, Observations: "   "})
		assert.NotContains(t, c.EmailText, "Desplazamiento")
		assert.NotContains(t, c.EmailText, "OBSERVACIONES")
		assert.NotContains(t, c.EmailText, "Ajuste")
		assert.NotContains(t, c.EmailText, "Factor de complejidad")
		assert.NotContains(t, c.EmailText, "\n\n\n")
	})

	t.Run("factor of one has no suffix", func(t *testing.T) {
		c := b.BudgetContent(budgetQuote(t, sampleRequest()), client, Meta{Number: 1, ProjectName: "Obra", Date: issueDate})
		assert.Contains(t, c.EmailText, "10 m² × 30.00 € = 300.00 €")
		assert.NotContains(t, c.EmailText, "× 1 =")
	})

	t.Run("global factor and adjustment", func(t *testing.T) {
		req := sampleRequest()
		req.GlobalDifficultyFactor = dp("1.5")
		req.Adjustment = dp("-25")
		c := b.BudgetContent(budgetQuote(t, req), client, Meta{Number: 1, ProjectName: "Obra", Date: issueDate, AdjustmentReason: "trabajo simplificado"})
		assert.Contains(t, c.EmailText, "Factor de complejidad (x1.5)")
		assert.Contains(t, c.EmailText, "Ajuste (trabajo simplificado): -25.00 €")
		assert.Contains(t, c.EmailText, "IMPORTE TOTAL: 650.00 €")
	})

	t.Run("idempotent", func(t *testing.T) {
		m := Meta{Number: 9, ProjectName: "Obra", Date: issueDate, Observations: "x"}
		a := b.BudgetContent(budgetQuote(t, sampleRequest()), client, m)
		again := b.BudgetContent(budgetQuote(t, sampleRequest()), client, m)
		assert.Equal(t, a.EmailText, again.EmailText)
		assert.Equal(t, a.Document, again.Document)
	})
}

func TestBuilder_BudgetEmail_Locales(t *testing.T) {
	b := NewBuilder(DefaultSettings())
	q := budgetQuote(t, sampleRequest())

	pt := b.BudgetContent(q, client, Meta{Number: 1, ProjectName: "Obra", Date: issueDate, Locale: LocalePT})
	assert.True(t, strings.HasPrefix(pt.EmailText, "Prezado(a) Ana López,"))
	assert.Contains(t, pt.EmailText, "Deslocamento (25 km): 30.00 €")
	assert.Contains(t, pt.EmailText, "VALOR TOTAL: 450.00 €")
	assert.Equal(t, LocalePT, pt.Document.Locale)

	ca := b.BudgetContent(q, client, Meta{Number: 1, ProjectName: "Obra", Date: issueDate, Locale: LocaleCA})
	assert.Contains(t, ca.EmailText, "Desplaçament (25 km)")
	assert.Equal(t, "Pressupost: 1/025", ca.Document.Title)

	fallback := b.BudgetContent(q, client, Meta{Number: 1, ProjectName: "Obra", Date: issueDate, Locale: "fr"})
	assert.Equal(t, LocaleES, fallback.Document.Locale)
}

func TestBuilder_BudgetLines(t *testing.T) {
	b := NewBuilder(DefaultSettings())
	c := b.BudgetContent(budgetQuote(t, sampleRequest()), client, Meta{Number: 150, ProjectName: "Reforma", Date: issueDate})

	want := []PrintableLine{
		{Kind: LineItem, Description: "10 m² Alicatado", Amount: dp("300")},
		{Kind: LineIncluded, Description: "Material cerámico", Indent: 1},
		{Kind: LineItem, Description: "5 ml Rodapié", Amount: dp("120")},
		{Kind: LineDistance, Description: "Desplazamiento (25 km)", Amount: dp("30")},
		{Kind: LineSubtotal, Description: "SUBTOTAL", Amount: dp("450")},
		{Kind: LineTotal, Description: "TOTAL", Amount: dp("450")},
	}
	decimalEqual := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(want, c.Document.Lines, decimalEqual); diff != "" {
		t.Fatalf("printable lines mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Presupuesto: 150/025", c.Document.Title)
	assert.Equal(t, "Presupuesto_150_025.pdf", c.Document.FileName)
	assert.Equal(t, "07-03-25", c.Document.Date)
	assert.Equal(t, "Ana López", c.Document.Client.Name)
}

func TestBuilder_BudgetLines_DifficultySurcharge(t *testing.T) {
	b := NewBuilder(DefaultSettings())
	req := sampleRequest()
	req.GlobalDifficultyFactor = dp("1.5")
	c := b.BudgetContent(budgetQuote(t, req), client, Meta{Number: 1, Date: issueDate})

	sum := decimal.Zero
	var total decimal.Decimal
	for _, l := range c.Document.Lines {
		switch {
		case l.Kind == LineTotal:
			total = *l.Amount
		case !l.IsSummary() && l.Amount != nil:
			sum = sum.Add(*l.Amount)
		}
	}
	assert.True(t, sum.Equal(total), "lines %s must add up to total %s", sum, total)
	assert.Equal(t, "675.00", total.StringFixed(2))
}

func TestBuilder_InvoiceContent(t *testing.T) {
	settings := DefaultSettings()
	settings.PaymentMethod = "Transferencia bancaria"
	settings.BankName = "Banco Ejemplo"
	settings.IBAN = "ES00 0000 0000 0000 0000 0000"
	settings.Footnotes = []string{"Trabajos complementarios no incluidos"}
	b := NewBuilder(settings)

	q, err := pricing.NewEngine(pricing.DefaultConfig()).PriceInvoice(pricing.InvoiceRequest{
		Items: []entities.LineItem{
			{ServiceID: "svc-a", Quantity: d("10")},
			{ServiceID: "svc-b", Quantity: d("10")},
		},
	}, catalog)
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		c := b.InvoiceContent(q, client, Meta{Number: 7, ProjectName: "Reforma baño", Date: issueDate, Observations: "Obra finalizada"})
		assert.Equal(t, "Factura 7/025 - Reforma baño", c.Subject)
		assert.Equal(t, "Buenas tardes Ana,\n\nTe envío la factura 7/025.\n\nUn saludo.", c.EmailText)
		assert.Equal(t, "Factura_7_025.pdf", c.Document.FileName)

		n := len(c.Document.Lines)
		require.Equal(t, 5, n)
		assert.Equal(t, "IVA 21%", c.Document.Lines[n-2].Description)
		assert.Equal(t, "105.00", c.Document.Lines[n-2].Amount.StringFixed(2))
		assert.Equal(t, "605.00", c.Document.Lines[n-1].Amount.StringFixed(2))
		assert.Equal(t, []string{"*Obra finalizada", "*Trabajos complementarios no incluidos"}, c.Document.Notes)
		assert.Equal(t, []string{
			"Método de pago: Transferencia bancaria",
			"Entidad: Banco Ejemplo",
			"IBAN: ES00 0000 0000 0000 0000 0000",
		}, c.Document.Payment)
	})

	t.Run("overrides and no project", func(t *testing.T) {
		c := b.InvoiceContent(q, client, Meta{Number: 7, Date: issueDate, EmailSubject: "Su factura", EmailBody: "Hola"})
		assert.Equal(t, "Su factura", c.Subject)
		assert.Equal(t, "Hola", c.EmailText)

		c = b.InvoiceContent(q, client, Meta{Number: 7, Date: issueDate})
		assert.Equal(t, "Factura 7/025", c.Subject)
	})
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "450.00 €", FormatMoney(d("450"), "€"))
	assert.Equal(t, "655.20 €", FormatMoney(d("655.2"), "€"))
	assert.Equal(t, "0.13", FormatMoney(d("0.125"), ""))
	assert.Equal(t, "01-12-24", FormatDate(time.Date(2024, time.December, 1, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "150/025", FormatNumber(150, issueDate))
	assert.Equal(t, "Re: Presupuesto - Reforma", NewBuilder(Settings{}).ResponseSubject(LocaleES, "Reforma"))
}

func TestParseLocale(t *testing.T) {
	l, err := ParseLocale(" PT ")
	require.NoError(t, err)
	assert.Equal(t, LocalePT, l)

	_, err = ParseLocale("de")
	assert.Error(t, err)
}
