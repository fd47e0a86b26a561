package document

import (
	"fmt"
	"strings"
	"time"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindBudget  Kind = "budget"
	KindInvoice Kind = "invoice"
)

type LineKind string

const (
	LineItem       LineKind = "item"
	LineIncluded   LineKind = "included"
	LineDistance   LineKind = "distance"
	LineDifficulty LineKind = "difficulty"
	LineAdjustment LineKind = "adjustment"
	LineSubtotal   LineKind = "subtotal"
	LineTax        LineKind = "tax"
	LineTotal      LineKind = "total"
)

// PrintableLine is one row of the rendered document. Included sub-items
// carry no amount and are indented under their line item.
type PrintableLine struct {
	Kind        LineKind         `json:"kind"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Indent      int              `json:"indent,omitempty"`
}

func (l PrintableLine) IsSummary() bool {
	return l.Kind == LineSubtotal || l.Kind == LineTax || l.Kind == LineTotal
}

// Party is an address block printed in the document header.
type Party struct {
	Name    string `json:"name" toml:"name"`
	Address string `json:"address,omitempty" toml:"address"`
	TaxID   string `json:"tax_id,omitempty" toml:"tax_id"`
	Phone   string `json:"phone,omitempty" toml:"phone"`
	Email   string `json:"email,omitempty" toml:"email"`
}

// Labels are the localized captions a renderer needs.
type Labels struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	TaxID       string `json:"tax_id"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// Document is the renderer-facing content model of a budget or invoice.
type Document struct {
	Kind     Kind            `json:"kind"`
	Locale   Locale          `json:"locale"`
	Title    string          `json:"title"`
	Number   string          `json:"number"`
	FileName string          `json:"file_name"`
	Date     string          `json:"date"`
	Currency string          `json:"currency"`
	Issuer   Party           `json:"issuer"`
	Client   Party           `json:"client"`
	Labels   Labels          `json:"labels"`
	Lines    []PrintableLine `json:"lines"`
	Notes    []string        `json:"notes,omitempty"`
	Payment  []string        `json:"payment,omitempty"`
}

// Content is what the builder produces for one budget or invoice.
type Content struct {
	Subject   string   `json:"subject"`
	EmailText string   `json:"email_text"`
	Document  Document `json:"document"`
}

// Meta carries the per-document values that are not part of the quote.
// Date is always supplied by the caller.
type Meta struct {
	Number           int64
	ProjectName      string
	Observations     string
	AdjustmentReason string
	Date             time.Time
	Locale           Locale

	// Invoice email overrides; empty means the localized default.
	EmailSubject string
	EmailBody    string
}

// Settings are the business details printed on every document.
type Settings struct {
	DefaultLocale  Locale
	CurrencySymbol string
	ValidityDays   int
	Issuer         Party
	PaymentMethod  string
	BankName       string
	IBAN           string
	Footnotes      []string
}

func DefaultSettings() Settings {
	return Settings{
		DefaultLocale:  LocaleES,
		CurrencySymbol: "€",
		ValidityDays:   15,
	}
}

// Builder turns priced quotes into email text and printable lines. It is
// stateless apart from its settings.
type Builder struct {
	settings Settings
}

func NewBuilder(settings Settings) *Builder {
	if settings.DefaultLocale == "" {
		settings.DefaultLocale = LocaleES
	}
	if settings.CurrencySymbol == "" {
		settings.CurrencySymbol = "€"
	}
	return &Builder{settings: settings}
}

func (b *Builder) Settings() Settings {
	return b.settings
}

func (b *Builder) texts(l Locale) (Locale, texts) {
	if t, ok := tables[l]; ok {
		return l, t
	}
	return b.settings.DefaultLocale, tables[b.settings.DefaultLocale]
}

func (b *Builder) money(d decimal.Decimal) string {
	return FormatMoney(d, b.settings.CurrencySymbol)
}

// BudgetContent builds the proposal email and the printable budget.
func (b *Builder) BudgetContent(q pricing.BudgetQuote, client entities.Client, m Meta) Content {
	locale, t := b.texts(m.Locale)
	number := FormatNumber(m.Number, m.Date)

	return Content{
		Subject:   fmt.Sprintf(t.budgetSubject, m.ProjectName, client.Name),
		EmailText: b.budgetEmail(t, q, client, m),
		Document: Document{
			Kind:     KindBudget,
			Locale:   locale,
			Title:    t.budgetTitle + ": " + number,
			Number:   number,
			FileName: fileName(t.budgetTitle, number),
			Date:     FormatDate(m.Date),
			Currency: b.settings.CurrencySymbol,
			Issuer:   b.settings.Issuer,
			Client:   clientParty(client),
			Labels:   labels(t),
			Lines:    b.budgetLines(t, q),
			Notes:    b.notes(m.Observations),
			Payment:  b.payment(t),
		},
	}
}

// InvoiceContent builds the invoice email and the printable invoice.
func (b *Builder) InvoiceContent(q pricing.InvoiceQuote, client entities.Client, m Meta) Content {
	locale, t := b.texts(m.Locale)
	number := FormatNumber(m.Number, m.Date)

	subject := strings.TrimSpace(m.EmailSubject)
	if subject == "" {
		subject = fmt.Sprintf(t.invoiceSubject, number)
		if p := strings.TrimSpace(m.ProjectName); p != "" {
			subject += " - " + p
		}
	}
	body := strings.TrimSpace(m.EmailBody)
	if body == "" {
		body = fmt.Sprintf(t.invoiceBody, client.FirstName(), number)
	}

	return Content{
		Subject:   subject,
		EmailText: body,
		Document: Document{
			Kind:     KindInvoice,
			Locale:   locale,
			Title:    t.invoiceTitle + ": " + number,
			Number:   number,
			FileName: fileName(t.invoiceTitle, number),
			Date:     FormatDate(m.Date),
			Currency: b.settings.CurrencySymbol,
			Issuer:   b.settings.Issuer,
			Client:   clientParty(client),
			Labels:   labels(t),
			Lines:    b.invoiceLines(t, q),
			Notes:    b.notes(m.Observations),
			Payment:  b.payment(t),
		},
	}
}

// ResponseSubject is the subject used when answering a client about a budget.
func (b *Builder) ResponseSubject(locale Locale, projectName string) string {
	_, t := b.texts(locale)
	return fmt.Sprintf(t.responseSubject, projectName)
}

func (b *Builder) budgetLines(t texts, q pricing.BudgetQuote) []PrintableLine {
	lines := itemLines(q.Items)

	if q.DistanceFee.IsPositive() {
		lines = append(lines, amountLine(LineDistance, fmt.Sprintf(t.distance, formatQuantity(q.DistanceKm)), q.DistanceFee))
	}
	if !q.GlobalFactor.Equal(one) {
		base := q.Subtotal.Add(q.DistanceFee)
		surcharge := base.Mul(q.GlobalFactor).Sub(base)
		lines = append(lines, amountLine(LineDifficulty, fmt.Sprintf(t.difficulty, q.GlobalFactor.String()), surcharge))
	}
	if !q.Adjustment.IsZero() {
		lines = append(lines, amountLine(LineAdjustment, t.adjustment, q.Adjustment))
	}

	lines = append(lines,
		amountLine(LineSubtotal, t.sumSubtotal, q.Total),
		amountLine(LineTotal, t.sumTotal, q.Total),
	)
	return lines
}

func (b *Builder) invoiceLines(t texts, q pricing.InvoiceQuote) []PrintableLine {
	lines := itemLines(q.Items)
	lines = append(lines,
		amountLine(LineSubtotal, t.sumSubtotal, q.Subtotal),
		amountLine(LineTax, fmt.Sprintf(t.sumTax, pricing.VATPercent), q.Tax),
		amountLine(LineTotal, t.sumTotal, q.GrandTotal),
	)
	return lines
}

func (b *Builder) notes(observations string) []string {
	var out []string
	if obs := strings.TrimSpace(observations); obs != "" {
		out = append(out, "*"+obs)
	}
	for _, n := range b.settings.Footnotes {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, "*"+n)
		}
	}
	return out
}

func (b *Builder) payment(t texts) []string {
	var out []string
	if b.settings.PaymentMethod != "" {
		out = append(out, t.paymentLabel+": "+b.settings.PaymentMethod)
	}
	if b.settings.BankName != "" {
		out = append(out, t.bankLabel+": "+b.settings.BankName)
	}
	if b.settings.IBAN != "" {
		out = append(out, t.ibanLabel+": "+b.settings.IBAN)
	}
	return out
}

var one = decimal.NewFromInt(1)

func itemLines(items []pricing.PricedItem) []PrintableLine {
	lines := make([]PrintableLine, 0, len(items)*2)
	for _, it := range items {
		desc := joinNonEmpty(formatQuantity(it.Item.Quantity), it.Service.Unit, it.Service.Name)
		lines = append(lines, amountLine(LineItem, desc, it.Total))
		for _, inc := range it.Item.IncludedSubItems {
			if inc = strings.TrimSpace(inc); inc != "" {
				lines = append(lines, PrintableLine{Kind: LineIncluded, Description: inc, Indent: 1})
			}
		}
	}
	return lines
}

func amountLine(kind LineKind, desc string, amount decimal.Decimal) PrintableLine {
	a := amount
	return PrintableLine{Kind: kind, Description: desc, Amount: &a}
}

func clientParty(c entities.Client) Party {
	return Party{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func labels(t texts) Labels {
	return Labels{
		Description: t.colDescription,
		Amount:      t.colAmount,
		TaxID:       t.taxIDLabel,
		Phone:       t.phoneLabel,
		Email:       t.emailLabel,
	}
}

func fileName(title, number string) string {
	return title + "_" + strings.ReplaceAll(number, "/", "_") + ".pdf"
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
