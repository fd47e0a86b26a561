package pricing

import (
	"errors"
	"fmt"
	"strings"

	"obra_presupuestos/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDistance         = errors.New("invalid distance: must not be negative")
	ErrInvalidGlobalDifficulty = errors.New("invalid global difficulty factor: must be positive")
)

var hundred = decimal.NewFromInt(100)

// IssueKind classifies a line item that could not be priced.
type IssueKind string

const (
	IssueUnresolvedService IssueKind = "unresolved_service_reference"
	IssueInvalidQuantity   IssueKind = "invalid_quantity"
	IssueInvalidDifficulty IssueKind = "invalid_difficulty"
)

// Issue points at the submitted line item (by index) that was left out.
type Issue struct {
	Index     int       `json:"index"`
	ServiceID string    `json:"service_id"`
	Kind      IssueKind `json:"kind"`
}

func (i Issue) String() string {
	return fmt.Sprintf("item %d (%s): %s", i.Index, i.ServiceID, i.Kind)
}

// Catalog resolves service ids to catalog entries.
type Catalog map[string]entities.Service

func NewCatalog(services []entities.Service) Catalog {
	c := make(Catalog, len(services))
	for _, s := range services {
		c[s.ID] = s
	}
	return c
}

func (c Catalog) Lookup(id string) (entities.Service, bool) {
	s, ok := c[id]
	return s, ok
}

// PricedItem is a resolved line item with its computed total.
type PricedItem struct {
	Index   int
	Item    entities.LineItem
	Service entities.Service
	Factor  decimal.Decimal
	Total   decimal.Decimal
}

type BudgetRequest struct {
	Items                  []entities.LineItem
	DistanceKm             decimal.Decimal
	GlobalDifficultyFactor *decimal.Decimal
	Adjustment             *decimal.Decimal
}

// BudgetQuote is the priced form of a BudgetRequest. Amounts are exact.
type BudgetQuote struct {
	Mode                 DifficultyMode
	Items                []PricedItem
	Subtotal             decimal.Decimal
	DistanceKm           decimal.Decimal
	DistanceFee          decimal.Decimal
	GlobalFactor         decimal.Decimal
	Adjustment           decimal.Decimal
	Total                decimal.Decimal
	UnresolvedServiceIDs []string
	Issues               []Issue
}

// PerItemTotals returns the totals of the priced items in submission order.
func (q BudgetQuote) PerItemTotals() []decimal.Decimal {
	return itemTotals(q.Items)
}

// LineItems returns the priced items with their catalog snapshot filled in.
func (q BudgetQuote) LineItems() []entities.LineItem {
	return snapshotItems(q.Items)
}

// Complete reports whether every submitted item was priced.
func (q BudgetQuote) Complete() bool {
	return len(q.Issues) == 0
}

type InvoiceRequest struct {
	Items []entities.LineItem
}

type InvoiceQuote struct {
	Items                []PricedItem
	Subtotal             decimal.Decimal
	Tax                  decimal.Decimal
	GrandTotal           decimal.Decimal
	UnresolvedServiceIDs []string
	Issues               []Issue
}

func (q InvoiceQuote) PerItemTotals() []decimal.Decimal {
	return itemTotals(q.Items)
}

func (q InvoiceQuote) LineItems() []entities.LineItem {
	return snapshotItems(q.Items)
}

func (q InvoiceQuote) Complete() bool {
	return len(q.Issues) == 0
}

// Engine prices budgets and invoices. It holds only immutable configuration
// and is safe for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.DifficultyMode == "" {
		cfg.DifficultyMode = DifficultyCombined
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// DistanceFee is max(0, km - free radius) * rate, charged once per document.
func (e *Engine) DistanceFee(distanceKm decimal.Decimal) decimal.Decimal {
	excess := distanceKm.Sub(e.cfg.FreeRadiusKm)
	if !excess.IsPositive() {
		return decimal.Zero
	}
	return excess.Mul(e.cfg.PerKmRate)
}

// PriceBudget computes
//
//	total = (sum(itemTotal) + distanceFee) * globalFactor + adjustment
//
// Items that cannot be priced are reported in Issues and left out of the
// total. A negative distance rejects the whole request.
func (e *Engine) PriceBudget(req BudgetRequest, catalog Catalog) (BudgetQuote, error) {
	if req.DistanceKm.IsNegative() {
		return BudgetQuote{}, ErrInvalidDistance
	}
	if req.GlobalDifficultyFactor != nil && !req.GlobalDifficultyFactor.IsPositive() {
		return BudgetQuote{}, ErrInvalidGlobalDifficulty
	}

	mode := e.cfg.DifficultyMode
	items, subtotal, unresolved, issues := e.priceItems(req.Items, catalog, mode.appliesItemFactor())

	globalFactor := decimal.NewFromInt(1)
	if mode.appliesGlobalFactor() && req.GlobalDifficultyFactor != nil {
		globalFactor = *req.GlobalDifficultyFactor
	}
	adjustment := decimal.Zero
	if req.Adjustment != nil {
		adjustment = *req.Adjustment
	}

	distanceFee := e.DistanceFee(req.DistanceKm)
	total := subtotal.Add(distanceFee).Mul(globalFactor).Add(adjustment)

	return BudgetQuote{
		Mode:                 mode,
		Items:                items,
		Subtotal:             subtotal,
		DistanceKm:           req.DistanceKm,
		DistanceFee:          distanceFee,
		GlobalFactor:         globalFactor,
		Adjustment:           adjustment,
		Total:                total,
		UnresolvedServiceIDs: unresolved,
		Issues:               issues,
	}, nil
}

// PriceInvoice prices items at base price * quantity and adds VAT. Difficulty
// factors do not apply to invoices.
func (e *Engine) PriceInvoice(req InvoiceRequest, catalog Catalog) (InvoiceQuote, error) {
	items, subtotal, unresolved, issues := e.priceItems(req.Items, catalog, false)
	tax := subtotal.Mul(VATRate)
	return InvoiceQuote{
		Items:                items,
		Subtotal:             subtotal,
		Tax:                  tax,
		GrandTotal:           subtotal.Add(tax),
		UnresolvedServiceIDs: unresolved,
		Issues:               issues,
	}, nil
}

// AdjustmentFromPercent converts a percentage suggestion into a flat amount.
func AdjustmentFromPercent(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(percent).Div(hundred)
}

func (e *Engine) priceItems(in []entities.LineItem, catalog Catalog, useItemFactor bool) ([]PricedItem, decimal.Decimal, []string, []Issue) {
	priced := make([]PricedItem, 0, len(in))
	subtotal := decimal.Zero
	var unresolved []string
	var issues []Issue
	seen := map[string]bool{}

	for i, it := range in {
		id := strings.TrimSpace(it.ServiceID)
		svc, ok := catalog.Lookup(id)
		if !ok {
			issues = append(issues, Issue{Index: i, ServiceID: id, Kind: IssueUnresolvedService})
			if !seen[id] {
				seen[id] = true
				unresolved = append(unresolved, id)
			}
			continue
		}
		if !it.Quantity.IsPositive() {
			issues = append(issues, Issue{Index: i, ServiceID: id, Kind: IssueInvalidQuantity})
			continue
		}

		factor := decimal.NewFromInt(1)
		if useItemFactor && it.DifficultyFactor != nil {
			if !it.DifficultyFactor.IsPositive() {
				issues = append(issues, Issue{Index: i, ServiceID: id, Kind: IssueInvalidDifficulty})
				continue
			}
			factor = *it.DifficultyFactor
		}

		total := svc.BaseUnitPrice.Mul(it.Quantity).Mul(factor)
		subtotal = subtotal.Add(total)
		priced = append(priced, PricedItem{Index: i, Item: it, Service: svc, Factor: factor, Total: total})
	}
	return priced, subtotal, unresolved, issues
}

func itemTotals(items []PricedItem) []decimal.Decimal {
	out := make([]decimal.Decimal, len(items))
	for i, it := range items {
		out[i] = it.Total
	}
	return out
}

func snapshotItems(items []PricedItem) []entities.LineItem {
	out := make([]entities.LineItem, len(items))
	for i, p := range items {
		li := p.Item
		li.ServiceID = p.Service.ID
		li.ServiceName = p.Service.Name
		li.Unit = p.Service.Unit
		li.UnitPrice = p.Service.BaseUnitPrice
		li.ItemTotal = p.Total
		li.DifficultyFactor = nil
		if !p.Factor.Equal(decimal.NewFromInt(1)) {
			f := p.Factor
			li.DifficultyFactor = &f
		}
		out[i] = li
	}
	return out
}
