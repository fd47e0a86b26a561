package response

import (
	"testing"
	"time"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/domain/pricing"
	"obra_presupuestos/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromBudget(t *testing.T) {
	now := time.Now().UTC()
	factor := decimal.RequireFromString("1.5")
	adj := decimal.RequireFromString("-20")
	b := entities.Budget{
		ID:     "b-1",
		Number: 150,
		Items: []entities.LineItem{{
			ServiceID:        "svc-1",
			ServiceName:      "Alicatado",
			Unit:             "m²",
			Quantity:         decimal.NewFromInt(10),
			UnitPrice:        decimal.NewFromInt(30),
			DifficultyFactor: &factor,
			ItemTotal:        decimal.NewFromInt(450),
		}},
		DistanceKm:  decimal.NewFromInt(25),
		Adjustment:  &adj,
		Subtotal:    decimal.NewFromInt(450),
		DistanceFee: decimal.NewFromInt(30),
		TotalPrice:  decimal.RequireFromString("460"),
		Status:      entities.BudgetStatusSent,
		CreatedAt:   now,
		SentAt:      &now,
	}

	res := FromBudget(b)
	if res.ID != "b-1" || res.Number != 150 || res.Status != "sent" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.TotalPrice != "460.00" || res.DistanceFee != "30.00" || res.Subtotal != "450.00" {
		t.Fatalf("unexpected amounts: %+v", res)
	}
	if res.Adjustment == nil || *res.Adjustment != "-20.00" || res.GlobalDifficultyFactor != nil {
		t.Fatalf("unexpected optional fields: %+v", res)
	}
	if len(res.Items) != 1 || res.Items[0].ItemTotal != "450.00" || *res.Items[0].DifficultyFactor != "1.5" {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if res.SentAt == nil || !res.SentAt.Equal(now) {
		t.Fatalf("unexpected sent_at: %+v", res.SentAt)
	}
}

func TestFromBudgetResult_EmptySlices(t *testing.T) {
	res := FromBudgetResult(usecase.BudgetResult{})
	if res.UnresolvedServiceIDs == nil || res.Issues == nil {
		t.Fatalf("expected empty slices, got %+v", res)
	}

	res = FromBudgetResult(usecase.BudgetResult{
		UnresolvedServiceIDs: []string{"ghost"},
		Issues:               []pricing.Issue{{Index: 2, ServiceID: "ghost", Kind: pricing.IssueUnresolvedService}},
	})
	if len(res.Issues) != 1 || res.Issues[0].Kind != "unresolved_service_reference" {
		t.Fatalf("unexpected issues: %+v", res.Issues)
	}
}

func TestFromInvoiceAndPayment(t *testing.T) {
	inv := FromInvoice(entities.Invoice{
		ID:         "inv-1",
		Subtotal:   decimal.NewFromInt(500),
		Tax:        decimal.NewFromInt(105),
		GrandTotal: decimal.NewFromInt(605),
		Status:     entities.InvoiceStatusPaid,
	})
	if inv.Tax != "105.00" || inv.GrandTotal != "605.00" || inv.Status != "paid" {
		t.Fatalf("unexpected invoice: %+v", inv)
	}

	now := time.Now().UTC()
	p := FromInvoicePayment(entities.InvoicePayment{
		ID:           "pay-1",
		InvoiceID:    "inv-1",
		Date:         now,
		Status:       entities.PaymentStatusApproved,
		MPPayloadRaw: []byte(`{"id":1}`),
		MPPayload:    map[string]interface{}{"id": float64(1)},
	})
	if p.ID != "pay-1" || p.PaymentID != "pay-1" || p.InvoiceID != "inv-1" {
		t.Fatalf("unexpected ids: %+v", p)
	}
	if !p.Date.Equal(now) || !p.PaymentDate.Equal(now) || p.MPPayloadRaw != `{"id":1}` {
		t.Fatalf("unexpected mapped fields: %+v", p)
	}
}

func TestFromAdjustment(t *testing.T) {
	res := FromAdjustment(usecase.AdjustmentSuggestion{Percent: decimal.NewFromInt(10), Amount: decimal.NewFromInt(45), Reason: "Acceso"})
	if !res.HasAdjustment || res.Amount != "45.00" || res.Percent != "10" {
		t.Fatalf("unexpected: %+v", res)
	}
	if FromAdjustment(usecase.AdjustmentSuggestion{}).HasAdjustment {
		t.Fatalf("zero suggestion must not report an adjustment")
	}
}
