package repository

import (
	"testing"
	"time"

	"obra_presupuestos/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestTablesWithDefaults(t *testing.T) {
	got := Tables{Budgets: "prod_budgets"}.withDefaults()
	assert.Equal(t, "prod_budgets", got.Budgets)
	assert.Equal(t, "services", got.Services)
	assert.Equal(t, "sequences", got.Sequences)
	assert.Equal(t, "invoice_payments", got.InvoicePayments)
}

func TestBudgetItemKeepsDecimalPrecision(t *testing.T) {
	sentAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	factor := decimal.RequireFromString("1.2")
	adj := decimal.RequireFromString("-16.666666")
	b := entities.Budget{
		ID:          "b-1",
		Number:      13,
		ClientID:    "cli-1",
		ProjectName: "Reforma baño",
		Items: []entities.LineItem{{
			ServiceID:        "svc-1",
			Quantity:         decimal.RequireFromString("10.5"),
			DifficultyFactor: &factor,
			IncludedSubItems: []string{"Retirada de escombros"},
			ServiceName:      "Alicatado",
			Unit:             "m²",
			UnitPrice:        decimal.NewFromInt(30),
			ItemTotal:        decimal.RequireFromString("378"),
		}},
		DistanceKm:  decimal.NewFromInt(25),
		Adjustment:  &adj,
		Subtotal:    decimal.RequireFromString("378"),
		DistanceFee: decimal.NewFromInt(30),
		TotalPrice:  decimal.RequireFromString("391.333334"),
		Status:      entities.BudgetStatusSent,
		Locale:      "es",
		CreatedAt:   sentAt,
		UpdatedAt:   sentAt,
		SentAt:      &sentAt,
	}

	av, err := attributevalue.MarshalMap(toBudgetItem(b))
	require.NoError(t, err)

	total, ok := av["total_price"].(*types.AttributeValueMemberS)
	require.True(t, ok, "decimals are stored as strings")
	assert.Equal(t, "391.333334", total.Value)
	_, hasFactor := av["global_difficulty_factor"]
	assert.False(t, hasFactor)

	var it budgetItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &it))
	if diff := cmp.Diff(b, fromBudgetItem(it), decimalComparer); diff != "" {
		t.Fatalf("budget mismatch (-want +got):\n%s", diff)
	}
}

func TestInvoicePaymentItemKeepsRawPayload(t *testing.T) {
	p := entities.InvoicePayment{
		ID:           "p-1",
		InvoiceID:    "inv-1",
		Date:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:       entities.PaymentStatusApproved,
		MPPayloadRaw: []byte(`{"id":"1","status":"approved"}`),
		MPPayload:    map[string]interface{}{"id": "1", "status": "approved"},
	}
	got := fromInvoicePaymentItem(toInvoicePaymentItem(p))
	assert.Equal(t, p, got)
}

func TestSequenceValue(t *testing.T) {
	n, err := sequenceValue(map[string]types.AttributeValue{"value": &types.AttributeValueMemberN{Value: "42"}})
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = sequenceValue(map[string]types.AttributeValue{})
	assert.Error(t, err)
}

func TestParseHelpersTolerateBadInput(t *testing.T) {
	assert.True(t, parseDecimal("nope").IsZero())
	assert.Nil(t, parseOptionalDecimal(""))
	assert.Nil(t, parseOptionalTime(""))
	assert.True(t, parseTime("bad").IsZero())
}
