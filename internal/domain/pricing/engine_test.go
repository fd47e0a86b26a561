package pricing

import (
	"errors"
	"testing"

	"obra_presupuestos/internal/domain/entities"

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

func testCatalog() Catalog {
	return NewCatalog([]entities.Service{
		{ID: "svc-a", Name: "Alicatado", Unit: "m²", BaseUnitPrice: d("30")},
		{ID: "svc-b", Name: "Rodapié", Unit: "ml", BaseUnitPrice: d("20")},
		{ID: "svc-c", Name: "Pladur", Unit: "m²", BaseUnitPrice: d("45.50")},
	})
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "expected %s, got %s", want, got)
}

func TestEngine_ItemTotalIsExact(t *testing.T) {
	e := NewEngine(DefaultConfig())
	q, err := e.PriceBudget(BudgetRequest{
		Items: []entities.LineItem{{ServiceID: "svc-c", Quantity: d("12"), DifficultyFactor: dp("1.2")}},
	}, testCatalog())
	require.NoError(t, err)
	require.Len(t, q.Items, 1)
	assertDecimal(t, "655.20", q.Items[0].Total)
	assert.Equal(t, "655.20", q.Total.StringFixed(2))
}

func TestEngine_DistanceFee(t *testing.T) {
	e := NewEngine(DefaultConfig())

	t.Run("inside free radius", func(t *testing.T) {
		assertDecimal(t, "0", e.DistanceFee(d("15")))
		assertDecimal(t, "0", e.DistanceFee(d("0")))
	})

	t.Run("beyond free radius", func(t *testing.T) {
		assertDecimal(t, "15", e.DistanceFee(d("20")))
	})

	t.Run("configured pair", func(t *testing.T) {
		alt := NewEngine(Config{FreeRadiusKm: d("10"), PerKmRate: d("5")})
		assertDecimal(t, "50", alt.DistanceFee(d("20")))
		assert.Equal(t, DifficultyCombined, alt.Config().DifficultyMode)
	})
}

func TestEngine_PriceBudget_EndToEnd(t *testing.T) {
	e := NewEngine(DefaultConfig())
	req := BudgetRequest{
		Items: []entities.LineItem{
			{ServiceID: "svc-a", Quantity: d("10"), DifficultyFactor: dp("1.0")},
			{ServiceID: "svc-b", Quantity: d("5"), DifficultyFactor: dp("1.2")},
		},
		DistanceKm: d("25"),
	}

	q, err := e.PriceBudget(req, testCatalog())
	require.NoError(t, err)

	totals := q.PerItemTotals()
	require.Len(t, totals, 2)
	assertDecimal(t, "300", totals[0])
	assertDecimal(t, "120", totals[1])
	assertDecimal(t, "30", q.DistanceFee)
	assertDecimal(t, "450", q.Total)
	assert.Empty(t, q.UnresolvedServiceIDs)
	assert.True(t, q.Complete())
}

func TestEngine_PriceBudget_DifficultyModes(t *testing.T) {
	req := BudgetRequest{
		Items: []entities.LineItem{
			{ServiceID: "svc-a", Quantity: d("10")},
			{ServiceID: "svc-b", Quantity: d("5"), DifficultyFactor: dp("1.2")},
		},
		DistanceKm:             d("25"),
		GlobalDifficultyFactor: dp("1.5"),
	}

	cases := []struct {
		mode DifficultyMode
		want string
	}{
		{DifficultyCombined, "675"},
		{DifficultyPerItem, "450"},
		{DifficultyGlobal, "645"},
	}
	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DifficultyMode = tc.mode
			q, err := NewEngine(cfg).PriceBudget(req, testCatalog())
			require.NoError(t, err)
			assertDecimal(t, tc.want, q.Total)
			assert.Equal(t, tc.mode, q.Mode)
		})
	}
}

func TestEngine_PriceBudget_Adjustment(t *testing.T) {
	e := NewEngine(DefaultConfig())
	q, err := e.PriceBudget(BudgetRequest{
		Items:                  []entities.LineItem{{ServiceID: "svc-a", Quantity: d("10")}},
		GlobalDifficultyFactor: dp("1.2"),
		Adjustment:             dp("-25.50"),
	}, testCatalog())
	require.NoError(t, err)
	// (300 * 1.2) - 25.50, the adjustment is never multiplied.
	assertDecimal(t, "334.50", q.Total)
	assertDecimal(t, "-25.50", q.Adjustment)
}

func TestEngine_PriceBudget_Issues(t *testing.T) {
	e := NewEngine(DefaultConfig())

	t.Run("unresolved service is reported", func(t *testing.T) {
		q, err := e.PriceBudget(BudgetRequest{
			Items: []entities.LineItem{
				{ServiceID: "svc-a", Quantity: d("10")},
				{ServiceID: "missing", Quantity: d("3")},
				{ServiceID: "missing", Quantity: d("1")},
			},
			DistanceKm: d("20"),
		}, testCatalog())
		require.NoError(t, err)
		assert.Equal(t, []string{"missing"}, q.UnresolvedServiceIDs)
		require.Len(t, q.Issues, 2)
		assert.Equal(t, IssueUnresolvedService, q.Issues[0].Kind)
		assert.Equal(t, 1, q.Issues[0].Index)
		assertDecimal(t, "315", q.Total)
		assert.False(t, q.Complete())
	})

	t.Run("invalid quantity is rejected", func(t *testing.T) {
		q, err := e.PriceBudget(BudgetRequest{
			Items: []entities.LineItem{
				{ServiceID: "svc-a", Quantity: d("0")},
				{ServiceID: "svc-b", Quantity: d("-2")},
				{ServiceID: "svc-b", Quantity: d("1")},
			},
		}, testCatalog())
		require.NoError(t, err)
		require.Len(t, q.Issues, 2)
		for _, is := range q.Issues {
			assert.Equal(t, IssueInvalidQuantity, is.Kind)
		}
		assert.Empty(t, q.UnresolvedServiceIDs)
		assertDecimal(t, "20", q.Total)
	})

	t.Run("non positive item factor is rejected", func(t *testing.T) {
		q, err := e.PriceBudget(BudgetRequest{
			Items: []entities.LineItem{{ServiceID: "svc-a", Quantity: d("1"), DifficultyFactor: dp("0")}},
		}, testCatalog())
		require.NoError(t, err)
		require.Len(t, q.Issues, 1)
		assert.Equal(t, IssueInvalidDifficulty, q.Issues[0].Kind)
		assert.True(t, q.Total.IsZero())
	})

	t.Run("negative distance fails the request", func(t *testing.T) {
		_, err := e.PriceBudget(BudgetRequest{DistanceKm: d("-1")}, testCatalog())
		assert.True(t, errors.Is(err, ErrInvalidDistance))
	})

	t.Run("non positive global factor fails the request", func(t *testing.T) {
		_, err := e.PriceBudget(BudgetRequest{GlobalDifficultyFactor: dp("0")}, testCatalog())
		assert.True(t, errors.Is(err, ErrInvalidGlobalDifficulty))
	})
}

func TestEngine_PriceBudget_Deterministic(t *testing.T) {
	e := NewEngine(DefaultConfig())
	req := BudgetRequest{
		Items:      []entities.LineItem{{ServiceID: "svc-c", Quantity: d("3.3"), DifficultyFactor: dp("1.15")}},
		DistanceKm: d("31.5"),
	}
	a, err := e.PriceBudget(req, testCatalog())
	require.NoError(t, err)
	b, err := e.PriceBudget(req, testCatalog())
	require.NoError(t, err)
	assert.True(t, a.Total.Equal(b.Total))
}

func TestQuote_LineItems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DifficultyMode = DifficultyGlobal
	q, err := NewEngine(cfg).PriceBudget(BudgetRequest{
		Items: []entities.LineItem{{ServiceID: "svc-b", Quantity: d("5"), DifficultyFactor: dp("1.2"), Notes: "esquinas"}},
	}, testCatalog())
	require.NoError(t, err)

	items := q.LineItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Rodapié", items[0].ServiceName)
	assert.Equal(t, "ml", items[0].Unit)
	assert.Equal(t, "esquinas", items[0].Notes)
	assert.Nil(t, items[0].DifficultyFactor, "ignored factors are not stored")
	assertDecimal(t, "100", items[0].ItemTotal)
}

func TestEngine_PriceInvoice(t *testing.T) {
	e := NewEngine(DefaultConfig())
	q, err := e.PriceInvoice(InvoiceRequest{
		Items: []entities.LineItem{
			{ServiceID: "svc-a", Quantity: d("10"), DifficultyFactor: dp("1.5")},
			{ServiceID: "svc-b", Quantity: d("10")},
			{ServiceID: "gone", Quantity: d("1")},
		},
	}, testCatalog())
	require.NoError(t, err)
	assertDecimal(t, "500", q.Subtotal)
	assert.Equal(t, "105.00", q.Tax.StringFixed(2))
	assert.Equal(t, "605.00", q.GrandTotal.StringFixed(2))
	assert.Equal(t, []string{"gone"}, q.UnresolvedServiceIDs)
	assert.Len(t, q.PerItemTotals(), 2)
}

func TestAdjustmentFromPercent(t *testing.T) {
	assertDecimal(t, "45", AdjustmentFromPercent(d("450"), d("10")))
	assertDecimal(t, "-22.5", AdjustmentFromPercent(d("450"), d("-5")))
}

func TestConfig(t *testing.T) {
	t.Run("parse mode", func(t *testing.T) {
		m, err := ParseDifficultyMode(" PER_ITEM ")
		require.NoError(t, err)
		assert.Equal(t, DifficultyPerItem, m)

		m, err = ParseDifficultyMode("")
		require.NoError(t, err)
		assert.Equal(t, DifficultyCombined, m)

		_, err = ParseDifficultyMode("sometimes")
		assert.Error(t, err)
	})

	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())

		cfg := DefaultConfig()
		cfg.PerKmRate = d("-1")
		assert.Error(t, cfg.Validate())
	})
}
