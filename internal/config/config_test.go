package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageDynamoDB, cfg.Storage.Driver)
	assert.False(t, cfg.IsDevelopment())

	pc := cfg.PricingConfig()
	assert.True(t, pc.FreeRadiusKm.Equal(decimal.NewFromInt(15)))
	assert.True(t, pc.PerKmRate.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, pricing.DifficultyCombined, pc.DifficultyMode)

	ds := cfg.DocumentSettings()
	assert.Equal(t, document.LocaleES, ds.DefaultLocale)
	assert.Equal(t, "€", ds.CurrencySymbol)
	assert.Equal(t, 15, ds.ValidityDays)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = 9090

[pricing]
free_radius_km = 10
per_km_rate = "5"
difficulty_mode = "global"

[document]
default_locale = "ca"
validity_days = 30
payment_method = "Transferencia bancaria"
iban = "ES00 0000 0000 0000 0000 0000"
footnotes = ["Materiales no incluidos"]

[document.issuer]
name = "Reformas Ejemplo"
tax_id = "B12345678"

[numbering]
budget_offset = 149
`), 0o600))

	cfg, err := load(envFrom(map[string]string{
		"CONFIG_FILE":           path,
		"PER_KM_RATE":           "4.5",
		"APP_ENV":               "development",
		"MERCADOPAGO_MOCK":      "yes",
		"PDF_TIMEOUT":           "10s",
		"INVOICE_NUMBER_OFFSET": "6",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.Pricing.FreeRadiusKm.Equal(decimal.NewFromInt(10)))
	assert.True(t, cfg.Pricing.PerKmRate.Equal(decimal.RequireFromString("4.5")), "env wins over file")
	assert.Equal(t, pricing.DifficultyGlobal, cfg.PricingConfig().DifficultyMode)
	assert.Equal(t, int64(149), cfg.Numbering.BudgetOffset)
	assert.Equal(t, int64(6), cfg.Numbering.InvoiceOffset)
	assert.True(t, cfg.Payments.MockMode)
	assert.Equal(t, 10*time.Second, cfg.PDF.Timeout)

	ds := cfg.DocumentSettings()
	assert.Equal(t, document.LocaleCA, ds.DefaultLocale)
	assert.Equal(t, "Reformas Ejemplo", ds.Issuer.Name)
	assert.Equal(t, "B12345678", ds.Issuer.TaxID)
	assert.Equal(t, []string{"Materiales no incluidos"}, ds.Footnotes)
	assert.Equal(t, 30, ds.ValidityDays)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mongo"}},
		{"bad port", map[string]string{"PORT": "abc"}},
		{"negative rate", map[string]string{"PER_KM_RATE": "-1"}},
		{"unknown difficulty mode", map[string]string{"DIFFICULTY_MODE": "random"}},
		{"unsupported locale", map[string]string{"DEFAULT_LOCALE": "fr"}},
		{"bad timeout", map[string]string{"PDF_TIMEOUT": "soon"}},
		{"missing file", map[string]string{"CONFIG_FILE": "/does/not/exist.toml"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(envFrom(tc.env))
			assert.Error(t, err)
		})
	}
}

func TestPostgresDriver(t *testing.T) {
	cfg, err := load(envFrom(map[string]string{
		"STORAGE_DRIVER": "POSTGRES",
		"DATABASE_URL":   "postgres://localhost/obra",
	}))
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
}

func TestSandboxToken(t *testing.T) {
	assert.True(t, PaymentsConfig{MercadoPagoAccessToken: "TEST-123"}.SandboxToken())
	assert.False(t, PaymentsConfig{MercadoPagoAccessToken: "APP_USR-123"}.SandboxToken())
}
