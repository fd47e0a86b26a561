package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/domain/pricing"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
)

// Config is the application configuration. Values come from, in order of
// precedence: environment variables, the TOML file named by CONFIG_FILE,
// and the defaults of DefaultConfig.
type Config struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	Port     int    `toml:"port"`

	Storage   StorageConfig   `toml:"storage"`
	Pricing   PricingConfig   `toml:"pricing"`
	Document  DocumentConfig  `toml:"document"`
	Numbering NumberingConfig `toml:"numbering"`
	Email     EmailConfig     `toml:"email"`
	LLM       LLMConfig       `toml:"llm"`
	PDF       PDFConfig       `toml:"pdf"`
	Payments  PaymentsConfig  `toml:"payments"`
}

type StorageConfig struct {
	Driver      string         `toml:"driver"`
	DatabaseURL string         `toml:"database_url"`
	DynamoDB    DynamoDBConfig `toml:"dynamodb"`
}

type DynamoDBConfig struct {
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
	AccessKeyID     string `toml:"-"`
	SecretAccessKey string `toml:"-"`

	ServicesTable        string `toml:"services_table"`
	ClientsTable         string `toml:"clients_table"`
	BudgetsTable         string `toml:"budgets_table"`
	InvoicesTable        string `toml:"invoices_table"`
	EmailHistoryTable    string `toml:"email_history_table"`
	InvoicePaymentsTable string `toml:"invoice_payments_table"`
	SequencesTable       string `toml:"sequences_table"`
}

type PricingConfig struct {
	FreeRadiusKm   decimal.Decimal `toml:"free_radius_km"`
	PerKmRate      decimal.Decimal `toml:"per_km_rate"`
	DifficultyMode string          `toml:"difficulty_mode"`
}

type DocumentConfig struct {
	DefaultLocale  string         `toml:"default_locale"`
	CurrencySymbol string         `toml:"currency_symbol"`
	ValidityDays   int            `toml:"validity_days"`
	Issuer         document.Party `toml:"issuer"`
	PaymentMethod  string         `toml:"payment_method"`
	BankName       string         `toml:"bank_name"`
	IBAN           string         `toml:"iban"`
	Footnotes      []string       `toml:"footnotes"`
}

// NumberingConfig shifts the sequences so numbering can continue from a
// previous system: the first budget gets BudgetOffset+1.
type NumberingConfig struct {
	BudgetOffset  int64 `toml:"budget_offset"`
	InvoiceOffset int64 `toml:"invoice_offset"`
}

type EmailConfig struct {
	ResendAPIKey string `toml:"-"`
	From         string `toml:"from"`
	ReplyTo      string `toml:"reply_to"`
}

type LLMConfig struct {
	GeminiAPIKey string `toml:"-"`
	Model        string `toml:"model"`
}

type PDFConfig struct {
	ChromePath string        `toml:"chrome_path"`
	Timeout    time.Duration `toml:"-"`
}

type PaymentsConfig struct {
	MercadoPagoAccessToken string `toml:"-"`
	MockMode               bool   `toml:"mock_mode"`
	TestPayerEmail         string `toml:"test_payer_email"`
	TestPayerUserID        string `toml:"test_payer_user_id"`
}

// SandboxToken reports whether the access token belongs to a Mercado Pago
// test application.
func (p PaymentsConfig) SandboxToken() bool {
	return strings.HasPrefix(p.MercadoPagoAccessToken, "TEST-")
}

func DefaultConfig() *Config {
	pc := pricing.DefaultConfig()
	ds := document.DefaultSettings()
	return &Config{
		Env:      "production",
		LogLevel: "info",
		Port:     8080,
		Storage: StorageConfig{
			Driver:   StorageDynamoDB,
			DynamoDB: DynamoDBConfig{Region: "us-east-1"},
		},
		Pricing: PricingConfig{
			FreeRadiusKm:   pc.FreeRadiusKm,
			PerKmRate:      pc.PerKmRate,
			DifficultyMode: string(pc.DifficultyMode),
		},
		Document: DocumentConfig{
			DefaultLocale:  string(ds.DefaultLocale),
			CurrencySymbol: ds.CurrencySymbol,
			ValidityDays:   ds.ValidityDays,
		},
		PDF: PDFConfig{Timeout: 30 * time.Second},
	}
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	if path := getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	setString(&cfg.Env, getenv("APP_ENV"))
	setString(&cfg.LogLevel, getenv("LOG_LEVEL"))
	if err := setInt(&cfg.Port, "PORT", getenv("PORT")); err != nil {
		return err
	}

	setString(&cfg.Storage.Driver, strings.ToLower(getenv("STORAGE_DRIVER")))
	setString(&cfg.Storage.DatabaseURL, getenv("DATABASE_URL"))
	ddb := &cfg.Storage.DynamoDB
	setString(&ddb.Region, getenv("AWS_REGION"))
	setString(&ddb.Endpoint, getenv("DYNAMODB_ENDPOINT"))
	setString(&ddb.AccessKeyID, getenv("AWS_ACCESS_KEY_ID"))
	setString(&ddb.SecretAccessKey, getenv("AWS_SECRET_ACCESS_KEY"))
	setString(&ddb.ServicesTable, getenv("SERVICES_TABLE"))
	setString(&ddb.ClientsTable, getenv("CLIENTS_TABLE"))
	setString(&ddb.BudgetsTable, getenv("BUDGETS_TABLE"))
	setString(&ddb.InvoicesTable, getenv("INVOICES_TABLE"))
	setString(&ddb.EmailHistoryTable, getenv("EMAIL_HISTORY_TABLE"))
	setString(&ddb.InvoicePaymentsTable, getenv("INVOICE_PAYMENTS_TABLE"))
	setString(&ddb.SequencesTable, getenv("SEQUENCES_TABLE"))

	if err := setDecimal(&cfg.Pricing.FreeRadiusKm, "FREE_RADIUS_KM", getenv("FREE_RADIUS_KM")); err != nil {
		return err
	}
	if err := setDecimal(&cfg.Pricing.PerKmRate, "PER_KM_RATE", getenv("PER_KM_RATE")); err != nil {
		return err
	}
	setString(&cfg.Pricing.DifficultyMode, getenv("DIFFICULTY_MODE"))

	setString(&cfg.Document.DefaultLocale, getenv("DEFAULT_LOCALE"))
	if err := setInt64(&cfg.Numbering.BudgetOffset, "BUDGET_NUMBER_OFFSET", getenv("BUDGET_NUMBER_OFFSET")); err != nil {
		return err
	}
	if err := setInt64(&cfg.Numbering.InvoiceOffset, "INVOICE_NUMBER_OFFSET", getenv("INVOICE_NUMBER_OFFSET")); err != nil {
		return err
	}

	setString(&cfg.Email.ResendAPIKey, getenv("RESEND_API_KEY"))
	setString(&cfg.Email.From, getenv("EMAIL_FROM"))
	setString(&cfg.Email.ReplyTo, getenv("EMAIL_REPLY_TO"))

	setString(&cfg.LLM.GeminiAPIKey, getenv("GEMINI_API_KEY"))
	setString(&cfg.LLM.Model, getenv("GEMINI_MODEL"))

	setString(&cfg.PDF.ChromePath, getenv("CHROME_PATH"))
	if v := getenv("PDF_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PDF_TIMEOUT %q: %w", v, err)
		}
		cfg.PDF.Timeout = d
	}

	setString(&cfg.Payments.MercadoPagoAccessToken, getenv("MERCADOPAGO_ACCESS_TOKEN"))
	setString(&cfg.Payments.TestPayerEmail, getenv("MERCADOPAGO_TEST_PAYER_EMAIL"))
	setString(&cfg.Payments.TestPayerUserID, getenv("MERCADOPAGO_TEST_PAYER_ID"))
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		if isEnabled(getenv(key)) {
			cfg.Payments.MockMode = true
		}
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDynamoDB:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("STORAGE_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if err := c.PricingConfig().Validate(); err != nil {
		return err
	}
	if _, err := document.ParseLocale(c.Document.DefaultLocale); err != nil {
		return err
	}
	if c.Document.ValidityDays < 0 {
		return fmt.Errorf("validity days must not be negative: %d", c.Document.ValidityDays)
	}
	if c.Numbering.BudgetOffset < 0 || c.Numbering.InvoiceOffset < 0 {
		return fmt.Errorf("numbering offsets must not be negative")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) PricingConfig() pricing.Config {
	mode, err := pricing.ParseDifficultyMode(c.Pricing.DifficultyMode)
	if err != nil {
		mode = pricing.DifficultyMode(c.Pricing.DifficultyMode)
	}
	return pricing.Config{
		FreeRadiusKm:   c.Pricing.FreeRadiusKm,
		PerKmRate:      c.Pricing.PerKmRate,
		DifficultyMode: mode,
	}
}

func (c *Config) DocumentSettings() document.Settings {
	locale, _ := document.ParseLocale(c.Document.DefaultLocale)
	return document.Settings{
		DefaultLocale:  locale,
		CurrencySymbol: c.Document.CurrencySymbol,
		ValidityDays:   c.Document.ValidityDays,
		Issuer:         c.Document.Issuer,
		PaymentMethod:  c.Document.PaymentMethod,
		BankName:       c.Document.BankName,
		IBAN:           c.Document.IBAN,
		Footnotes:      c.Document.Footnotes,
	}
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key, v string) error {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, key, v string) error {
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setDecimal(dst *decimal.Decimal, key, v string) error {
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func isEnabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
