package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// VATRate is the fixed invoice tax rate (IVA 21%).
var VATRate = decimal.New(21, -2)

// VATPercent is VATRate expressed for labels.
const VATPercent = 21

// DifficultyMode selects where difficulty factors apply.
//
//   - per_item: each line item factor applies, the global factor is ignored.
//   - global: line item factors are ignored, the global factor multiplies
//     (items + distance fee).
//   - combined: both apply.
type DifficultyMode string

const (
	DifficultyPerItem  DifficultyMode = "per_item"
	DifficultyGlobal   DifficultyMode = "global"
	DifficultyCombined DifficultyMode = "combined"
)

func ParseDifficultyMode(s string) (DifficultyMode, error) {
	switch DifficultyMode(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyPerItem:
		return DifficultyPerItem, nil
	case DifficultyGlobal:
		return DifficultyGlobal, nil
	case DifficultyCombined, "":
		return DifficultyCombined, nil
	}
	return "", fmt.Errorf("unknown difficulty mode %q", s)
}

func (m DifficultyMode) appliesItemFactor() bool {
	return m != DifficultyGlobal
}

func (m DifficultyMode) appliesGlobalFactor() bool {
	return m != DifficultyPerItem
}

// Config holds the tunable pricing constants.
type Config struct {
	FreeRadiusKm   decimal.Decimal
	PerKmRate      decimal.Decimal
	DifficultyMode DifficultyMode
}

// DefaultConfig returns 15 free km, 3 per extra km and combined difficulty.
func DefaultConfig() Config {
	return Config{
		FreeRadiusKm:   decimal.NewFromInt(15),
		PerKmRate:      decimal.NewFromInt(3),
		DifficultyMode: DifficultyCombined,
	}
}

func (c Config) Validate() error {
	if c.FreeRadiusKm.IsNegative() {
		return fmt.Errorf("free radius must not be negative: %s", c.FreeRadiusKm)
	}
	if c.PerKmRate.IsNegative() {
		return fmt.Errorf("per km rate must not be negative: %s", c.PerKmRate)
	}
	if _, err := ParseDifficultyMode(string(c.DifficultyMode)); err != nil {
		return err
	}
	return nil
}
