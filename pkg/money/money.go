// Package money holds the rounding and currency rules shared by pricing code.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var ErrInvalidCurrency = errors.New("invalid_currency")

// Scale is the number of decimal places stored for every amount.
const Scale = 2

// Round rounds half away from zero to two places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// NormalizeCurrency returns the ISO 4217 code for raw in upper case.
func NormalizeCurrency(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != 3 {
		return "", ErrInvalidCurrency
	}
	unit, err := currency.ParseISO(raw)
	if err != nil {
		return "", ErrInvalidCurrency
	}
	return unit.String(), nil
}

// SameCurrency compares ISO codes case-insensitively.
func SameCurrency(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
