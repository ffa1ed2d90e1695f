package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	assert.Equal(t, "0.01", Round(decimal.RequireFromString("0.005")).StringFixed(2))
	assert.Equal(t, "-0.01", Round(decimal.RequireFromString("-0.005")).StringFixed(2))
	assert.Equal(t, "1.90", Round(decimal.RequireFromString("1.9")).StringFixed(2))
}

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(decimal.RequireFromString("-3")).IsZero())
	assert.Equal(t, "3", NonNegative(decimal.NewFromInt(3)).String())
}

func TestNormalizeCurrency(t *testing.T) {
	code, err := NormalizeCurrency("eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", code)

	_, err = NormalizeCurrency("EURO")
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = NormalizeCurrency("QQQ")
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	assert.True(t, SameCurrency("eur", "EUR "))
}
