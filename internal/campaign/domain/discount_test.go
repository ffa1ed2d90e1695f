package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduction(t *testing.T) {
	charge := decimal.RequireFromString("10.00")

	off, ok := Reduction(PercentageDiscount{Percent: decimal.NewFromInt(50)}, charge, "EUR")
	require.True(t, ok)
	assert.Equal(t, "5.00", off.StringFixed(2))

	off, ok = Reduction(FixedAmountDiscount{Amount: decimal.NewFromInt(25), Currency: "EUR"}, charge, "eur")
	require.True(t, ok)
	assert.Equal(t, "10.00", off.StringFixed(2), "fixed discount is capped at the charge")

	_, ok = Reduction(FixedAmountDiscount{Amount: decimal.NewFromInt(2), Currency: "USD"}, charge, "EUR")
	assert.False(t, ok)

	off, ok = Reduction(PercentageDiscount{Percent: decimal.RequireFromString("33.33")}, decimal.RequireFromString("0.10"), "EUR")
	require.True(t, ok)
	assert.Equal(t, "0.03", off.StringFixed(2))
}

func TestCampaignDiscount_ExactlyOneKind(t *testing.T) {
	eur := "EUR"
	pct := decimal.NullDecimal{Decimal: decimal.NewFromInt(10), Valid: true}
	amt := decimal.NullDecimal{Decimal: decimal.NewFromInt(3), Valid: true}

	c := Campaign{DiscountPercent: pct}
	d, err := c.Discount()
	require.NoError(t, err)
	assert.Equal(t, DiscountKindPercentage, d.Kind())

	c = Campaign{DiscountAmount: amt, DiscountCurrency: &eur}
	d, err = c.Discount()
	require.NoError(t, err)
	assert.Equal(t, DiscountKindFixedAmount, d.Kind())

	c = Campaign{DiscountPercent: pct, DiscountAmount: amt, DiscountCurrency: &eur}
	_, err = c.Discount()
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	c = Campaign{}
	_, err = c.Discount()
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	c = Campaign{DiscountAmount: amt}
	_, err = c.Discount()
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}
