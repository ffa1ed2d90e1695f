package domain

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/classifieds/pkg/money"
)

type DiscountKind string

const (
	DiscountKindPercentage  DiscountKind = "percentage"
	DiscountKindFixedAmount DiscountKind = "fixed_amount"
)

// Discount is either PercentageDiscount or FixedAmountDiscount.
type Discount interface {
	Kind() DiscountKind
	isDiscount()
}

type PercentageDiscount struct {
	Percent decimal.Decimal
}

func (PercentageDiscount) Kind() DiscountKind { return DiscountKindPercentage }
func (PercentageDiscount) isDiscount()        {}

type FixedAmountDiscount struct {
	Amount   decimal.Decimal
	Currency string
}

func (FixedAmountDiscount) Kind() DiscountKind { return DiscountKindFixedAmount }
func (FixedAmountDiscount) isDiscount()        {}

var hundred = decimal.NewFromInt(100)

// Reduction returns how much d takes off charge, never more than charge.
// ok is false when the discount cannot apply in this currency.
func Reduction(d Discount, charge decimal.Decimal, currency string) (decimal.Decimal, bool) {
	var off decimal.Decimal
	switch v := d.(type) {
	case PercentageDiscount:
		off = money.Round(charge.Mul(v.Percent).Div(hundred))
	case FixedAmountDiscount:
		if !money.SameCurrency(v.Currency, currency) {
			return decimal.Zero, false
		}
		off = v.Amount
	default:
		return decimal.Zero, false
	}

	if off.GreaterThan(charge) {
		off = charge
	}
	return money.NonNegative(off), true
}
