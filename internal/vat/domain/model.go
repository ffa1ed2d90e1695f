package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// VatRate is the VAT percentage applied to paid listings in one country.
// A country may carry several rows; the one whose validity window contains
// the pricing instant wins, latest valid_from first.
type VatRate struct {
	ID      snowflake.ID    `json:"id" gorm:"primaryKey"`
	Country string          `json:"country" gorm:"type:char(2);not null;index"`
	Rate    decimal.Decimal `json:"rate" gorm:"type:numeric(5,2);not null"` // percent, e.g. 19.00

	ValidFrom time.Time  `json:"valid_from" gorm:"not null"`
	ValidTo   *time.Time `json:"valid_to,omitempty"`
	Active    bool       `json:"active" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (VatRate) TableName() string { return "vat_rates" }

// Covers reports whether at falls inside [ValidFrom, ValidTo).
func (v *VatRate) Covers(at time.Time) bool {
	if at.Before(v.ValidFrom) {
		return false
	}
	return v.ValidTo == nil || at.Before(*v.ValidTo)
}

func (v *VatRate) Validate() error {
	if v.Rate.IsNegative() || v.Rate.GreaterThan(hundred) {
		return ErrInvalidRate
	}
	if v.ValidFrom.IsZero() {
		return ErrInvalidValidity
	}
	if v.ValidTo != nil && !v.ValidTo.After(v.ValidFrom) {
		return ErrInvalidValidity
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

// ComputeTax returns the exclusive tax on net for a percentage rate.
// Rounding happens only here so stored amounts stay at two decimals.
func ComputeTax(net, ratePercent decimal.Decimal) decimal.Decimal {
	if !net.IsPositive() || !ratePercent.IsPositive() {
		return decimal.Zero
	}
	return net.Mul(ratePercent).Div(hundred).Round(2)
}
