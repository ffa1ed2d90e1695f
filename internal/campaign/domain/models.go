// Package domain holds time-boxed campaigns that discount paid listings.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type CampaignStatus string

const (
	CampaignStatusDraft  CampaignStatus = "draft"
	CampaignStatusActive CampaignStatus = "active"
	CampaignStatusPaused CampaignStatus = "paused"
	CampaignStatusEnded  CampaignStatus = "ended"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused, CampaignStatusEnded:
		return true
	default:
		return false
	}
}

type CampaignScope string

const (
	CampaignScopeGlobal  CampaignScope = "global"
	CampaignScopeCountry CampaignScope = "country"
)

// Campaign carries exactly one of DiscountPercent or DiscountAmount.
type Campaign struct {
	ID       snowflake.ID   `json:"id" gorm:"primaryKey"`
	Name     string         `json:"name" gorm:"type:text;not null"`
	Type     string         `json:"type" gorm:"type:text;not null;index:ix_campaigns_lookup,priority:1"`
	Status   CampaignStatus `json:"status" gorm:"type:text;not null;index:ix_campaigns_lookup,priority:2"`
	Target   string         `json:"target" gorm:"type:text;not null"`
	Scope    CampaignScope  `json:"scope" gorm:"type:text;not null"`
	Country  *string        `json:"country,omitempty" gorm:"type:char(2)"`
	Priority int32          `json:"priority" gorm:"not null"`

	DiscountPercent  decimal.NullDecimal `json:"discount_percent" gorm:"type:numeric(5,2)"`
	DiscountAmount   decimal.NullDecimal `json:"discount_amount" gorm:"type:numeric(12,2)"`
	DiscountCurrency *string             `json:"discount_currency,omitempty" gorm:"type:char(3)"`

	StartAt   time.Time `json:"start_at" gorm:"not null"`
	EndAt     time.Time `json:"end_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (Campaign) TableName() string { return "campaigns" }

// Discount converts the nullable columns into the tagged variant.
func (c *Campaign) Discount() (Discount, error) {
	hasPercent := c.DiscountPercent.Valid
	hasAmount := c.DiscountAmount.Valid

	switch {
	case hasPercent && hasAmount, !hasPercent && !hasAmount:
		return nil, ErrInvalidDiscount
	case hasPercent:
		p := c.DiscountPercent.Decimal
		if !p.IsPositive() || p.GreaterThan(decimal.NewFromInt(100)) {
			return nil, ErrInvalidDiscount
		}
		return PercentageDiscount{Percent: p}, nil
	default:
		amount := c.DiscountAmount.Decimal
		if !amount.IsPositive() || c.DiscountCurrency == nil || strings.TrimSpace(*c.DiscountCurrency) == "" {
			return nil, ErrInvalidDiscount
		}
		return FixedAmountDiscount{Amount: amount, Currency: strings.ToUpper(strings.TrimSpace(*c.DiscountCurrency))}, nil
	}
}

// CoversCountry reports whether the campaign scope matches country.
func (c *Campaign) CoversCountry(country string) bool {
	if c.Scope == CampaignScopeGlobal {
		return true
	}
	return c.Country != nil && strings.EqualFold(*c.Country, country)
}
