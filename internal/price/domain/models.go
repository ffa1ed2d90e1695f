package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type PricingType string

const (
	PricingTypePublish PricingType = "publish"
	PricingTypeRenew   PricingType = "renew"
)

// ParsePricingType accepts the canonical lower-case names, empty means publish.
func ParsePricingType(value string) (PricingType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(PricingTypePublish):
		return PricingTypePublish, nil
	case string(PricingTypeRenew):
		return PricingTypeRenew, nil
	default:
		return "", ErrInvalidPricingType
	}
}

// PriceConfig is the paid-tier net unit price for (country, segment, pricing_type).
// Rows are never updated once published; a price change publishes a new version.
type PriceConfig struct {
	ID           snowflake.ID    `json:"id" gorm:"primaryKey"`
	Country      string          `json:"country" gorm:"type:char(2);not null;uniqueIndex:ux_price_configs_version,priority:1"`
	Segment      string          `json:"segment" gorm:"type:text;not null;uniqueIndex:ux_price_configs_version,priority:2"`
	PricingType  PricingType     `json:"pricing_type" gorm:"type:text;not null;uniqueIndex:ux_price_configs_version,priority:3"`
	Version      int32           `json:"version" gorm:"not null;uniqueIndex:ux_price_configs_version,priority:4"`
	UnitPriceNet decimal.Decimal `json:"unit_price_net" gorm:"type:numeric(12,2);not null"`
	Currency     string          `json:"currency" gorm:"type:char(3);not null"`
	Active       bool            `json:"active" gorm:"not null"`
	CreatedAt    time.Time       `json:"created_at" gorm:"not null"`
}

func (PriceConfig) TableName() string { return "price_configs" }
