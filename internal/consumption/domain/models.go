// Package domain contains the consumption ledger: one row per listing that
// has been priced and committed.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Source string

const (
	SourceFreeQuota         Source = "free_quota"
	SourceSubscriptionQuota Source = "subscription_quota"
	SourcePaidExtra         Source = "paid_extra"
)

func (s Source) Valid() bool {
	switch s {
	case SourceFreeQuota, SourceSubscriptionQuota, SourcePaidExtra:
		return true
	default:
		return false
	}
}

// ConsumptionLog snapshots a committed pricing decision. ListingID is the
// idempotency key and carries a unique index.
type ConsumptionLog struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	ListingID   string       `json:"listing_id" gorm:"type:text;not null;uniqueIndex:ux_consumption_logs_listing"`
	SellerID    string       `json:"seller_id" gorm:"type:text;not null;index:ix_consumption_logs_seller_source,priority:1"`
	UserID      string       `json:"user_id" gorm:"type:text;not null"`
	Country     string       `json:"country" gorm:"type:char(2);not null"`
	Segment     string       `json:"segment" gorm:"type:text;not null"`
	PricingType string       `json:"pricing_type" gorm:"type:text;not null"`
	Source      Source       `json:"source" gorm:"type:text;not null;index:ix_consumption_logs_seller_source,priority:2"`

	ChargeAmount   decimal.Decimal `json:"charge_amount" gorm:"type:numeric(12,2);not null"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:numeric(12,2);not null"`
	TaxAmount      decimal.Decimal `json:"tax_amount" gorm:"type:numeric(12,2);not null"`
	GrossAmount    decimal.Decimal `json:"gross_amount" gorm:"type:numeric(12,2);not null"`
	Currency       string          `json:"currency" gorm:"type:text;not null"`
	VatRate        decimal.Decimal `json:"vat_rate" gorm:"type:numeric(5,2);not null"`

	VatRateID          *snowflake.ID `json:"vat_rate_id,omitempty"`
	PriceConfigID      *snowflake.ID `json:"price_config_id,omitempty"`
	PriceConfigVersion *int32        `json:"price_config_version,omitempty"`
	FreeQuotaConfigID  *snowflake.ID `json:"free_quota_config_id,omitempty"`
	SubscriptionID     *snowflake.ID `json:"subscription_id,omitempty"`
	CampaignID         *snowflake.ID `json:"campaign_id,omitempty"`
	InvoiceLineID      *snowflake.ID `json:"invoice_line_id,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;index:ix_consumption_logs_seller_source,priority:3"`
}

func (ConsumptionLog) TableName() string { return "consumption_logs" }
