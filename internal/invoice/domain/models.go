// Package domain contains invoice line snapshots written when a paid
// listing is committed against a caller-supplied draft invoice.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceLine freezes the amounts charged for one listing. Later price, VAT
// or campaign changes never touch it.
type InvoiceLine struct {
	ID                 snowflake.ID      `json:"id" gorm:"primaryKey"`
	InvoiceID          string            `json:"invoice_id" gorm:"type:text;not null;index"`
	ListingID          string            `json:"listing_id" gorm:"type:text;not null"`
	Description        string            `json:"description" gorm:"type:text;not null"`
	Quantity           int32             `json:"quantity" gorm:"not null"`
	UnitPriceNet       decimal.Decimal   `json:"unit_price_net" gorm:"type:numeric(12,2);not null"`
	DiscountAmount     decimal.Decimal   `json:"discount_amount" gorm:"type:numeric(12,2);not null"`
	NetAmount          decimal.Decimal   `json:"net_amount" gorm:"type:numeric(12,2);not null"`
	TaxRate            decimal.Decimal   `json:"tax_rate" gorm:"type:numeric(5,2);not null"`
	TaxAmount          decimal.Decimal   `json:"tax_amount" gorm:"type:numeric(12,2);not null"`
	GrossAmount        decimal.Decimal   `json:"gross_amount" gorm:"type:numeric(12,2);not null"`
	Currency           string            `json:"currency" gorm:"type:char(3);not null"`
	Country            string            `json:"country" gorm:"type:char(2);not null"`
	PriceConfigID      *snowflake.ID     `json:"price_config_id,omitempty"`
	PriceConfigVersion *int32            `json:"price_config_version,omitempty"`
	Metadata           datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt          time.Time         `json:"created_at" gorm:"not null"`
}

// TableName sets the database table name.
func (InvoiceLine) TableName() string { return "invoice_lines" }

// PaidLine is the input for a paid listing line.
type PaidLine struct {
	InvoiceID          string
	ListingID          string
	PricingType        string
	Country            string
	Currency           string
	UnitPriceNet       decimal.Decimal
	DiscountAmount     decimal.Decimal
	NetAmount          decimal.Decimal
	TaxRate            decimal.Decimal
	TaxAmount          decimal.Decimal
	GrossAmount        decimal.Decimal
	PriceConfigID      *snowflake.ID
	PriceConfigVersion *int32
	CampaignID         *snowflake.ID
}

// NewPaidLine builds the snapshot for a single paid listing.
func NewPaidLine(id snowflake.ID, in PaidLine, now time.Time) *InvoiceLine {
	line := &InvoiceLine{
		ID:                 id,
		InvoiceID:          in.InvoiceID,
		ListingID:          in.ListingID,
		Description:        "Listing " + in.PricingType + " " + in.ListingID,
		Quantity:           1,
		UnitPriceNet:       in.UnitPriceNet,
		DiscountAmount:     in.DiscountAmount,
		NetAmount:          in.NetAmount,
		TaxRate:            in.TaxRate,
		TaxAmount:          in.TaxAmount,
		GrossAmount:        in.GrossAmount,
		Currency:           in.Currency,
		Country:            in.Country,
		PriceConfigID:      in.PriceConfigID,
		PriceConfigVersion: in.PriceConfigVersion,
		Metadata: datatypes.JSONMap{
			"pricing_type": in.PricingType,
		},
		CreatedAt: now,
	}
	if in.CampaignID != nil {
		line.Metadata["campaign_id"] = in.CampaignID.String()
	}
	return line
}
