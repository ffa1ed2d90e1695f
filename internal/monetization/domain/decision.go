// Package domain defines the pricing decision produced by the listing
// monetization waterfall and the receipt returned once it is committed.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	campaigndomain "github.com/smallbiznis/classifieds/internal/campaign/domain"
	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
)

type Outcome string

const (
	OutcomeFree           Outcome = "free"
	OutcomeSubscription   Outcome = "subscription"
	OutcomePaid           Outcome = "paid"
	OutcomePaidDiscounted Outcome = "paid_discounted"
)

// Source maps an outcome to the consumption ledger source.
func (o Outcome) Source() (consumptiondomain.Source, bool) {
	switch o {
	case OutcomeFree:
		return consumptiondomain.SourceFreeQuota, true
	case OutcomeSubscription:
		return consumptiondomain.SourceSubscriptionQuota, true
	case OutcomePaid, OutcomePaidDiscounted:
		return consumptiondomain.SourcePaidExtra, true
	default:
		return "", false
	}
}

// Decision is the priced snapshot of one listing. It is the only thing that
// gets persisted; configuration changed after evaluation never alters it.
type Decision struct {
	Outcome            Outcome                  `json:"outcome"`
	IsFree             bool                     `json:"is_free"`
	IsCoveredByPackage bool                     `json:"is_covered_by_package"`
	Source             consumptiondomain.Source `json:"source"`

	BaseUnitPrice   decimal.Decimal                 `json:"base_unit_price"`
	DiscountAmount  decimal.Decimal                 `json:"discount_amount"`
	ChargeAmount    decimal.Decimal                 `json:"charge_amount"`
	TaxAmount       decimal.Decimal                 `json:"tax_amount"`
	GrossAmount     decimal.Decimal                 `json:"gross_amount"`
	Currency        string                          `json:"currency"`
	VatRate         decimal.Decimal                 `json:"vat_rate"`
	VatRateID       snowflake.ID                    `json:"vat_rate_id"`
	AppliedDiscount *campaigndomain.AppliedDiscount `json:"applied_discount,omitempty"`

	PriceConfigID      *snowflake.ID `json:"price_config_id,omitempty"`
	PriceConfigVersion *int32        `json:"price_config_version,omitempty"`
	FreeQuotaConfigID  *snowflake.ID `json:"free_quota_config_id,omitempty"`
	// SubscriptionID is advisory; commit picks the package again under lock.
	SubscriptionID *snowflake.ID `json:"subscription_id,omitempty"`

	ListingID   string    `json:"listing_id"`
	SellerID    string    `json:"seller_id"`
	Country     string    `json:"country"`
	Segment     string    `json:"segment"`
	PricingType string    `json:"pricing_type"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

type EvaluateRequest struct {
	SellerID    string `json:"seller_id"`
	Country     string `json:"country"`
	ListingID   string `json:"listing_id"`
	PricingType string `json:"pricing_type"`
	// Segment defaults to the configured dealer segment.
	Segment string `json:"segment"`
}

type CommitRequest struct {
	Decision  Decision
	ListingID string
	SellerID  string
	UserID    string
	InvoiceID string
}

// Receipt confirms the consumption row written for a listing.
type Receipt struct {
	ConsumptionID  snowflake.ID             `json:"consumption_id"`
	ListingID      string                   `json:"listing_id"`
	SellerID       string                   `json:"seller_id"`
	Source         consumptiondomain.Source `json:"source"`
	ChargeAmount   decimal.Decimal          `json:"charge_amount"`
	DiscountAmount decimal.Decimal          `json:"discount_amount"`
	TaxAmount      decimal.Decimal          `json:"tax_amount"`
	GrossAmount    decimal.Decimal          `json:"gross_amount"`
	Currency       string                   `json:"currency"`
	VatRate        decimal.Decimal          `json:"vat_rate"`
	SubscriptionID *snowflake.ID            `json:"subscription_id,omitempty"`
	InvoiceLineID  *snowflake.ID            `json:"invoice_line_id,omitempty"`
	CommittedAt    time.Time                `json:"committed_at"`
}

// ReceiptFromLog rebuilds the receipt of a stored consumption row.
func ReceiptFromLog(l *consumptiondomain.ConsumptionLog) *Receipt {
	return &Receipt{
		ConsumptionID:  l.ID,
		ListingID:      l.ListingID,
		SellerID:       l.SellerID,
		Source:         l.Source,
		ChargeAmount:   l.ChargeAmount,
		DiscountAmount: l.DiscountAmount,
		TaxAmount:      l.TaxAmount,
		GrossAmount:    l.GrossAmount,
		Currency:       l.Currency,
		VatRate:        l.VatRate,
		SubscriptionID: l.SubscriptionID,
		InvoiceLineID:  l.InvoiceLineID,
		CommittedAt:    l.CreatedAt,
	}
}
