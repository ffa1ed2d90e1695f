package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Quote is the paid charge a discount is applied to.
type Quote struct {
	Charge   decimal.Decimal
	Currency string
	VatRate  decimal.Decimal
	Tax      decimal.Decimal
	Gross    decimal.Decimal
}

// AppliedDiscount records which campaign changed a quote and by how much.
type AppliedDiscount struct {
	CampaignID   snowflake.ID        `json:"campaign_id"`
	CampaignName string              `json:"campaign_name"`
	Kind         DiscountKind        `json:"kind"`
	Percent      decimal.NullDecimal `json:"percent"`
	Amount       decimal.Decimal     `json:"amount"`
}

// Resolver applies the best running campaign. It never fails: any lookup
// problem leaves the quote unchanged.
type Resolver interface {
	Apply(ctx context.Context, country string, quote Quote, now time.Time) (Quote, *AppliedDiscount)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Campaign, error)
	List(ctx context.Context, status string) ([]Campaign, error)
	SetStatus(ctx context.Context, id string, status string) (*Campaign, error)
}

type CreateRequest struct {
	Name             string              `json:"name"`
	Type             string              `json:"type"`
	Target           string              `json:"target"`
	Status           string              `json:"status"`
	Country          *string             `json:"country"`
	Priority         int32               `json:"priority"`
	DiscountPercent  decimal.NullDecimal `json:"discount_percent"`
	DiscountAmount   decimal.NullDecimal `json:"discount_amount"`
	DiscountCurrency *string             `json:"discount_currency"`
	StartAt          time.Time           `json:"start_at"`
	EndAt            time.Time           `json:"end_at"`
}

var (
	ErrInvalidName     = errors.New("invalid_campaign_name")
	ErrInvalidType     = errors.New("invalid_campaign_type")
	ErrInvalidTarget   = errors.New("invalid_campaign_target")
	ErrInvalidStatus   = errors.New("invalid_campaign_status")
	ErrInvalidCountry  = errors.New("invalid_country")
	ErrInvalidPeriod   = errors.New("invalid_period")
	ErrInvalidDiscount = errors.New("invalid_discount")
	ErrInvalidCurrency = errors.New("invalid_currency")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("campaign_not_found")
)
