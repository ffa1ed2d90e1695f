package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Resolver looks up the paid-tier price used by the waterfall.
type Resolver interface {
	ResolveActive(ctx context.Context, country, segment string, pricingType PricingType) (*PriceConfig, error)
}

type Service interface {
	Resolver
	Publish(ctx context.Context, req PublishRequest) (*PriceConfig, error)
	Get(ctx context.Context, id string) (*PriceConfig, error)
	List(ctx context.Context, country string) ([]PriceConfig, error)
}

type PublishRequest struct {
	Country      string          `json:"country"`
	Segment      string          `json:"segment"`
	PricingType  string          `json:"pricing_type"`
	UnitPriceNet decimal.Decimal `json:"unit_price_net"`
	Currency     string          `json:"currency"`
}

var (
	ErrInvalidCountry     = errors.New("invalid_country")
	ErrInvalidSegment     = errors.New("invalid_segment")
	ErrInvalidPricingType = errors.New("invalid_pricing_type")
	ErrInvalidUnitPrice   = errors.New("invalid_unit_price")
	ErrInvalidCurrency    = errors.New("invalid_currency")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
	ErrNotConfigured      = errors.New("price_config_not_configured")
)
