package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Resolver returns the VAT rate that applies to a country at a point in time.
type Resolver interface {
	Resolve(ctx context.Context, country string, at time.Time) (*VatRate, error)
}

type Service interface {
	Resolver
	Create(ctx context.Context, req CreateRequest) (*VatRate, error)
	List(ctx context.Context, country string) ([]VatRate, error)
}

type CreateRequest struct {
	Country   string          `json:"country"`
	Rate      decimal.Decimal `json:"rate"`
	ValidFrom time.Time       `json:"valid_from"`
	ValidTo   *time.Time      `json:"valid_to,omitempty"`
}
