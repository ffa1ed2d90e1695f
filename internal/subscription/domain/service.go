package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error)
	Get(ctx context.Context, id string) (*Subscription, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Subscription, error)
	Cancel(ctx context.Context, id string) (*Subscription, error)
}

type CreateSubscriptionRequest struct {
	SellerID             string    `json:"seller_id"`
	PackageCode          string    `json:"package_code"`
	StartAt              time.Time `json:"start_at"`
	EndAt                time.Time `json:"end_at"`
	IncludedListingQuota int32     `json:"included_listing_quota"`
}

var (
	ErrInvalidSeller     = errors.New("invalid_seller")
	ErrInvalidPackage    = errors.New("invalid_package_code")
	ErrInvalidPeriod     = errors.New("invalid_period")
	ErrInvalidQuota      = errors.New("invalid_listing_quota")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("subscription_not_found")
	ErrInvalidTransition = errors.New("invalid_status_transition")
)
