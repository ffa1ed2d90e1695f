package domain

import (
	"context"
	"errors"
)

type Service interface {
	GetByListing(ctx context.Context, listingID string) (*ConsumptionLog, error)
	ListBySeller(ctx context.Context, req ListRequest) (ListResponse, error)
}

type ListRequest struct {
	SellerID  string `form:"-"`
	Source    string `form:"source"`
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

type ListResponse struct {
	Items         []ConsumptionLog `json:"items"`
	NextPageToken string           `json:"next_page_token,omitempty"`
}

var (
	ErrInvalidListing   = errors.New("invalid_listing")
	ErrInvalidSeller    = errors.New("invalid_seller")
	ErrInvalidSource    = errors.New("invalid_source")
	ErrInvalidPageToken = errors.New("invalid_page_token")
	ErrNotFound         = errors.New("not_found")
)
