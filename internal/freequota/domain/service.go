package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Evaluator decides free quota eligibility. It takes the db handle so the
// same check runs inside the commit transaction after the config row lock.
type Evaluator interface {
	Eligible(ctx context.Context, db *gorm.DB, sellerID, country, segment string, now time.Time) (Eligibility, error)
	EligibleForUpdate(ctx context.Context, tx *gorm.DB, sellerID, country, segment string, now time.Time) (Eligibility, error)
}

type Service interface {
	Upsert(ctx context.Context, req UpsertRequest) (*FreeQuotaConfig, error)
	List(ctx context.Context, country string) ([]FreeQuotaConfig, error)
}

type UpsertRequest struct {
	Country     string `json:"country"`
	Segment     string `json:"segment"`
	QuotaAmount int32  `json:"quota_amount"`
	PeriodDays  int32  `json:"period_days"`
	Active      *bool  `json:"active"`
}

var (
	ErrInvalidCountry     = errors.New("invalid_country")
	ErrInvalidSegment     = errors.New("invalid_segment")
	ErrInvalidQuotaAmount = errors.New("invalid_quota_amount")
	ErrInvalidPeriodDays  = errors.New("invalid_period_days")
)
