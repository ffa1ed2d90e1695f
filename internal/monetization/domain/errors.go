package domain

import "errors"

// Failures the caller must tell apart. ErrConfigurationMissing needs an
// operator; ErrAlreadyConsumed means another request already priced the
// listing; ErrConcurrencyConflict means the quote went stale and the caller
// must evaluate again before committing.
var (
	ErrConfigurationMissing = errors.New("configuration_missing")
	ErrAlreadyConsumed      = errors.New("already_consumed")
	ErrConcurrencyConflict  = errors.New("concurrency_conflict")
	ErrInvalidDecision      = errors.New("invalid_decision")
)

var (
	ErrInvalidSeller      = errors.New("invalid_seller")
	ErrInvalidListing     = errors.New("invalid_listing")
	ErrInvalidUser        = errors.New("invalid_user")
	ErrInvalidCountry     = errors.New("invalid_country")
	ErrInvalidPricingType = errors.New("invalid_pricing_type")
)

// IsBenign reports whether err only says the listing was already handled.
func IsBenign(err error) bool {
	return errors.Is(err, ErrAlreadyConsumed)
}

// IsRetryable reports whether a fresh evaluate and commit cycle may succeed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}
