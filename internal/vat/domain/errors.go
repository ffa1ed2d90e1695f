package domain

import "errors"

var (
	ErrInvalidCountry  = errors.New("invalid_country")
	ErrInvalidRate     = errors.New("invalid_vat_rate")
	ErrInvalidValidity = errors.New("invalid_validity_window")
	ErrNotConfigured   = errors.New("vat_rate_not_configured")
)
