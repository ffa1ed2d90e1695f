// Package country normalizes ISO 3166-1 alpha-2 codes used to scope pricing configuration.
package country

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

var ErrInvalidCountry = errors.New("invalid_country")

// Normalize returns the canonical upper-case alpha-2 code for raw.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != 2 {
		return "", ErrInvalidCountry
	}
	region, err := language.ParseRegion(raw)
	if err != nil || !region.IsCountry() {
		return "", ErrInvalidCountry
	}
	return region.String(), nil
}
