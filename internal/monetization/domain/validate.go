package domain

import (
	"fmt"
	"strings"
)

// Validate checks that the decision is internally consistent and belongs
// to the listing and seller being committed.
func (r CommitRequest) Validate() error {
	d := r.Decision
	if strings.TrimSpace(r.ListingID) == "" {
		return ErrInvalidListing
	}
	if strings.TrimSpace(r.SellerID) == "" {
		return ErrInvalidSeller
	}
	if strings.TrimSpace(r.UserID) == "" {
		return ErrInvalidUser
	}
	if d.ListingID != "" && d.ListingID != r.ListingID {
		return fmt.Errorf("%w: decision priced listing %s", ErrInvalidDecision, d.ListingID)
	}
	if d.SellerID != "" && d.SellerID != r.SellerID {
		return fmt.Errorf("%w: decision priced for another seller", ErrInvalidDecision)
	}

	source, ok := d.Outcome.Source()
	if !ok || source != d.Source {
		return fmt.Errorf("%w: outcome %q does not match source %q", ErrInvalidDecision, d.Outcome, d.Source)
	}
	if d.ChargeAmount.IsNegative() || d.TaxAmount.IsNegative() {
		return fmt.Errorf("%w: negative amount", ErrInvalidDecision)
	}
	if !d.ChargeAmount.Add(d.TaxAmount).Equal(d.GrossAmount) {
		return fmt.Errorf("%w: gross does not equal charge plus tax", ErrInvalidDecision)
	}
	if (d.Outcome == OutcomeFree || d.Outcome == OutcomeSubscription) && !d.ChargeAmount.IsZero() {
		return fmt.Errorf("%w: %s outcome with a charge", ErrInvalidDecision, d.Outcome)
	}
	if d.Country == "" {
		return fmt.Errorf("%w: missing country", ErrInvalidDecision)
	}
	return nil
}
