// Package quote keeps evaluated pricing decisions server-side until the
// listing is committed, so commits never trust client-supplied amounts.
package quote

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	monetizationdomain "github.com/smallbiznis/classifieds/internal/monetization/domain"
)

var (
	ErrNotFound  = errors.New("quote_not_found")
	ErrInvalidID = errors.New("invalid_quote_id")
)

type Quote struct {
	ID        string                      `json:"id"`
	Decision  monetizationdomain.Decision `json:"decision"`
	ExpiresAt time.Time                   `json:"expires_at"`
}

// Store persists quotes. Take is single-use: a taken quote is gone, whether
// or not the commit that follows succeeds.
type Store interface {
	Save(ctx context.Context, decision monetizationdomain.Decision, ttl time.Duration) (*Quote, error)
	Take(ctx context.Context, id string) (*Quote, error)
}

func newID() string {
	return ulid.Make().String()
}

func parseID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidID
	}
	id, err := ulid.ParseStrict(raw)
	if err != nil {
		return "", ErrInvalidID
	}
	return id.String(), nil
}
