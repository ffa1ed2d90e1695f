package quote

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/classifieds/internal/cache"
	"github.com/smallbiznis/classifieds/internal/clock"
	monetizationdomain "github.com/smallbiznis/classifieds/internal/monetization/domain"
)

type memoryStore struct {
	clock   clock.Clock
	entries cache.Cache[string, Quote]
}

// NewMemoryStore keeps quotes in process. Quotes do not survive restarts and
// are not shared between replicas.
func NewMemoryStore(c clock.Clock) Store {
	return &memoryStore{
		clock:   c,
		entries: cache.NewTTLCacheWithClock[string, Quote](c.Now),
	}
}

func (s *memoryStore) Save(_ context.Context, decision monetizationdomain.Decision, ttl time.Duration) (*Quote, error) {
	if ttl <= 0 {
		return nil, errors.New("quote ttl must be positive")
	}
	q := Quote{
		ID:        newID(),
		Decision:  decision,
		ExpiresAt: s.clock.Now().UTC().Add(ttl),
	}
	s.entries.Set(q.ID, q, ttl)
	return &q, nil
}

func (s *memoryStore) Take(_ context.Context, id string) (*Quote, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	q, ok := s.entries.Take(key)
	if !ok {
		return nil, ErrNotFound
	}
	return &q, nil
}
