package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/classifieds/internal/clock"
	monetizationdomain "github.com/smallbiznis/classifieds/internal/monetization/domain"
)

const keyQuote = "pricing:quote:%s"

type redisStore struct {
	client *redis.Client
	clock  clock.Clock
}

func NewRedisStore(client *redis.Client, c clock.Clock) Store {
	return &redisStore{client: client, clock: c}
}

func (s *redisStore) Save(ctx context.Context, decision monetizationdomain.Decision, ttl time.Duration) (*Quote, error) {
	if ttl <= 0 {
		return nil, errors.New("quote ttl must be positive")
	}
	q := &Quote{
		ID:        newID(),
		Decision:  decision,
		ExpiresAt: s.clock.Now().UTC().Add(ttl),
	}
	payload, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, fmt.Sprintf(keyQuote, q.ID), payload, ttl).Err(); err != nil {
		return nil, fmt.Errorf("save quote: %w", err)
	}
	return q, nil
}

func (s *redisStore) Take(ctx context.Context, id string) (*Quote, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	payload, err := s.client.GetDel(ctx, fmt.Sprintf(keyQuote, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("take quote: %w", err)
	}

	var q Quote
	if err := json.Unmarshal(payload, &q); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	return &q, nil
}
