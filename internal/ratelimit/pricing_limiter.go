package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/classifieds/internal/config"
)

const keyPricingSeller = "pricing:seller:%s"

// PricingLimiter throttles pricing calls per seller. Rate and burst are read
// from the pricing config on every call so reloads apply immediately.
type PricingLimiter struct {
	bucket  *TokenBucket
	pricing *config.PricingConfigHolder
}

// NewPricingLimiter returns nil when Redis is not configured.
func NewPricingLimiter(client *redis.Client, pricing *config.PricingConfigHolder) *PricingLimiter {
	if client == nil {
		return nil
	}
	return &PricingLimiter{
		bucket:  NewTokenBucket(client),
		pricing: pricing,
	}
}

func (l *PricingLimiter) Enabled() bool {
	return l != nil && l.bucket != nil && l.pricing.Get().RateLimit.Enabled
}

// AllowSeller always allows when the limiter is disabled.
func (l *PricingLimiter) AllowSeller(ctx context.Context, sellerID string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	cfg := l.pricing.Get().RateLimit
	key := fmt.Sprintf(keyPricingSeller, strings.ToLower(strings.TrimSpace(sellerID)))
	return l.bucket.Allow(ctx, key, cfg.Rate, cfg.Burst)
}
