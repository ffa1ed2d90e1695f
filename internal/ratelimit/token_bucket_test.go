package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/classifieds/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketTTL(t *testing.T) {
	assert.Equal(t, 8*time.Second, bucketTTL(5, 20))
	assert.Equal(t, time.Second, bucketTTL(100, 1))
	assert.Equal(t, time.Second, bucketTTL(0, 1))
}

func TestRetryAfter(t *testing.T) {
	assert.Zero(t, retryAfter(true, 0, 5))
	assert.Equal(t, 100*time.Millisecond, retryAfter(false, 0.5, 5))
}

func TestScriptValueParsing(t *testing.T) {
	assert.Equal(t, int64(1), toInt(int64(1)))
	assert.Equal(t, int64(7), toInt("7"))
	assert.InDelta(t, 2.5, toFloat("2.5"), 0.0001)
	assert.InDelta(t, 3.0, toFloat(int64(3)), 0.0001)
}

func TestPricingLimiter_DisabledWithoutRedis(t *testing.T) {
	limiter := NewPricingLimiter(nil, config.NewStaticPricingConfig(config.DefaultPricingConfig()))
	assert.Nil(t, limiter)
	assert.False(t, limiter.Enabled())

	res, err := limiter.AllowSeller(context.Background(), "seller-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestPricingLimiter_Redis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	cfg := config.DefaultPricingConfig()
	cfg.RateLimit.Rate = 0.001
	cfg.RateLimit.Burst = 2
	limiter := NewPricingLimiter(client, config.NewStaticPricingConfig(cfg))
	ctx := context.Background()
	seller := "seller-" + time.Now().Format("150405.000000")

	for i := 0; i < 2; i++ {
		res, err := limiter.AllowSeller(ctx, seller)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	res, err := limiter.AllowSeller(ctx, seller)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Positive(t, res.RetryAfter)
}
