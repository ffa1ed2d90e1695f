package server

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	obslogger "github.com/smallbiznis/classifieds/internal/observability/logger"
	"go.uber.org/zap"
)

const (
	rateLimitEndpointPricing  = "pricing"
	rateLimitReasonSellerRate = "seller-rate"
)

// allowPricing applies the per-seller token bucket. It aborts the request
// and returns false when the seller is over its limit.
func (s *Server) allowPricing(c *gin.Context, sellerID string) bool {
	if s.limiter == nil || !s.limiter.Enabled() || sellerID == "" {
		return true
	}

	ctx := c.Request.Context()
	res, err := s.limiter.AllowSeller(ctx, sellerID)
	if err != nil {
		// Redis trouble must not block pricing.
		obslogger.FromContext(ctx).Warn("pricing rate limit check failed", zap.Error(err))
		return true
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	if res.Allowed {
		s.obsMetrics.RecordRateLimitAllowed(ctx, rateLimitEndpointPricing)
		return true
	}

	retry := int(math.Ceil(res.RetryAfter.Seconds()))
	if retry < 1 {
		retry = 1
	}
	c.Header("Retry-After", strconv.Itoa(retry))
	s.obsMetrics.RecordRateLimitDenied(ctx, rateLimitEndpointPricing, rateLimitReasonSellerRate)
	obslogger.FromContext(ctx).Info("pricing rate limited", zap.String("seller_id", sellerID))
	AbortWithError(c, ErrRateLimited)
	return false
}
