package middleware

import (
	"fmt"
	"strconv"
	"time"

	redisStore "point-wallet/internal/adapter/storage/redis"
	"point-wallet/pkg/apperror"
	"point-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// Rate limit groups.
const (
	GroupChargeReady   = "charge_ready"
	GroupChargeApprove = "charge_approve"
	GroupRefund        = "refund"
	GroupPoints        = "points"
)

// DefaultRateLimitRules returns the per-member limits for each endpoint group.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		GroupChargeReady:   {Limit: 10, Window: time.Minute},
		GroupChargeApprove: {Limit: 20, Window: time.Minute},
		GroupRefund:        {Limit: 5, Window: time.Minute},
		GroupPoints:        {Limit: 60, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// When the store is unreachable requests are let through.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier keys authenticated routes by member, gateway redirects by
// the member id embedded in the callback URL, and anything else by client ip.
func extractIdentifier(c *gin.Context) string {
	if id, ok := MemberID(c); ok {
		return "member:" + id.String()
	}
	if raw := c.Query("member_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return "member:" + id.String()
		}
	}
	return "ip:" + c.ClientIP()
}
