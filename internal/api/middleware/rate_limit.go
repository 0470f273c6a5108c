// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware caps credential requests per client IP in fixed
// one-minute windows.
type RateLimitMiddleware struct {
	redisClient *redis.Client
	limit       int
	now         func() time.Time
}

// NewRateLimitMiddleware returns a limiter allowing limit requests per
// minute. A nil client or a non-positive limit disables limiting.
func NewRateLimitMiddleware(redisClient *redis.Client, limit int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redisClient: redisClient,
		limit:       limit,
		now:         time.Now,
	}
}

func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.redisClient == nil || m.limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := m.now().Unix() / 60 // 1-minute window

		rateLimitKey := fmt.Sprintf("ratelimit:auth:%s:%d", c.ClientIP(), window)

		count, err := m.redisClient.Incr(ctx, rateLimitKey).Result()
		if err != nil {
			// On Redis error, allow the request (fail open)
			log.Printf("Rate limit check failed: %v", err)
			c.Next()
			return
		}

		// Set expiry on first increment
		if count == 1 {
			m.redisClient.Expire(ctx, rateLimitKey, 2*time.Minute)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(m.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, m.limit-int(count))))
		c.Header("X-RateLimit-Reset", strconv.FormatInt((window+1)*60, 10))

		if count > int64(m.limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMIT_EXCEEDED",
					"message": "Too many authentication attempts. Please try again later.",
					"details": gin.H{
						"limit": m.limit,
						"reset": (window + 1) * 60,
					},
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
