// Package security holds request-throttling middleware backed by Redis, so
// limits hold across restarts and multiple instances.
package security

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Limit returns route middleware enforcing at most max requests per window,
// keyed by user for authenticated requests and by IP otherwise. Redis
// failures fail open: throttling is protection, not a correctness
// requirement.
func (r *RateLimiter) Limit(scope string, max int64, window time.Duration) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.RealIP()
		if e.Auth != nil {
			id = "user:" + e.Auth.Id
		}
		key := fmt.Sprintf("ratelimit:%s:%s", scope, id)

		ctx := e.Request.Context()
		count, err := r.redis.Incr(ctx, key).Result()
		if err != nil {
			slog.Warn("rate limit counter unavailable", "scope", scope, "error", err)
			return e.Next()
		}
		if count == 1 {
			r.redis.Expire(ctx, key, window)
		}
		if count > max {
			return apis.NewTooManyRequestsError("Rate limit exceeded. Please try again later.", nil)
		}

		return e.Next()
	}
}

// BlockBots rejects requests with obvious scraper user agents.
func (r *RateLimiter) BlockBots() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if isSuspiciousUserAgent(e.Request.Header.Get("User-Agent")) {
			return apis.NewForbiddenError("Access denied", nil)
		}
		return e.Next()
	}
}

func isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	lower := strings.ToLower(ua)
	for _, pattern := range suspicious {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
