// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/startup-demoday/jurado/internal/config"
	"github.com/startup-demoday/jurado/pkg/logger"
)

const rateLimitKeyTpl = "ratelimit:%s" // ratelimit:${clientIP}

// RateLimiter bounds per-client request rates with a fixed redis-backed
// window. It fails open: when redis is unreachable the request proceeds, so a
// cache outage degrades protection rather than availability.
type RateLimiter struct {
	redis *redis.Client
	cfg   config.RateLimitConfig
	log   *logger.Logger
}

// NewRateLimiter creates a new rate limiter middleware.
func NewRateLimiter(redisClient *redis.Client, cfg config.RateLimitConfig, log *logger.Logger) *RateLimiter {
	return &RateLimiter{
		redis: redisClient,
		cfg:   cfg,
		log:   log,
	}
}

// Healthy pings the backing redis instance.
func (rl *RateLimiter) Healthy(ctx context.Context) error {
	if rl.redis == nil {
		return nil
	}
	return rl.redis.Ping(ctx).Err()
}

// Handler returns the gin middleware function.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.cfg.Enabled || rl.redis == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf(rateLimitKeyTpl, c.ClientIP())
		window := time.Duration(rl.cfg.WindowSeconds) * time.Second

		pipe := rl.redis.Pipeline()
		incr := pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, window)

		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			rl.log.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if incr.Val() > int64(rl.cfg.RequestsPerWindow) {
			c.Header("Retry-After", fmt.Sprintf("%d", rl.cfg.WindowSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
