package middleware

import (
	"fmt"
	"net/http"
	"time"

	"gebeya_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window limiter backed by redis, keyed by client
// IP. When redis is down requests pass through; throttling is a shield,
// not a dependency.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s:%d", rl.prefix, c.ClientIP(), time.Now().Unix()/int64(rl.window.Seconds()))

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			logger.CtxWithError(ctx, "rate limiter unavailable", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, rl.window)
		}

		if count > int64(rl.limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}

		c.Next()
	}
}
