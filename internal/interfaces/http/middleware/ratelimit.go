package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/licensehub/licensehub/internal/shared/constants"
	"github.com/licensehub/licensehub/internal/shared/logger"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

// RateLimiter is a Redis fixed-window counter shared by all instances.
// Requests are keyed by customer when one is resolved, by client IP otherwise.
type RateLimiter struct {
	redisClient *redis.Client
	limit       int
	window      time.Duration
	logger      logger.Interface
	now         func() time.Time
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration, logger logger.Interface) *RateLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &RateLimiter{
		redisClient: redisClient,
		limit:       limit,
		window:      window,
		logger:      logger,
		now:         time.Now,
	}
}

func (rl *RateLimiter) key(c *gin.Context) string {
	bucket := rl.now().Unix() / int64(rl.window.Seconds())
	if v, ok := c.Get(constants.ContextKeyCustomerID); ok {
		return fmt.Sprintf("%scustomer:%v:%d", constants.RedisKeyRateLimit, v, bucket)
	}
	return fmt.Sprintf("%sip:%s:%d", constants.RedisKeyRateLimit, c.ClientIP(), bucket)
}

// Limit returns a Gin middleware that enforces the rate limit.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := rl.key(c)

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			// Fail open: an unavailable Redis must not block all traffic.
			rl.logger.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if count == 1 {
			if err := rl.redisClient.Expire(ctx, key, rl.window+time.Second).Err(); err != nil {
				rl.logger.Warnw("failed to set rate limit window", "key", key, "error", err)
			}
		}

		if count > int64(rl.limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
