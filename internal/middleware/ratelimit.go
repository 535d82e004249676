package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/requestdata"
)

// RateLimitMiddleware is a fixed-window counter backed by redis, keyed by
// user id when authenticated and client IP otherwise. Redis being down
// fails open: limiting is protection, not correctness.
type RateLimitMiddleware struct {
	log    *logger.Logger
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimitMiddleware(log *logger.Logger, rdb *redis.Client, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		log:    log.With("middleware", "RateLimitMiddleware"),
		rdb:    rdb,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", rl.clientKey(c), time.Now().Unix()/int64(rl.window.Seconds()))
		ctx := c.Request.Context()

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			rl.log.Warn("Rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
				rl.log.Warn("Failed to set rate limit key expiry", "key", key, "error", err)
			}
		}
		if count > int64(rl.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "rate limit exceeded, try again shortly",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimitMiddleware) clientKey(c *gin.Context) string {
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
		return "user:" + rd.UserID.String()
	}
	return "ip:" + c.ClientIP()
}
