package db

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
)

// NewRedisClient connects the rate-limiter backend. A missing REDIS_ADDR
// returns (nil, nil): limiting is optional and the middleware treats a nil
// client as disabled.
func NewRedisClient(log *logger.Logger) (*goredis.Client, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		log.Warn("REDIS_ADDR not set, rate limiting disabled")
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
