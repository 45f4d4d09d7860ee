package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window counter shared by all instances through Redis.
type RedisRateLimiter struct {
	client *redis.Client
	config Config
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, config Config) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		config: config,
		now:    time.Now,
	}
}

var _ RateLimiter = (*RedisRateLimiter)(nil)

// Allow increments the counter for the current window and reports whether
// Config.WindowLimit has not been exceeded.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.config.RequestsPerMinute <= 0 {
		return true, nil
	}

	window := l.config.Window()
	bucket := l.now().Unix() / int64(window.Seconds())
	redisKey := l.getKey(key, bucket)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return incr.Val() <= l.config.WindowLimit(), nil
}

func (l *RedisRateLimiter) getKey(identifier string, bucket int64) string {
	return fmt.Sprintf("paysession:ratelimit:%s:%d", identifier, bucket)
}
