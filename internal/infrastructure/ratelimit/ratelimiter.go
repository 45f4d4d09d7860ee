package ratelimit

import (
	"context"
	"time"
)

// Config bounds how many requests one key may make.
//
// The backends share the same per-minute ceiling but spread it differently.
// MemoryRateLimiter is a token bucket: Burst requests at once, then
// RequestsPerMinute/60 per second, so an idle key gets at most WindowLimit
// in its first minute and RequestsPerMinute in each later one.
// RedisRateLimiter counts per fixed minute and allows WindowLimit in every
// window, so a steady client gets Burst more per minute than in memory.
type Config struct {
	RequestsPerMinute int
	Burst             int
}

// Window is the fixed window used by counter based limiters.
func (c Config) Window() time.Duration {
	return time.Minute
}

// WindowLimit is the most requests one key can make in a single window.
func (c Config) WindowLimit() int64 {
	burst := c.Burst
	if burst < 0 {
		burst = 0
	}
	return int64(c.RequestsPerMinute + burst)
}

// RateLimiter decides whether the caller identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
