package http

import (
	"paysession/internal/infrastructure/ratelimit"
	"paysession/internal/interfaces/http/middleware"
)

// initInfrastructure connects optional Redis and builds the rate limiter.
func (c *Container) initInfrastructure() {
	if c.cfg.Redis.Enabled {
		c.redis = initRedis(c.cfg, c.log)
	}

	if !c.cfg.RateLimit.Enabled {
		c.log.Infow("rate limiting disabled")
		return
	}

	limitCfg := ratelimit.Config{
		RequestsPerMinute: c.cfg.RateLimit.RequestsPerMinute,
		Burst:             c.cfg.RateLimit.Burst,
	}

	var limiter ratelimit.RateLimiter
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis, limitCfg)
		c.log.Infow("using Redis rate limiter", "requests_per_minute", limitCfg.RequestsPerMinute, "burst", limitCfg.Burst)
	} else {
		limiter = ratelimit.NewMemoryRateLimiter(limitCfg)
		c.log.Infow("using in-memory rate limiter", "requests_per_minute", limitCfg.RequestsPerMinute, "burst", limitCfg.Burst)
	}

	c.rateLimiter = middleware.NewRateLimiter(limiter, c.log.Named("ratelimit"))
}
