package middleware

import (
	"github.com/gin-gonic/gin"

	"paysession/internal/infrastructure/ratelimit"
	"paysession/internal/shared/errors"
	"paysession/internal/shared/logger"
	"paysession/internal/shared/utils"
)

// RateLimiter enforces a per client IP request budget on a route.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		logger:  log,
	}
}

// Limit returns a Gin middleware that enforces the rate limit per client IP.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), "ip:"+clientIP)
		if err != nil {
			// Fail open so a limiter outage does not block checkout.
			rl.logger.Warnw("rate limiter unavailable, allowing request",
				"error", err,
				"client_ip", clientIP,
			)
			c.Next()
			return
		}

		if !allowed {
			rl.logger.Warnw("rate limit exceeded",
				"client_ip", clientIP,
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c),
			)
			c.Header("Retry-After", "60")
			utils.AbortWithError(c, errors.NewRateLimitedError())
			return
		}

		c.Next()
	}
}
