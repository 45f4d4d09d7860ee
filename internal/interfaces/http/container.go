package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"paysession/internal/infrastructure/config"
	"paysession/internal/interfaces/http/handlers"
	"paysession/internal/interfaces/http/middleware"
	"paysession/internal/shared/logger"
)

const redisPingTimeout = 3 * time.Second

// Container holds the infrastructure, use cases, handlers and middlewares of
// the HTTP server and releases them in Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Handlers
	paymentSessionHandler *handlers.PaymentSessionHandler
	healthHandler         *handlers.HealthHandler

	// Middlewares
	rateLimiter *middleware.RateLimiter
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(cfg *config.Config, log logger.Interface) (*Container, error) {
	engine := gin.New()
	// ClientIP keys the rate limiter, so forwarded headers count only from known proxies
	if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	c := &Container{
		engine: engine,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, rate limiting
	c.initInfrastructure()

	// Section 2: Payment sessions - gateway, use case, handlers
	if err := c.initPaymentSession(); err != nil {
		c.Shutdown()
		return nil, err
	}

	return c, nil
}

// initRedis creates and tests the Redis client connection. It returns nil when
// Redis is unreachable so callers can fall back to in-process state.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, falling back to in-memory rate limiting",
			"addr", cfg.Redis.GetAddr(),
			"error", err,
		)
		_ = redisClient.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient
}
