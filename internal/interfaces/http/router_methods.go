package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paysession/internal/interfaces/http/middleware"
	"paysession/internal/interfaces/http/routes"
	"paysession/internal/shared/utils"
)

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log.Named("http")))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.NoStorePaths(routes.CreatePaymentSessionPath))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins, r.log.Named("cors")))

	routes.SetupHealthRoutes(r.engine, &routes.HealthRouteConfig{
		HealthHandler: r.healthHandler,
	})

	routes.SetupPaymentSessionRoutes(r.engine, &routes.PaymentSessionRouteConfig{
		PaymentSessionHandler: r.paymentSessionHandler,
		RateLimiter:           r.rateLimiter,
	})

	r.engine.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "Not found")
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Shutdown releases resources held by the container.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
		c.redis = nil
	}
}
