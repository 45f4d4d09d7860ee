package routes

import (
	"github.com/gin-gonic/gin"

	"paysession/internal/interfaces/http/handlers"
)

// HealthRouteConfig holds dependencies for health routes.
type HealthRouteConfig struct {
	HealthHandler *handlers.HealthHandler
}

// SetupHealthRoutes configures liveness routes.
func SetupHealthRoutes(engine *gin.Engine, cfg *HealthRouteConfig) {
	engine.GET("/", cfg.HealthHandler.Root)
	engine.GET("/health", cfg.HealthHandler.HealthCheck)
}
