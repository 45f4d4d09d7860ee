package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paysession/internal/shared/version"
)

const rootMessage = "Payment session backend is running"

type HealthHandler struct {
	environment string
}

func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment}
}

// Root handles GET / with a plain-text liveness message.
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, rootMessage)
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     "paysession",
		"environment": h.environment,
		"version":     version.String(),
	})
}
