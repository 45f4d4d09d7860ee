package routes

import (
	"github.com/gin-gonic/gin"

	"paysession/internal/interfaces/http/handlers"
	"paysession/internal/interfaces/http/middleware"
)

// PaymentSessionRouteConfig holds dependencies for payment session routes.
// RateLimiter may be nil when rate limiting is disabled.
type PaymentSessionRouteConfig struct {
	PaymentSessionHandler *handlers.PaymentSessionHandler
	RateLimiter           *middleware.RateLimiter
}

// CreatePaymentSessionPath is the only route that hands out gateway tokens.
const CreatePaymentSessionPath = "/create-payment-session"

// SetupPaymentSessionRoutes configures payment session routes.
func SetupPaymentSessionRoutes(engine *gin.Engine, cfg *PaymentSessionRouteConfig) {
	var chain []gin.HandlerFunc
	if cfg.RateLimiter != nil {
		chain = append(chain, cfg.RateLimiter.Limit())
	}
	chain = append(chain, cfg.PaymentSessionHandler.CreateSession)

	engine.POST(CreatePaymentSessionPath, chain...)
}
