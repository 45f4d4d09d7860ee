package gateway

import (
	"context"

	"paysession/internal/domain/paymentsession"
)

// OrderGateway creates orders with the payment gateway.
type OrderGateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)
}

type CreateOrderRequest struct {
	Credentials paymentsession.GatewayCredentials
	Order       *paymentsession.OrderRequest
	// RequestID is forwarded to the gateway for support correlation. Optional.
	RequestID string
}

type CreateOrderResponse struct {
	StatusCode       int
	PaymentSessionID string
	// Payload is the decoded response body.
	Payload map[string]any
}
