package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"paysession/internal/shared/id"
)

// MockGateway issues fake session ids without any network traffic.
// It is selected with gateway.mode=mock for local frontend work.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

var _ OrderGateway = (*MockGateway)(nil)

func (m *MockGateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	suffix, err := id.Generate(id.SuffixLength)
	if err != nil {
		return nil, err
	}
	sessionID := fmt.Sprintf("session_mock_%d_%s", time.Now().UnixMilli(), suffix)

	return &CreateOrderResponse{
		StatusCode:       http.StatusOK,
		PaymentSessionID: sessionID,
		Payload: map[string]any{
			"order_id":           req.Order.OrderID,
			"order_status":       "ACTIVE",
			"payment_session_id": sessionID,
		},
	}, nil
}
