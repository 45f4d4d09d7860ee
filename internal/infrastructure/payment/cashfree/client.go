package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"paysession/internal/application/paymentsession/gateway"
	"paysession/internal/domain/paymentsession"
	"paysession/internal/shared/logger"
)

const (
	// DefaultAPIVersion is the gateway API version this client speaks.
	DefaultAPIVersion = "2022-09-01"
	// HTTP request timeout
	defaultRequestTimeout = 10 * time.Second
	// Maximum response body size read from the gateway (1MB)
	maxResponseSize = 1 << 20

	headerClientID     = "x-client-id"
	headerClientSecret = "x-client-secret"
	headerAPIVersion   = "x-api-version"
	headerRequestID    = "x-request-id"

	sessionIDField = "payment_session_id"
)

// HTTPDoer is the subset of *http.Client used by Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures a Client. Endpoint must be resolved by the caller.
type Config struct {
	Endpoint   paymentsession.GatewayEndpoint
	APIVersion string
	Timeout    time.Duration
}

// Client creates orders through the Cashfree PG REST API.
type Client struct {
	doer       HTTPDoer
	endpoint   paymentsession.GatewayEndpoint
	apiVersion string
	logger     logger.Interface
}

// NewClient creates a client backed by an *http.Client with cfg.Timeout.
func NewClient(cfg Config, logger logger.Interface) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return NewClientWithDoer(cfg, &http.Client{Timeout: timeout}, logger)
}

// NewClientWithDoer creates a client using doer for transport.
func NewClientWithDoer(cfg Config, doer HTTPDoer, logger logger.Interface) *Client {
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &Client{
		doer:       doer,
		endpoint:   cfg.Endpoint,
		apiVersion: apiVersion,
		logger:     logger,
	}
}

// Ensure Client implements OrderGateway
var _ gateway.OrderGateway = (*Client)(nil)

// CreateOrder posts the order to {endpoint}/orders.
// Non-2xx replies are returned as *gateway.UpstreamError. A 2xx reply without
// a session id is returned as a response with an empty PaymentSessionID.
func (c *Client) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*gateway.CreateOrderResponse, error) {
	if req.Order == nil {
		return nil, fmt.Errorf("order is required")
	}

	body, err := json.Marshal(req.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.OrdersURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(headerClientID, req.Credentials.ClientID)
	httpReq.Header.Set(headerClientSecret, req.Credentials.ClientSecret)
	httpReq.Header.Set(headerAPIVersion, c.apiVersion)
	if req.RequestID != "" {
		httpReq.Header.Set(headerRequestID, req.RequestID)
	}

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &gateway.UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}

	var payload map[string]any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrMalformedResponse, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: empty body", gateway.ErrMalformedResponse)
	}

	sessionID, _ := payload[sessionIDField].(string)

	c.logger.Debugw("gateway order created",
		"order_id", req.Order.OrderID,
		"status", resp.StatusCode,
		"cf_order_id", payload["cf_order_id"],
	)

	return &gateway.CreateOrderResponse{
		StatusCode:       resp.StatusCode,
		PaymentSessionID: sessionID,
		Payload:          payload,
	}, nil
}
