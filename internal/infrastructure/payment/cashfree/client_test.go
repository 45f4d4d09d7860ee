package cashfree

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paysession/internal/application/paymentsession/gateway"
	"paysession/internal/application/paymentsession/testutil"
	"paysession/internal/domain/paymentsession"
)

func testOrder(t *testing.T) *paymentsession.OrderRequest {
	t.Helper()
	order, err := paymentsession.NewOrderRequest(testutil.ReferenceTemplate(), func(prefix string) (string, error) {
		return prefix + "_1700000000000_abcdefgh", nil
	})
	require.NoError(t, err)
	return order
}

func testRequest(t *testing.T) gateway.CreateOrderRequest {
	return gateway.CreateOrderRequest{
		Credentials: paymentsession.GatewayCredentials{ClientID: "TEST_ID", ClientSecret: "TEST_SECRET"},
		Order:       testOrder(t),
		RequestID:   "req-123",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	endpoint, err := paymentsession.NewGatewayEndpointWithBaseURL(paymentsession.EnvironmentSandbox, srv.URL+"/pg")
	require.NoError(t, err)

	client := NewClient(Config{Endpoint: endpoint, Timeout: 2 * time.Second}, testutil.NewMockLogger())
	return client, srv
}

func TestClient_CreateOrder_Success(t *testing.T) {
	var received struct {
		method  string
		path    string
		headers http.Header
		body    map[string]any
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		received.method = r.Method
		received.path = r.URL.Path
		received.headers = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received.body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"cf_order_id":"2149460581","order_id":"order_1700000000000_abcdefgh","order_status":"ACTIVE","payment_session_id":"session_abc123"}`)
	})

	resp, err := client.CreateOrder(context.Background(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "session_abc123", resp.PaymentSessionID)
	assert.Equal(t, "ACTIVE", resp.Payload["order_status"])

	assert.Equal(t, http.MethodPost, received.method)
	assert.Equal(t, "/pg/orders", received.path)
	assert.Equal(t, "application/json", received.headers.Get("Content-Type"))
	assert.Equal(t, "TEST_ID", received.headers.Get("x-client-id"))
	assert.Equal(t, "TEST_SECRET", received.headers.Get("x-client-secret"))
	assert.Equal(t, DefaultAPIVersion, received.headers.Get("x-api-version"))
	assert.Equal(t, "req-123", received.headers.Get("x-request-id"))

	assert.Equal(t, "order_1700000000000_abcdefgh", received.body["order_id"])
	assert.Equal(t, 99.0, received.body["order_amount"])
	assert.Equal(t, "INR", received.body["order_currency"])
	customer, ok := received.body["customer_details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "9876543210", customer["customer_phone"])
}

func TestClient_CreateOrder_CustomAPIVersion(t *testing.T) {
	var version atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		version.Store(r.Header.Get("x-api-version"))
		_, _ = io.WriteString(w, `{"payment_session_id":"s"}`)
	}))
	defer srv.Close()

	endpoint, err := paymentsession.NewGatewayEndpointWithBaseURL(paymentsession.EnvironmentSandbox, srv.URL)
	require.NoError(t, err)
	client := NewClient(Config{Endpoint: endpoint, APIVersion: "2023-08-01"}, testutil.NewMockLogger())

	_, err = client.CreateOrder(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "2023-08-01", version.Load())
}

func TestClient_CreateOrder_MissingSessionID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"order_id":"order_1","order_status":"ACTIVE"}`)
	})

	resp, err := client.CreateOrder(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, resp.PaymentSessionID)
}

func TestClient_CreateOrder_NonStringSessionID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"payment_session_id":12345}`)
	})

	resp, err := client.CreateOrder(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Empty(t, resp.PaymentSessionID)
}

func TestClient_CreateOrder_MalformedBody(t *testing.T) {
	for _, body := range []string{"not json", "null", `["array"]`, ""} {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})

		_, err := client.CreateOrder(context.Background(), testRequest(t))
		assert.ErrorIs(t, err, gateway.ErrMalformedResponse, "body %q", body)
	}
}

func TestClient_CreateOrder_Non2xx(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad request", http.StatusBadRequest, `{"message":"order_id is invalid","code":"order_id_invalid","type":"invalid_request_error"}`},
		{"unauthorized", http.StatusUnauthorized, `{"message":"authentication Failed","code":"request_failed","type":"authentication_error"}`},
		{"conflict", http.StatusConflict, `{"message":"order with same id is already present","code":"order_already_exists","type":"invalid_request_error"}`},
		{"server error", http.StatusInternalServerError, ``},
		{"redirect", http.StatusNotModified, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			resp, err := client.CreateOrder(context.Background(), testRequest(t))
			assert.Nil(t, resp)

			var upstreamErr *gateway.UpstreamError
			require.True(t, errors.As(err, &upstreamErr), "expected UpstreamError, got %v", err)
			assert.Equal(t, tt.status, upstreamErr.StatusCode)
			assert.Equal(t, tt.body, string(upstreamErr.Body))
		})
	}
}

func TestClient_CreateOrder_Timeout(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.CreateOrder(ctx, testRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var upstreamErr *gateway.UpstreamError
	assert.False(t, errors.As(err, &upstreamErr))
}

type failingDoer struct {
	calls int
	err   error
}

func (d *failingDoer) Do(*http.Request) (*http.Response, error) {
	d.calls++
	return nil, d.err
}

func TestClient_CreateOrder_TransportError(t *testing.T) {
	doer := &failingDoer{err: errors.New("connection refused")}
	client := NewClientWithDoer(Config{Endpoint: paymentsession.NewGatewayEndpoint(paymentsession.EnvironmentSandbox)}, doer, testutil.NewMockLogger())

	_, err := client.CreateOrder(context.Background(), testRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, doer.err)
	assert.Equal(t, 1, doer.calls)
}

func TestClient_CreateOrder_NilOrder(t *testing.T) {
	doer := &failingDoer{}
	client := NewClientWithDoer(Config{Endpoint: paymentsession.NewGatewayEndpoint(paymentsession.EnvironmentSandbox)}, doer, testutil.NewMockLogger())

	_, err := client.CreateOrder(context.Background(), gateway.CreateOrderRequest{})
	assert.Error(t, err)
	assert.Equal(t, 0, doer.calls)
}

func TestClient_ProductionEndpoint(t *testing.T) {
	var gotURL string
	doer := doerFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return nil, errors.New("stop")
	})
	client := NewClientWithDoer(Config{Endpoint: paymentsession.NewGatewayEndpoint(paymentsession.EnvironmentProduction)}, doer, testutil.NewMockLogger())

	_, _ = client.CreateOrder(context.Background(), testRequest(t))
	assert.Equal(t, "https://api.cashfree.com/pg/orders", gotURL)
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }
