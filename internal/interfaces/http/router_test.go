package http

import (
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paysession/internal/application/paymentsession/testutil"
	"paysession/internal/domain/paymentsession"
	"paysession/internal/infrastructure/config"
	sharedConfig "paysession/internal/shared/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testOrigin = "http://localhost:5500"
	noStore    = "no-store, no-cache, must-revalidate, private"
)

func newTestConfig(t *testing.T, gatewayURL string) *config.Config {
	t.Helper()

	endpoint, err := paymentsession.NewGatewayEndpointWithBaseURL(paymentsession.EnvironmentSandbox, gatewayURL+"/pg")
	require.NoError(t, err)

	return &config.Config{
		Server: sharedConfig.ServerConfig{
			AllowedOrigins: []string{testOrigin},
		},
		Gateway: sharedConfig.GatewayConfig{
			Mode:          "live",
			ClientID:      "TEST_ID",
			ClientSecret:  "TEST_SECRET",
			APIVersion:    "2022-09-01",
			Timeout:       time.Second,
			ExposeDetails: true,
		},
		Order: sharedConfig.OrderConfig{
			AmountMinor:   9900,
			Currency:      "INR",
			CustomerEmail: "customer@example.com",
			CustomerPhone: "9876543210",
			ReturnURL:     "https://your-website.com/return?order_id={order_id}",
		},
		RateLimit: sharedConfig.RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 60,
			Burst:             5,
		},
		Endpoint: endpoint,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (*Router, *testutil.MockLogger) {
	t.Helper()

	log := testutil.NewMockLogger()
	router, err := NewRouter(cfg, log)
	require.NoError(t, err)
	router.SetupRoutes()
	t.Cleanup(router.Shutdown)
	return router, log
}

func newFakeGateway(t *testing.T, handler nethttp.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func createSession(router *Router, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodPost, "/create-payment-session", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	req.RemoteAddr = "198.51.100.7:5555"
	router.GetEngine().ServeHTTP(w, req)
	return w
}

func TestRouter_CreatePaymentSession_EndToEnd(t *testing.T) {
	var gotBody map[string]any
	var gotSecret string
	gw := newFakeGateway(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotSecret = r.Header.Get("x-client-secret")
		assert.Equal(t, "/pg/orders", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = io.WriteString(w, `{"order_status":"ACTIVE","payment_session_id":"session_abc123"}`)
	})

	router, log := newTestRouter(t, newTestConfig(t, gw.URL))

	w := createSession(router, testOrigin)

	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"payment_session_id":"session_abc123"}`, w.Body.String())
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "no-store, no-cache, must-revalidate, private", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.Equal(t, "TEST_SECRET", gotSecret)
	assert.True(t, strings.HasPrefix(gotBody["order_id"].(string), "order_"))
	assert.Equal(t, 99.0, gotBody["order_amount"])

	assert.NotContains(t, w.Body.String(), "TEST_SECRET")
	assert.NotContains(t, log.Rendered(), "TEST_SECRET")
}

func TestRouter_CreatePaymentSession_GatewayRejects(t *testing.T) {
	gw := newFakeGateway(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"authentication Failed","code":"request_failed","type":"authentication_error"}`)
	})

	router, _ := newTestRouter(t, newTestConfig(t, gw.URL))

	w := createSession(router, "")

	assert.Equal(t, nethttp.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{
		"error": "Failed to create payment session",
		"details": {"message":"authentication Failed","code":"request_failed","type":"authentication_error"}
	}`, w.Body.String())
}

func TestRouter_CreatePaymentSession_MissingCredentials(t *testing.T) {
	var calls atomic.Int32
	gw := newFakeGateway(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
	})

	cfg := newTestConfig(t, gw.URL)
	cfg.Gateway.ClientID = ""
	router, _ := newTestRouter(t, cfg)

	w := createSession(router, testOrigin)

	assert.Equal(t, nethttp.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Server configuration error"}`, w.Body.String())
	assert.Equal(t, int32(0), calls.Load())
}

func TestRouter_CrossOriginRejected(t *testing.T) {
	var calls atomic.Int32
	gw := newFakeGateway(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
	})

	router, _ := newTestRouter(t, newTestConfig(t, gw.URL))

	w := createSession(router, "https://evil.example.com")

	assert.Equal(t, nethttp.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Origin not allowed"}`, w.Body.String())
	assert.Equal(t, noStore, w.Header().Get("Cache-Control"))
	assert.Equal(t, int32(0), calls.Load())
}

func TestRouter_Preflight(t *testing.T) {
	router, _ := newTestRouter(t, newTestConfig(t, "http://127.0.0.1:1"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodOptions, "/create-payment-session", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", "POST")
	router.GetEngine().ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusNoContent, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, noStore, w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
}

func TestRouter_RateLimited(t *testing.T) {
	gw := newFakeGateway(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = io.WriteString(w, `{"payment_session_id":"session_abc123"}`)
	})

	cfg := newTestConfig(t, gw.URL)
	cfg.RateLimit.RequestsPerMinute = 1
	cfg.RateLimit.Burst = 2
	router, _ := newTestRouter(t, cfg)

	assert.Equal(t, nethttp.StatusOK, createSession(router, "").Code)
	assert.Equal(t, nethttp.StatusOK, createSession(router, "").Code)

	w := createSession(router, "")
	assert.Equal(t, nethttp.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
	assert.Equal(t, noStore, w.Header().Get("Cache-Control"))
}

func TestRouter_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	var calls atomic.Int32
	gw := newFakeGateway(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"payment_session_id":"session_abc123"}`)
	})

	cfg := newTestConfig(t, gw.URL)
	cfg.RateLimit.RequestsPerMinute = 1
	cfg.RateLimit.Burst = 1
	router, _ := newTestRouter(t, cfg)

	succeeded := 0
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodPost, "/create-payment-session", nil)
		req.RemoteAddr = "198.51.100.7:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i+1))
		router.GetEngine().ServeHTTP(w, req)
		if w.Code == nethttp.StatusOK {
			succeeded++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRouter_RateLimitTrustedProxy(t *testing.T) {
	gw := newFakeGateway(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = io.WriteString(w, `{"payment_session_id":"session_abc123"}`)
	})

	cfg := newTestConfig(t, gw.URL)
	cfg.Server.TrustedProxies = []string{"198.51.100.7"}
	cfg.RateLimit.RequestsPerMinute = 1
	cfg.RateLimit.Burst = 1
	router, _ := newTestRouter(t, cfg)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodPost, "/create-payment-session", nil)
		req.RemoteAddr = "198.51.100.7:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		router.GetEngine().ServeHTTP(w, req)
		assert.Equal(t, nethttp.StatusOK, w.Code, "client %d", i+1)
	}
}

func TestNewRouter_InvalidTrustedProxy(t *testing.T) {
	cfg := newTestConfig(t, "http://127.0.0.1:1")
	cfg.Server.TrustedProxies = []string{"not-an-ip"}

	_, err := NewRouter(cfg, testutil.NewMockLogger())
	assert.Error(t, err)
}

func TestRouter_RateLimitDisabled(t *testing.T) {
	gw := newFakeGateway(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = io.WriteString(w, `{"payment_session_id":"session_abc123"}`)
	})

	cfg := newTestConfig(t, gw.URL)
	cfg.RateLimit = sharedConfig.RateLimitConfig{Enabled: false, RequestsPerMinute: 1, Burst: 1}
	router, _ := newTestRouter(t, cfg)

	for i := 0; i < 5; i++ {
		assert.Equal(t, nethttp.StatusOK, createSession(router, "").Code)
	}
}

func TestRouter_HealthRoutes(t *testing.T) {
	router, _ := newTestRouter(t, newTestConfig(t, "http://127.0.0.1:1"))

	w := httptest.NewRecorder()
	router.GetEngine().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/", nil))
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "Payment session backend is running", w.Body.String())

	w = httptest.NewRecorder()
	router.GetEngine().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"environment":"sandbox"`)
}

func TestRouter_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, newTestConfig(t, "http://127.0.0.1:1"))

	w := httptest.NewRecorder()
	router.GetEngine().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/create-payment-session", nil))

	assert.Equal(t, nethttp.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestNewRouter_UnknownGatewayMode(t *testing.T) {
	cfg := newTestConfig(t, "http://127.0.0.1:1")
	cfg.Gateway.Mode = "paypal"

	_, err := NewRouter(cfg, testutil.NewMockLogger())
	assert.Error(t, err)
}
