// Package testutil provides test doubles for the payment session use cases.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"paysession/internal/application/paymentsession/gateway"
	"paysession/internal/domain/paymentsession"
	"paysession/internal/shared/logger"
)

// =============================================================================
// MockOrderGateway
// =============================================================================

// MockOrderGateway is a scriptable OrderGateway that records every call.
type MockOrderGateway struct {
	mu       sync.Mutex
	requests []gateway.CreateOrderRequest

	// Response is returned when Err is nil. When nil, a response carrying
	// SessionID is built.
	Response  *gateway.CreateOrderResponse
	SessionID string
	Err       error
	// Block, when set, makes CreateOrder wait for ctx cancellation or a value.
	Block chan struct{}
	// BlockCalls limits Block to the first n calls. Zero blocks every call.
	BlockCalls int
	// Started, when set, receives one value as each call begins.
	Started chan struct{}
}

// NewMockOrderGateway creates a gateway that answers with the given session id.
func NewMockOrderGateway(sessionID string) *MockOrderGateway {
	return &MockOrderGateway{SessionID: sessionID}
}

var _ gateway.OrderGateway = (*MockOrderGateway)(nil)

// CreateOrder implements gateway.OrderGateway.
func (m *MockOrderGateway) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*gateway.CreateOrderResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	block := m.Block
	if m.BlockCalls > 0 && len(m.requests) > m.BlockCalls {
		block = nil
	}
	started := m.Started
	m.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}

	if block != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gateway call aborted: %w", ctx.Err())
		case <-block:
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response != nil {
		return m.Response, nil
	}
	return &gateway.CreateOrderResponse{
		StatusCode:       200,
		PaymentSessionID: m.SessionID,
		Payload: map[string]any{
			"order_id":           req.Order.OrderID,
			"payment_session_id": m.SessionID,
		},
	}, nil
}

// CallCount returns how many times CreateOrder was invoked.
func (m *MockOrderGateway) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the recorded requests.
func (m *MockOrderGateway) Requests() []gateway.CreateOrderRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]gateway.CreateOrderRequest(nil), m.requests...)
}

// OrderIDs returns the order ids of all recorded requests.
func (m *MockOrderGateway) OrderIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.requests))
	for _, req := range m.requests {
		ids = append(ids, req.Order.OrderID)
	}
	return ids
}

// ReferenceTemplate returns the demonstration order values.
func ReferenceTemplate() paymentsession.OrderTemplate {
	return paymentsession.OrderTemplate{
		Amount:        paymentsession.NewMoney(9900, "INR"),
		CustomerEmail: "customer@example.com",
		CustomerPhone: "9876543210",
		ReturnURL:     "https://your-website.com/return?order_id={order_id}",
	}
}

// =============================================================================
// MockLogger
// =============================================================================

// MockLogger is a mock implementation of logger.Interface that records entries.
// Fields added with With are merged into every entry.
type MockLogger struct {
	mu      *sync.RWMutex
	entries *[]LogEntry
	fields  []any
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]any
}

// NewMockLogger creates a new mock logger.
func NewMockLogger() *MockLogger {
	entries := make([]LogEntry, 0)
	return &MockLogger{
		mu:      &sync.RWMutex{},
		entries: &entries,
	}
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg, args...) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg, args...) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg, args...) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg, args...) }
func (m *MockLogger) Fatal(msg string, args ...any) { m.log("FATAL", msg, args...) }

// With returns a logger sharing the same entry log with additional fields.
func (m *MockLogger) With(args ...any) logger.Interface {
	return &MockLogger{
		mu:      m.mu,
		entries: m.entries,
		fields:  append(append([]any(nil), m.fields...), args...),
	}
}

// Named returns a named logger.
func (m *MockLogger) Named(name string) logger.Interface {
	return m.With("logger", name)
}

func (m *MockLogger) Debugw(msg string, keysAndValues ...any) { m.log("DEBUG", msg, keysAndValues...) }
func (m *MockLogger) Infow(msg string, keysAndValues ...any)  { m.log("INFO", msg, keysAndValues...) }
func (m *MockLogger) Warnw(msg string, keysAndValues ...any)  { m.log("WARN", msg, keysAndValues...) }
func (m *MockLogger) Errorw(msg string, keysAndValues ...any) { m.log("ERROR", msg, keysAndValues...) }
func (m *MockLogger) Fatalw(msg string, keysAndValues ...any) { m.log("FATAL", msg, keysAndValues...) }

func (m *MockLogger) log(level, msg string, fields ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := LogEntry{
		Level:   level,
		Message: msg,
		Fields:  make(map[string]any),
	}

	all := append(append([]any(nil), m.fields...), fields...)
	for i := 0; i < len(all)-1; i += 2 {
		if key, ok := all[i].(string); ok {
			entry.Fields[key] = all[i+1]
		}
	}

	*m.entries = append(*m.entries, entry)
}

// GetEntries returns all logged entries.
func (m *MockLogger) GetEntries() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]LogEntry(nil), *m.entries...)
}

// Rendered returns every entry formatted with %v, for substring assertions.
func (m *MockLogger) Rendered() string {
	var out string
	for _, e := range m.GetEntries() {
		out += fmt.Sprintf("%s %s %v\n", e.Level, e.Message, e.Fields)
	}
	return out
}
