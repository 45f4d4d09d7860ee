package paymentsession

import "errors"

// ErrMissingSessionID is returned when the gateway accepted the order but did
// not include a payment session id in its reply.
var ErrMissingSessionID = errors.New("gateway response has no payment_session_id")

// Session is the successful outcome of an order creation.
type Session struct {
	OrderID          string
	PaymentSessionID string
	// Payload is the gateway response body as received.
	Payload map[string]any
}
