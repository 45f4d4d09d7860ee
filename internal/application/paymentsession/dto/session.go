package dto

import "paysession/internal/domain/paymentsession"

// SessionResult is the response body of a successful session creation.
type SessionResult struct {
	PaymentSessionID string `json:"payment_session_id"`
}

func ToSessionResult(session *paymentsession.Session) *SessionResult {
	if session == nil {
		return nil
	}
	return &SessionResult{
		PaymentSessionID: session.PaymentSessionID,
	}
}
