package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name    string
		err     *AppError
		typ     ErrorType
		code    int
		message string
	}{
		{"configuration", NewConfigurationError(cause), ErrorTypeConfiguration, http.StatusInternalServerError, "Server configuration error"},
		{"upstream call", NewUpstreamCallError(cause), ErrorTypeUpstreamCall, http.StatusInternalServerError, "Failed to create payment session"},
		{"upstream contract", NewUpstreamContractError(cause), ErrorTypeUpstreamContract, http.StatusInternalServerError, "Invalid response from payment gateway"},
		{"cross origin", NewCrossOriginError(), ErrorTypeCrossOrigin, http.StatusForbidden, "Origin not allowed"},
		{"rate limited", NewRateLimitedError(), ErrorTypeRateLimited, http.StatusTooManyRequests, "Too many requests"},
		{"internal", NewInternalError(cause), ErrorTypeInternal, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.err.Type)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, tt.err.Message)
			assert.Nil(t, tt.err.Details)
		})
	}
}

func TestAppError_UnwrapAndAs(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	wrapped := fmt.Errorf("execute: %w", NewUpstreamCallError(cause))

	require.NotNil(t, GetAppError(wrapped))
	assert.True(t, IsType(wrapped, ErrorTypeUpstreamCall))
	assert.False(t, IsType(wrapped, ErrorTypeConfiguration))
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "dial tcp: timeout")
}

func TestAppError_WithDetailsCopies(t *testing.T) {
	base := NewUpstreamCallError(nil)
	withDetails := base.WithDetails(map[string]any{"code": "request_failed"})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]any{"code": "request_failed"}, withDetails.Details)
}

func TestGetAppError_PlainError(t *testing.T) {
	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.Nil(t, GetAppError(nil))
}
