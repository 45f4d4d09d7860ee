// Package errors provides application-level error types and utilities.
// It defines the error taxonomy surfaced at the HTTP boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeConfiguration    ErrorType = "configuration_error"
	ErrorTypeUpstreamCall     ErrorType = "upstream_call_error"
	ErrorTypeUpstreamContract ErrorType = "upstream_contract_error"
	ErrorTypeCrossOrigin      ErrorType = "cross_origin_rejected"
	ErrorTypeRateLimited      ErrorType = "rate_limited"
	ErrorTypeInternal         ErrorType = "internal_error"
)

// AppError represents an application error with additional context.
// Details is rendered to callers and must already be sanitized.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details any       `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithDetails returns a copy of e carrying caller-visible details.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// NewConfigurationError creates an error for missing or invalid server configuration.
// The message is deliberately generic.
func NewConfigurationError(cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: "Server configuration error",
		Code:    http.StatusInternalServerError,
		cause:   cause,
	}
}

// NewUpstreamCallError creates an error for a failed or non-2xx gateway call.
func NewUpstreamCallError(cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstreamCall,
		Message: "Failed to create payment session",
		Code:    http.StatusInternalServerError,
		cause:   cause,
	}
}

// NewUpstreamContractError creates an error for a 2xx gateway reply missing expected fields.
func NewUpstreamContractError(cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstreamContract,
		Message: "Invalid response from payment gateway",
		Code:    http.StatusInternalServerError,
		cause:   cause,
	}
}

// NewCrossOriginError creates an error for a request from an origin outside the allow-list.
func NewCrossOriginError() *AppError {
	return &AppError{
		Type:    ErrorTypeCrossOrigin,
		Message: "Origin not allowed",
		Code:    http.StatusForbidden,
	}
}

// NewRateLimitedError creates an error for a client that exceeded its request budget.
func NewRateLimitedError() *AppError {
	return &AppError{
		Type:    ErrorTypeRateLimited,
		Message: "Too many requests",
		Code:    http.StatusTooManyRequests,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: "Internal server error",
		Code:    http.StatusInternalServerError,
		cause:   cause,
	}
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}
