package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the request correlation id in both directions.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the Gin context key for the request id.
	ContextKeyRequestID = "request_id"
)

// validRequestID bounds client supplied ids before they reach logs and the gateway.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestID accepts a well-formed X-Request-ID from the client or generates
// a UUID, stores it in the context and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !validRequestID.MatchString(requestID) {
			requestID = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// GetRequestID returns the request id from the Gin context, or "" if unset.
func GetRequestID(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyRequestID); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
