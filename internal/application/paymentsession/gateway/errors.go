package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrMalformedResponse is returned when a 2xx reply body is not a JSON object.
var ErrMalformedResponse = errors.New("gateway returned a malformed response body")

// UpstreamError is a non-2xx reply from the gateway.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gateway responded with status %d", e.StatusCode)
}

// detailKeys are the gateway error fields safe to show to callers.
var detailKeys = []string{"code", "type", "message"}

// detailPolicy strips all markup from gateway text before it reaches a browser.
var detailPolicy = bluemonday.StrictPolicy()

// SanitizedDetails extracts the documented error fields from the gateway
// body with any markup removed. It returns nil when the body is not a JSON
// object or carries none of them.
func (e *UpstreamError) SanitizedDetails() map[string]any {
	if len(e.Body) == 0 {
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(e.Body, &raw); err != nil {
		return nil
	}

	details := make(map[string]any, len(detailKeys))
	for _, key := range detailKeys {
		v, ok := raw[key].(string)
		if !ok {
			continue
		}
		if v = sanitizeDetail(v); v != "" {
			details[key] = v
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func sanitizeDetail(v string) string {
	return strings.TrimSpace(html.UnescapeString(detailPolicy.Sanitize(v)))
}
