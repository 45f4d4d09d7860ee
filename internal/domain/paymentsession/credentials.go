package paymentsession

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrMissingCredentials is returned when either gateway credential is empty.
var ErrMissingCredentials = errors.New("gateway credentials are not configured")

// GatewayCredentials authenticates calls to the payment gateway.
// The secret is never rendered by String or LogValue.
type GatewayCredentials struct {
	ClientID     string
	ClientSecret string
}

// Validate reports ErrMissingCredentials if either field is blank.
func (c GatewayCredentials) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" || strings.TrimSpace(c.ClientSecret) == "" {
		return ErrMissingCredentials
	}
	return nil
}

// String implements fmt.Stringer
func (c GatewayCredentials) String() string {
	return "client_id=" + maskClientID(c.ClientID) + " client_secret=[REDACTED]"
}

// LogValue implements slog.LogValuer
func (c GatewayCredentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("client_id", maskClientID(c.ClientID)),
		slog.Bool("client_secret_set", strings.TrimSpace(c.ClientSecret) != ""),
	)
}

func maskClientID(id string) string {
	if id == "" {
		return ""
	}
	if len(id) <= 4 {
		return "****"
	}
	return id[:4] + "****"
}
