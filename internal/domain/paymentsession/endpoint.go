package paymentsession

import (
	"fmt"
	"net/url"
	"strings"
)

// Environment selects which gateway deployment to talk to.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

const (
	sandboxBaseURL    = "https://sandbox.cashfree.com/pg"
	productionBaseURL = "https://api.cashfree.com/pg"
)

// ParseEnvironment maps a deployment flag to an Environment.
// Only the exact value "production" selects production.
func ParseEnvironment(raw string) Environment {
	if raw == string(EnvironmentProduction) {
		return EnvironmentProduction
	}
	return EnvironmentSandbox
}

// IsProduction reports whether e targets live money movement.
func (e Environment) IsProduction() bool {
	return e == EnvironmentProduction
}

// BaseURL returns the gateway base URL for the environment.
func (e Environment) BaseURL() string {
	if e.IsProduction() {
		return productionBaseURL
	}
	return sandboxBaseURL
}

func (e Environment) String() string {
	return string(e)
}

// GatewayEndpoint is the resolved gateway location. It is computed once per
// process and passed to whoever needs it.
type GatewayEndpoint struct {
	environment Environment
	baseURL     string
}

// NewGatewayEndpoint builds the endpoint for one of the fixed environments.
func NewGatewayEndpoint(environment Environment) GatewayEndpoint {
	return GatewayEndpoint{
		environment: environment,
		baseURL:     environment.BaseURL(),
	}
}

// NewGatewayEndpointWithBaseURL overrides the base URL, e.g. for a local stub gateway.
func NewGatewayEndpointWithBaseURL(environment Environment, baseURL string) (GatewayEndpoint, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return GatewayEndpoint{}, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return GatewayEndpoint{}, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return GatewayEndpoint{}, fmt.Errorf("missing host in %q", baseURL)
	}
	return GatewayEndpoint{
		environment: environment,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}, nil
}

func (e GatewayEndpoint) Environment() Environment {
	return e.environment
}

func (e GatewayEndpoint) BaseURL() string {
	return e.baseURL
}

// OrdersURL is the order-creation endpoint.
func (e GatewayEndpoint) OrdersURL() string {
	return e.baseURL + "/orders"
}

// IsZero reports whether the endpoint was never resolved.
func (e GatewayEndpoint) IsZero() bool {
	return e.baseURL == ""
}
