package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"paysession/internal/domain/paymentsession"
	sharedConfig "paysession/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Gateway   sharedConfig.GatewayConfig   `mapstructure:"gateway"`
	Order     sharedConfig.OrderConfig     `mapstructure:"order"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"rate_limit"`

	// Endpoint is resolved once during Load and never re-read.
	Endpoint paymentsession.GatewayEndpoint `mapstructure:"-"`
}

// Credentials returns the gateway credentials as a domain value.
func (c *Config) Credentials() paymentsession.GatewayCredentials {
	return paymentsession.GatewayCredentials{
		ClientID:     c.Gateway.ClientID,
		ClientSecret: c.Gateway.ClientSecret,
	}
}

// Default browser origins when none are configured, per gateway environment.
const (
	DevelopmentOrigin = "http://localhost:5500"
	ProductionOrigin  = "https://your-frontend-url.com"
)

// legacyEnvBindings maps config keys to the plain environment names the
// frontend deployment already uses.
var legacyEnvBindings = map[string]string{
	"gateway.client_id":      "CASHFREE_CLIENT_ID",
	"gateway.client_secret":  "CASHFREE_CLIENT_SECRET",
	"gateway.environment":    "NODE_ENV",
	"server.port":            "PORT",
	"server.allowed_origins": "ALLOWED_ORIGINS",
}

// Load loads configuration from .env, an optional config file and environment variables.
func Load(env string) (*Config, error) {
	// .env is optional in every environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("PAYSESSION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range legacyEnvBindings {
		if err := v.BindEnv(key, "PAYSESSION_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), name); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", name, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	endpoint, err := ResolveEndpoint(&config.Gateway)
	if err != nil {
		return nil, err
	}
	config.Endpoint = endpoint

	// list settings arrive from the environment as comma separated strings
	config.Server.AllowedOrigins = splitOrigins(config.Server.AllowedOrigins)
	if len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = []string{DefaultOrigin(endpoint.Environment())}
	}
	config.Server.TrustedProxies = splitOrigins(config.Server.TrustedProxies)

	return &config, nil
}

// DefaultOrigin is the frontend allowed when no origins are configured.
func DefaultOrigin(env paymentsession.Environment) string {
	if env.IsProduction() {
		return ProductionOrigin
	}
	return DevelopmentOrigin
}

// ResolveEndpoint selects the gateway endpoint from the environment flag.
// Anything other than "production" resolves to the sandbox.
func ResolveEndpoint(cfg *sharedConfig.GatewayConfig) (paymentsession.GatewayEndpoint, error) {
	environment := paymentsession.ParseEnvironment(cfg.Environment)
	if cfg.BaseURL == "" {
		return paymentsession.NewGatewayEndpoint(environment), nil
	}
	endpoint, err := paymentsession.NewGatewayEndpointWithBaseURL(environment, cfg.BaseURL)
	if err != nil {
		return paymentsession.GatewayEndpoint{}, fmt.Errorf("invalid gateway base url: %w", err)
	}
	return endpoint, nil
}

// MissingSettings lists required settings that are not set. Values are never included.
func (c *Config) MissingSettings() []string {
	var missing []string
	if strings.TrimSpace(c.Gateway.ClientID) == "" {
		missing = append(missing, "CASHFREE_CLIENT_ID")
	}
	if strings.TrimSpace(c.Gateway.ClientSecret) == "" {
		missing = append(missing, "CASHFREE_CLIENT_SECRET")
	}
	return missing
}

func splitOrigins(raw []string) []string {
	var origins []string
	for _, entry := range raw {
		for _, origin := range strings.Split(entry, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	return origins
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.trusted_proxies", []string{})

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Gateway defaults
	v.SetDefault("gateway.mode", "live")
	v.SetDefault("gateway.environment", string(paymentsession.EnvironmentSandbox))
	v.SetDefault("gateway.base_url", "")
	v.SetDefault("gateway.client_id", "")
	v.SetDefault("gateway.client_secret", "")
	v.SetDefault("gateway.api_version", "2022-09-01")
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("gateway.expose_details", true)

	// Demonstration order defaults
	v.SetDefault("order.amount_minor", 9900)
	v.SetDefault("order.currency", "INR")
	v.SetDefault("order.customer_email", "customer@example.com")
	v.SetDefault("order.customer_phone", "9876543210")
	v.SetDefault("order.return_url", "https://your-website.com/return?order_id={order_id}")
	v.SetDefault("order.note", "")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 30)
	v.SetDefault("rate_limit.burst", 10)
}
