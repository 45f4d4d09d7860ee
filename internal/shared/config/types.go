package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address
	// is always the client address.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// GatewayConfig holds the payment gateway connection settings.
// ClientID and ClientSecret may be empty at load time; the session use case
// rejects every request until both are provided.
type GatewayConfig struct {
	Mode          string        `mapstructure:"mode"`
	Environment   string        `mapstructure:"environment"`
	BaseURL       string        `mapstructure:"base_url"`
	ClientID      string        `mapstructure:"client_id"`
	ClientSecret  string        `mapstructure:"client_secret"`
	APIVersion    string        `mapstructure:"api_version"`
	Timeout       time.Duration `mapstructure:"timeout"`
	ExposeDetails bool          `mapstructure:"expose_details"`
}

// OrderConfig holds the demonstration order values sent with every session.
type OrderConfig struct {
	AmountMinor   int64  `mapstructure:"amount_minor"`
	Currency      string `mapstructure:"currency"`
	CustomerEmail string `mapstructure:"customer_email"`
	CustomerPhone string `mapstructure:"customer_phone"`
	ReturnURL     string `mapstructure:"return_url"`
	Note          string `mapstructure:"note"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}
