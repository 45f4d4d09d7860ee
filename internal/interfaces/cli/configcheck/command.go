// Package configcheck validates the loaded configuration without starting the server.
package configcheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"paysession/internal/infrastructure/config"
)

var (
	env    string
	format string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	check := &cobra.Command{
		Use:   "check",
		Short: "Validate configuration",
		Long:  `Load configuration, print the resolved non-secret settings and fail when required settings are missing.`,
		RunE:  runCheck,
	}
	check.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, yaml)")

	cmd.AddCommand(check)

	return cmd
}

// summary is the printable view of a configuration. It never holds secret values.
type summary struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	GatewayMode    string   `yaml:"gateway_mode"`
	Environment    string   `yaml:"environment"`
	OrdersURL      string   `yaml:"orders_url"`
	Timeout        string   `yaml:"timeout"`
	Credentials    string   `yaml:"credentials"`
	RateLimit      string   `yaml:"rate_limit"`
	Missing        []string `yaml:"missing,omitempty"`
}

func newSummary(cfg *config.Config) summary {
	return summary{
		Address:        cfg.Server.GetAddr(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		GatewayMode:    cfg.Gateway.Mode,
		Environment:    cfg.Endpoint.Environment().String(),
		OrdersURL:      cfg.Endpoint.OrdersURL(),
		Timeout:        cfg.Gateway.Timeout.String(),
		Credentials:    cfg.Credentials().String(),
		RateLimit:      rateLimitSummary(cfg),
		Missing:        cfg.MissingSettings(),
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return check(cfg, format, cmd.OutOrStdout())
}

// check prints a summary of cfg and fails when required settings are missing.
func check(cfg *config.Config, format string, out io.Writer) error {
	s := newSummary(cfg)

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
	case "text", "":
		writeText(s, out)
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if len(s.Missing) > 0 {
		return fmt.Errorf("configuration incomplete: %d required setting(s) missing", len(s.Missing))
	}
	return nil
}

func writeText(s summary, out io.Writer) {
	fmt.Fprintf(out, "listen address:     %s\n", s.Address)
	fmt.Fprintf(out, "allowed origins:    %s\n", strings.Join(s.AllowedOrigins, ", "))
	fmt.Fprintf(out, "gateway mode:       %s\n", s.GatewayMode)
	fmt.Fprintf(out, "gateway env:        %s\n", s.Environment)
	fmt.Fprintf(out, "orders url:         %s\n", s.OrdersURL)
	fmt.Fprintf(out, "gateway timeout:    %s\n", s.Timeout)
	fmt.Fprintf(out, "credentials:        %s\n", s.Credentials)
	fmt.Fprintf(out, "rate limit:         %s\n", s.RateLimit)

	if len(s.Missing) > 0 {
		fmt.Fprintf(out, "missing settings:   %s\n", strings.Join(s.Missing, ", "))
		return
	}
	fmt.Fprintln(out, "configuration OK")
}

func rateLimitSummary(cfg *config.Config) string {
	if !cfg.RateLimit.Enabled {
		return "disabled"
	}
	backend := "memory"
	if cfg.Redis.Enabled {
		backend = "redis " + cfg.Redis.GetAddr()
	}
	return fmt.Sprintf("%d/min burst %d (%s)", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, backend)
}
