// Package session provides CLI commands that exercise the payment gateway
// without starting the HTTP server.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"paysession/internal/application/paymentsession/dto"
	"paysession/internal/application/paymentsession/usecases"
	"paysession/internal/infrastructure/config"
	"paysession/internal/infrastructure/payment"
	apperrors "paysession/internal/shared/errors"
	"paysession/internal/shared/logger"
)

var (
	env  string
	mock bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Payment session tools",
		Long:  `Create payment sessions directly against the configured gateway.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newCreateCommand())

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create one payment session",
		Long:  `Create a single order with the configured demonstration values and print the payment session id as JSON.`,
		RunE:  runCreate,
	}

	cmd.Flags().BoolVar(&mock, "mock", false, "Use the mock gateway instead of the configured one")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if mock {
		cfg.Gateway.Mode = payment.GatewayModeMock
	}

	// stdout carries the result
	cfg.Logger.OutputPath = "stderr"
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	uc, err := payment.NewCreateSessionUseCase(cfg, logger.NewLogger())
	if err != nil {
		return err
	}

	return createSession(cmd.Context(), uc, cmd.OutOrStdout())
}

type createSessionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateSessionCommand) (*dto.SessionResult, error)
}

func createSession(ctx context.Context, uc createSessionUseCase, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := uc.Execute(ctx, usecases.CreateSessionCommand{RequestID: uuid.NewString()})
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
			return fmt.Errorf("failed to create payment session (run \"paysession config check\"): %w", err)
		}
		return fmt.Errorf("failed to create payment session: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
