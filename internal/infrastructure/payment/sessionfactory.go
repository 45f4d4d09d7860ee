package payment

import (
	"fmt"
	"strings"

	"paysession/internal/application/paymentsession/gateway"
	"paysession/internal/application/paymentsession/usecases"
	"paysession/internal/domain/paymentsession"
	"paysession/internal/infrastructure/config"
	"paysession/internal/infrastructure/payment/cashfree"
	"paysession/internal/shared/id"
	"paysession/internal/shared/logger"
)

// Gateway modes accepted in gateway.mode.
const (
	GatewayModeLive = "live"
	GatewayModeMock = "mock"
)

// NewOrderGateway builds the order gateway selected by cfg.Gateway.Mode.
func NewOrderGateway(cfg *config.Config, log logger.Interface) (gateway.OrderGateway, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Gateway.Mode)) {
	case "", GatewayModeLive:
		return cashfree.NewClient(cashfree.Config{
			Endpoint:   cfg.Endpoint,
			APIVersion: cfg.Gateway.APIVersion,
			Timeout:    cfg.Gateway.Timeout,
		}, log.Named("cashfree")), nil
	case GatewayModeMock:
		log.Warnw("using mock payment gateway, sessions are not payable")
		return gateway.NewMockGateway(), nil
	default:
		return nil, fmt.Errorf("unknown gateway mode %q", cfg.Gateway.Mode)
	}
}

// OrderTemplate converts the configured order values into a domain template.
func OrderTemplate(cfg *config.Config) paymentsession.OrderTemplate {
	return paymentsession.OrderTemplate{
		Amount:        paymentsession.NewMoney(cfg.Order.AmountMinor, cfg.Order.Currency),
		CustomerEmail: cfg.Order.CustomerEmail,
		CustomerPhone: cfg.Order.CustomerPhone,
		ReturnURL:     cfg.Order.ReturnURL,
		Note:          cfg.Order.Note,
	}
}

// NewCreateSessionUseCase wires the session use case from configuration.
func NewCreateSessionUseCase(cfg *config.Config, log logger.Interface) (*usecases.CreateSessionUseCase, error) {
	gw, err := NewOrderGateway(cfg, log)
	if err != nil {
		return nil, err
	}

	return usecases.NewCreateSessionUseCase(
		gw,
		id.NewTimeID,
		usecases.CreateSessionConfig{
			Credentials:   cfg.Credentials(),
			Endpoint:      cfg.Endpoint,
			Template:      OrderTemplate(cfg),
			Timeout:       cfg.Gateway.Timeout,
			ExposeDetails: cfg.Gateway.ExposeDetails,
		},
		log.Named("paymentsession"),
	), nil
}
