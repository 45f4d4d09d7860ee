package usecases

import (
	"context"
	"errors"
	"time"

	"paysession/internal/application/paymentsession/dto"
	"paysession/internal/application/paymentsession/gateway"
	"paysession/internal/domain/paymentsession"
	apperrors "paysession/internal/shared/errors"
	"paysession/internal/shared/logger"
	"paysession/internal/shared/utils"
	"paysession/internal/shared/utils/logutil"
)

const (
	defaultGatewayTimeout = 10 * time.Second
	maxLoggedBodyLen      = 512
	loggedTokenPrefix     = 12
)

type CreateSessionCommand struct {
	// RequestID correlates our logs with the gateway's. Optional.
	RequestID string
}

// CreateSessionConfig is fixed at startup.
type CreateSessionConfig struct {
	Credentials   paymentsession.GatewayCredentials
	Endpoint      paymentsession.GatewayEndpoint
	Template      paymentsession.OrderTemplate
	Timeout       time.Duration
	ExposeDetails bool
}

type CreateSessionUseCase struct {
	gateway gateway.OrderGateway
	newID   paymentsession.IDGenerator
	config  CreateSessionConfig
	logger  logger.Interface
}

func NewCreateSessionUseCase(
	gw gateway.OrderGateway,
	newID paymentsession.IDGenerator,
	config CreateSessionConfig,
	logger logger.Interface,
) *CreateSessionUseCase {
	if config.Timeout <= 0 {
		config.Timeout = defaultGatewayTimeout
	}
	return &CreateSessionUseCase{
		gateway: gw,
		newID:   newID,
		config:  config,
		logger:  logger,
	}
}

// Execute creates a gateway order and returns its payment session id.
// All failures are returned as *errors.AppError with caller-safe messages.
func (uc *CreateSessionUseCase) Execute(ctx context.Context, cmd CreateSessionCommand) (*dto.SessionResult, error) {
	if err := uc.config.Credentials.Validate(); err != nil {
		uc.logger.Errorw("payment gateway credentials are not configured",
			"credentials", uc.config.Credentials,
			"request_id", cmd.RequestID,
		)
		return nil, apperrors.NewConfigurationError(err)
	}

	order, err := paymentsession.NewOrderRequest(uc.config.Template, uc.newID)
	if err != nil {
		uc.logger.Errorw("failed to build order request", "error", err, "request_id", cmd.RequestID)
		return nil, apperrors.NewConfigurationError(err)
	}

	log := uc.logger.With(
		"order_id", order.OrderID,
		"request_id", cmd.RequestID,
		"environment", uc.config.Endpoint.Environment().String(),
	)
	log.Infow("creating payment session",
		"amount", order.OrderAmount.String(),
		"customer_email", utils.MaskEmail(order.CustomerDetails.CustomerEmail),
		"customer_phone", utils.MaskPhone(order.CustomerDetails.CustomerPhone),
	)

	callCtx, cancel := context.WithTimeout(ctx, uc.config.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := uc.gateway.CreateOrder(callCtx, gateway.CreateOrderRequest{
		Credentials: uc.config.Credentials,
		Order:       order,
		RequestID:   cmd.RequestID,
	})
	latency := time.Since(start)

	if err != nil {
		return nil, uc.mapGatewayError(log, err, latency)
	}

	if resp.PaymentSessionID == "" {
		log.Errorw("gateway response is missing payment_session_id",
			"status", resp.StatusCode,
			"latency", latency,
		)
		return nil, apperrors.NewUpstreamContractError(paymentsession.ErrMissingSessionID)
	}

	session := &paymentsession.Session{
		OrderID:          order.OrderID,
		PaymentSessionID: resp.PaymentSessionID,
		Payload:          resp.Payload,
	}

	log.Infow("payment session created",
		"payment_session_id", logutil.MaskToken(session.PaymentSessionID, loggedTokenPrefix),
		"latency", latency,
	)

	return dto.ToSessionResult(session), nil
}

func (uc *CreateSessionUseCase) mapGatewayError(log logger.Interface, err error, latency time.Duration) error {
	if errors.Is(err, gateway.ErrMalformedResponse) {
		log.Errorw("gateway returned an unreadable success response", "error", err, "latency", latency)
		return apperrors.NewUpstreamContractError(err)
	}

	var upstreamErr *gateway.UpstreamError
	if errors.As(err, &upstreamErr) {
		log.Errorw("gateway rejected order creation",
			"status", upstreamErr.StatusCode,
			"body", logutil.TruncateForLog(string(upstreamErr.Body), maxLoggedBodyLen),
			"latency", latency,
		)
		appErr := apperrors.NewUpstreamCallError(err)
		if details := upstreamErr.SanitizedDetails(); uc.config.ExposeDetails && details != nil {
			appErr = appErr.WithDetails(details)
		}
		return appErr
	}

	log.Errorw("gateway call failed",
		"error", err,
		"timeout", errors.Is(err, context.DeadlineExceeded),
		"latency", latency,
	)
	return apperrors.NewUpstreamCallError(err)
}
