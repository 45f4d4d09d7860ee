package http

import (
	"paysession/internal/infrastructure/payment"
	"paysession/internal/interfaces/http/handlers"
)

// initPaymentSession wires the order gateway, session use case and handlers.
func (c *Container) initPaymentSession() error {
	if missing := c.cfg.MissingSettings(); len(missing) > 0 {
		c.log.Warnw("payment gateway credentials missing, session requests will fail until set",
			"missing", missing,
		)
	}

	createSessionUC, err := payment.NewCreateSessionUseCase(c.cfg, c.log)
	if err != nil {
		return err
	}

	c.paymentSessionHandler = handlers.NewPaymentSessionHandler(createSessionUC, c.log.Named("handler"))
	c.healthHandler = handlers.NewHealthHandler(c.cfg.Endpoint.Environment().String())

	c.log.Infow("payment session service initialized",
		"gateway_mode", c.cfg.Gateway.Mode,
		"environment", c.cfg.Endpoint.Environment().String(),
		"orders_url", c.cfg.Endpoint.OrdersURL(),
		"credentials", c.cfg.Credentials(),
	)
	return nil
}
