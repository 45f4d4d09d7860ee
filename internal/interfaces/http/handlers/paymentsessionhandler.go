package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paysession/internal/application/paymentsession/usecases"
	"paysession/internal/interfaces/http/middleware"
	"paysession/internal/shared/logger"
	"paysession/internal/shared/utils"
)

type PaymentSessionHandler struct {
	createSessionUC createSessionUseCase
	logger          logger.Interface
}

func NewPaymentSessionHandler(createSessionUC createSessionUseCase, logger logger.Interface) *PaymentSessionHandler {
	return &PaymentSessionHandler{
		createSessionUC: createSessionUC,
		logger:          logger,
	}
}

// CreateSession handles POST /create-payment-session.
// The request body is ignored; every order is built from server-side values.
func (h *PaymentSessionHandler) CreateSession(c *gin.Context) {
	utils.NoStoreHeaders(c)

	requestID := middleware.GetRequestID(c)

	result, err := h.createSessionUC.Execute(c.Request.Context(), usecases.CreateSessionCommand{
		RequestID: requestID,
	})
	if err != nil {
		_ = c.Error(err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}
