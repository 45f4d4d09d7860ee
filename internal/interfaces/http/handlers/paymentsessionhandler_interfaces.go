package handlers

import (
	"context"

	"paysession/internal/application/paymentsession/dto"
	"paysession/internal/application/paymentsession/usecases"
)

// Use case interfaces for PaymentSessionHandler

type createSessionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateSessionCommand) (*dto.SessionResult, error)
}
