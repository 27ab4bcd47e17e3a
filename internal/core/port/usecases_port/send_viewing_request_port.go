package usecases_port

import (
	"context"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

type SendViewingRequestUseCase interface {
	Execute(ctx context.Context, req domain.ViewingRequest) (*domain.ViewingRequest, error)
}
