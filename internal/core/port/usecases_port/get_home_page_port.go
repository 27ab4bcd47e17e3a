package usecases_port

import (
	"context"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

type GetHomePageUseCase interface {
	Execute(ctx context.Context) (*domain.HomePage, error)
}

type GetMapMarkersUseCase interface {
	Execute(ctx context.Context) (*domain.MapView, error)
}
