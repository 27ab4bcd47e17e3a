package usecases_port

import (
	"context"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

type GetFeaturedPropertiesUseCase interface {
	Execute(ctx context.Context) ([]domain.Property, error)
}
