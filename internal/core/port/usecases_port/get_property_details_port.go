package usecases_port

import (
	"context"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

type GetPropertyDetailsUseCase interface {
	Execute(ctx context.Context, propertyID int) (*domain.PropertyDetailsView, error)
}
