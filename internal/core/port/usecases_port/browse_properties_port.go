package usecases_port

import (
	"context"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

type BrowsePropertiesUseCase interface {
	Execute(ctx context.Context, state domain.FilterState) (*domain.ViewModel, error)
}
