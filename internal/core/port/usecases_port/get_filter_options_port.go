package usecases_port

import (
	"context"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

type GetFilterOptionsUseCase interface {
	Execute(ctx context.Context, tab domain.ListingMode) (*domain.FilterOptionsResult, error)
}
