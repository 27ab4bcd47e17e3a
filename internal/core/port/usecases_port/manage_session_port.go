package usecases_port

import (
	"context"

	"github.com/ayleenrq/urbane/internal/core/domain"

	"github.com/google/uuid"
)

type ManageSessionUseCase interface {
	Create(ctx context.Context, seed *domain.FilterState) (*domain.SessionSnapshot, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.SessionSnapshot, error)
	Apply(ctx context.Context, id uuid.UUID, commands []domain.SessionCommand) (*domain.SessionSnapshot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
