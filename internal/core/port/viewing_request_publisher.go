package port

import (
	"context"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

type ViewingRequestPublisherPort interface {
	PublishViewingRequest(ctx context.Context, req domain.ViewingRequest) error
}
