package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"

	"github.com/google/uuid"
)

type SendViewingRequestUseCase struct {
	catalog   port.CatalogReaderPort
	publisher port.ViewingRequestPublisherPort
	now       func() time.Time
}

func NewSendViewingRequestUseCase(catalog port.CatalogReaderPort, publisher port.ViewingRequestPublisherPort) *SendViewingRequestUseCase {
	return &SendViewingRequestUseCase{catalog: catalog, publisher: publisher, now: time.Now}
}

func (uc *SendViewingRequestUseCase) Execute(ctx context.Context, req domain.ViewingRequest) (*domain.ViewingRequest, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "SendViewingRequest",
		"property_id": req.PropertyID,
		"source":      req.Source,
	})

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := req.Validate(); err != nil {
		ucLogger.Warn("Viewing request rejected", port.Fields{"error": err.Error()})
		return nil, err
	}
	if req.PropertyID != 0 {
		if _, ok := uc.catalog.ByID(req.PropertyID); !ok {
			ucLogger.Warn("Viewing request for unknown property", nil)
			return nil, fmt.Errorf("property %d: %w", req.PropertyID, domain.ErrPropertyNotFound)
		}
	}

	req.ID = uuid.New()
	req.CreatedAt = uc.now().UTC()

	if err := uc.publisher.PublishViewingRequest(ctx, req); err != nil {
		ucLogger.Error("Failed to publish viewing request", err, port.Fields{"request_id": req.ID.String()})
		return nil, fmt.Errorf("publish viewing request: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"request_id": req.ID.String()})
	return &req, nil
}
