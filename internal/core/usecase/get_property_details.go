package usecase

import (
	"context"
	"fmt"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
)

// MaxRelatedProperties - сколько похожих объектов показывать на странице объекта.
const MaxRelatedProperties = 3

type GetPropertyDetailsUseCase struct {
	catalog port.CatalogReaderPort
}

func NewGetPropertyDetailsUseCase(catalog port.CatalogReaderPort) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{catalog: catalog}
}

func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, propertyID int) (*domain.PropertyDetailsView, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "GetPropertyDetails",
		"property_id": propertyID,
	})

	property, ok := uc.catalog.ByID(propertyID)
	if !ok {
		ucLogger.Warn("Property not found", nil)
		return nil, fmt.Errorf("property %d: %w", propertyID, domain.ErrPropertyNotFound)
	}

	// похожие: тот же тип, другой id, в порядке каталога
	related := make([]domain.Property, 0, MaxRelatedProperties)
	for _, p := range uc.catalog.All() {
		if len(related) == MaxRelatedProperties {
			break
		}
		if p.ID != property.ID && p.Type == property.Type {
			related = append(related, p)
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"related": len(related)})
	return &domain.PropertyDetailsView{Property: property, Related: related}, nil
}
