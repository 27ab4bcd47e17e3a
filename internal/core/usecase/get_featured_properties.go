package usecase

import (
	"context"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
)

// fallbackFeaturedCount - сколько первых записей показывать, если ни одна не отмечена как featured.
const fallbackFeaturedCount = 2

type GetFeaturedPropertiesUseCase struct {
	catalog port.CatalogReaderPort
}

func NewGetFeaturedPropertiesUseCase(catalog port.CatalogReaderPort) *GetFeaturedPropertiesUseCase {
	return &GetFeaturedPropertiesUseCase{catalog: catalog}
}

func (uc *GetFeaturedPropertiesUseCase) Execute(ctx context.Context) ([]domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetFeaturedProperties",
	})

	all := uc.catalog.All()
	featured := make([]domain.Property, 0)
	for _, p := range all {
		if p.Featured {
			featured = append(featured, p)
		}
	}

	if len(featured) == 0 {
		n := min(fallbackFeaturedCount, len(all))
		for _, p := range all[:n] {
			p.Featured = true
			featured = append(featured, p)
		}
		ucLogger.Warn("No featured properties in catalog, using first records", port.Fields{"count": n})
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"featured": len(featured)})
	return featured, nil
}
