package usecase

import (
	"context"
	"slices"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
)

type GetFilterOptionsUseCase struct {
	catalog port.CatalogReaderPort
}

func NewGetFilterOptionsUseCase(catalog port.CatalogReaderPort) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{catalog: catalog}
}

// Execute собирает значения для контролов фильтра. Пустой tab - по всему каталогу.
func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context, tab domain.ListingMode) (*domain.FilterOptionsResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetFilterOptions",
		"tab":      tab,
	})

	result := &domain.FilterOptionsResult{
		Tabs:         slices.Clone(domain.ListingModes),
		Types:        append([]domain.PropertyType{domain.TypeFilterAll}, domain.PropertyTypes...),
		Amenities:    slices.Clone(domain.Amenities),
		Beds:         slices.Clone(domain.BedsOptions),
		SortKeys:     slices.Clone(domain.SortKeys),
		CountsByType: make(map[domain.PropertyType]int, len(domain.PropertyTypes)),
	}
	for _, t := range domain.PropertyTypes {
		result.CountsByType[t] = 0
	}

	first := true
	for _, p := range uc.catalog.All() {
		if tab != "" && !p.HasTab(tab) {
			continue
		}
		if first {
			result.PriceMin, result.PriceMax = p.PriceNumeric, p.PriceNumeric
			first = false
		}
		result.PriceMin = min(result.PriceMin, p.PriceNumeric)
		result.PriceMax = max(result.PriceMax, p.PriceNumeric)
		result.CountsByType[p.Type]++
		result.Total++
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"total": result.Total})
	return result, nil
}
