package usecase

import (
	"context"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/engine"
	"github.com/ayleenrq/urbane/internal/core/port"
)

type BrowsePropertiesUseCase struct {
	catalog port.CatalogReaderPort
	metrics port.BrowseMetricsPort
}

// NewBrowsePropertiesUseCase - metrics может быть nil.
func NewBrowsePropertiesUseCase(catalog port.CatalogReaderPort, metrics port.BrowseMetricsPort) *BrowsePropertiesUseCase {
	return &BrowsePropertiesUseCase{catalog: catalog, metrics: metrics}
}

func (uc *BrowsePropertiesUseCase) Execute(ctx context.Context, state domain.FilterState) (*domain.ViewModel, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "BrowseProperties",
		"tab":       state.Tab,
		"type":      state.TypeFilter,
		"max_price": state.MaxPrice,
		"beds":      state.BedsFilter,
		"sort":      state.SortBy,
		"page":      state.CurrentPage,
	})

	ucLogger.Debug("Use case started", nil)

	vm, err := engine.Compute(uc.catalog.All(), state)
	if err != nil {
		ucLogger.Warn("Engine rejected filter state", port.Fields{"error": err.Error()})
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ObserveBrowse(state, vm)
	}

	if vm.TotalMatches == 0 {
		ucLogger.Debug("No listings matched", port.Fields{"rejected_by": rejections(uc.catalog.All(), state)})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_matches": vm.TotalMatches,
		"items_on_page": len(vm.Items),
		"current_page":  vm.CurrentPage,
	})

	return &vm, nil
}

// rejections считает, сколько записей отсек каждый предикат (по первому отказу).
func rejections(catalog []domain.Property, state domain.FilterState) map[string]int {
	counts := make(map[string]int)
	for _, p := range catalog {
		if name, ok := engine.Explain(p, state); !ok {
			counts[name]++
		}
	}
	return counts
}
