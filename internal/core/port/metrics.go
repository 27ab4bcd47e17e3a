package port

import "github.com/ayleenrq/urbane/internal/core/domain"

// BrowseMetricsPort - счётчики выдачи (реализуется prometheus-адаптером).
type BrowseMetricsPort interface {
	ObserveBrowse(state domain.FilterState, vm domain.ViewModel)
}
