// Package engine - чистый движок выдачи: фильтрация, сортировка и пагинация каталога.
//
// Все функции детерминированы и не имеют побочных эффектов: каталог только читается,
// результат всегда новый срез. Безопасно вызывать конкурентно над одним каталогом.
package engine

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

// Page - одна страница отсортированной выдачи.
type Page struct {
	Items         []domain.Property
	TotalPages    int
	EffectivePage int
}

// Filter оставляет записи, для которых выполняются все активные предикаты.
func Filter(catalog []domain.Property, state domain.FilterState) []domain.Property {
	preds := Predicates(state)
	result := make([]domain.Property, 0, len(catalog))
	for _, p := range catalog {
		if matchAll(preds, p) {
			result = append(result, p)
		}
	}
	return result
}

func matchAll(preds []Predicate, p domain.Property) bool {
	for _, pred := range preds {
		if !pred.Match(p) {
			return false
		}
	}
	return true
}

// Explain возвращает имя первого предиката, отклонившего запись.
// ok == true, если запись проходит все фильтры.
func Explain(p domain.Property, state domain.FilterState) (rejectedBy string, ok bool) {
	for _, pred := range Predicates(state) {
		if !pred.Match(p) {
			return pred.Name, false
		}
	}
	return "", true
}

// Sort возвращает новый упорядоченный срез. Сортировка по цене стабильна.
func Sort(filtered []domain.Property, sortBy domain.SortKey) ([]domain.Property, error) {
	sorted := slices.Clone(filtered)
	if sorted == nil {
		sorted = []domain.Property{}
	}

	switch sortBy {
	case domain.SortDefault, "":
		// порядок каталога
	case domain.SortPriceAsc:
		slices.SortStableFunc(sorted, func(a, b domain.Property) int {
			return cmp.Compare(a.PriceNumeric, b.PriceNumeric)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(sorted, func(a, b domain.Property) int {
			return cmp.Compare(b.PriceNumeric, a.PriceNumeric)
		})
	default:
		return nil, fmt.Errorf("engine: sort %q: %w", sortBy, domain.ErrInvalidSortKey)
	}
	return sorted, nil
}

// Paginate режет выдачу на страницы. Запрошенная страница прижимается к [1, totalPages].
func Paginate(sorted []domain.Property, pageSize, requestedPage int) (Page, error) {
	if pageSize <= 0 {
		return Page{}, fmt.Errorf("engine: page size %d: %w", pageSize, domain.ErrInvalidPageSize)
	}

	totalPages := max(1, (len(sorted)+pageSize-1)/pageSize)
	page := min(max(requestedPage, 1), totalPages)

	start := min((page-1)*pageSize, len(sorted))
	end := min(page*pageSize, len(sorted))

	items := make([]domain.Property, end-start)
	copy(items, sorted[start:end])

	return Page{
		Items:         items,
		TotalPages:    totalPages,
		EffectivePage: page,
	}, nil
}

// Compute прогоняет каталог через filter -> sort -> paginate и собирает view model.
func Compute(catalog []domain.Property, state domain.FilterState) (domain.ViewModel, error) {
	// Размер страницы проверяем до работы, ошибку конфигурации не маскируем.
	if state.PageSize <= 0 {
		return domain.ViewModel{}, fmt.Errorf("engine: page size %d: %w", state.PageSize, domain.ErrInvalidPageSize)
	}

	filtered := Filter(catalog, state)

	sorted, err := Sort(filtered, state.SortBy)
	if err != nil {
		return domain.ViewModel{}, err
	}

	page, err := Paginate(sorted, state.PageSize, state.CurrentPage)
	if err != nil {
		return domain.ViewModel{}, err
	}

	return domain.ViewModel{
		Items:        page.Items,
		TotalMatches: len(sorted),
		TotalPages:   page.TotalPages,
		CurrentPage:  page.EffectivePage,
	}, nil
}
