package engine

import (
	"strconv"
	"strings"

	"github.com/ayleenrq/urbane/internal/core/domain"

	"golang.org/x/text/cases"
)

// Predicate - одно правило фильтрации по одному атрибуту записи.
type Predicate struct {
	Name  string
	Match func(p domain.Property) bool
}

// Имена предикатов, в порядке применения.
const (
	PredicateListingMode  = "listing_mode"
	PredicateType         = "type"
	PredicateRentalPeriod = "rental_period"
	PredicatePrice        = "price"
	PredicateAmenities    = "amenities"
	PredicateBeds         = "beds"
	PredicateLocation     = "location"
	PredicateFreeText     = "free_text"
)

// Predicates собирает активные предикаты для состояния фильтров.
// Неактивные (например, тип "All" или пустой поиск) в список не попадают.
func Predicates(state domain.FilterState) []Predicate {
	preds := make([]Predicate, 0, 8)

	preds = append(preds, Predicate{
		Name:  PredicateListingMode,
		Match: func(p domain.Property) bool { return p.HasTab(state.Tab) },
	})

	if state.TypeFilter != domain.TypeFilterAll && state.TypeFilter != "" {
		want := state.TypeFilter
		preds = append(preds, Predicate{
			Name:  PredicateType,
			Match: func(p domain.Property) bool { return p.Type == want },
		})
	}

	// Оба флага выключены - срок аренды не фильтруется вообще (а не "ничего не показывать").
	if state.LongTermEnabled || state.ShortTermEnabled {
		allowed := make(map[domain.RentalPeriod]struct{}, 2)
		if state.LongTermEnabled {
			allowed[domain.RentalPeriodLongTerm] = struct{}{}
		}
		if state.ShortTermEnabled {
			allowed[domain.RentalPeriodShortTerm] = struct{}{}
		}
		preds = append(preds, Predicate{
			Name: PredicateRentalPeriod,
			Match: func(p domain.Property) bool {
				for _, rp := range p.RentalPeriod {
					if _, ok := allowed[rp]; ok {
						return true
					}
				}
				return false
			},
		})
	}

	maxPrice := state.MaxPrice
	preds = append(preds, Predicate{
		Name:  PredicatePrice,
		Match: func(p domain.Property) bool { return p.PriceNumeric <= maxPrice },
	})

	if len(state.SelectedAmenities) > 0 {
		selected := state.SelectedAmenities
		preds = append(preds, Predicate{
			Name: PredicateAmenities,
			Match: func(p domain.Property) bool {
				for _, a := range selected {
					if !p.HasAmenity(a) {
						return false
					}
				}
				return true
			},
		})
	}

	if pred, ok := bedsPredicate(state.BedsFilter); ok {
		preds = append(preds, pred)
	}

	// Запрос не обрезается: пробелы входят в искомую подстроку.
	// Caser хранит состояние, поэтому на каждый вызов - свой.
	folder := cases.Fold()
	fold := func(s string) string { return folder.String(s) }

	if q := state.FreeTextLocation; q != "" {
		needle := fold(q)
		preds = append(preds, Predicate{
			Name:  PredicateLocation,
			Match: func(p domain.Property) bool { return strings.Contains(fold(p.Location), needle) },
		})
	}

	if q := state.FreeTextType; q != "" {
		needle := fold(q)
		preds = append(preds, Predicate{
			Name: PredicateFreeText,
			Match: func(p domain.Property) bool {
				return strings.Contains(fold(string(p.Type)), needle) ||
					strings.Contains(fold(p.Title), needle)
			},
		})
	}

	return preds
}

func bedsPredicate(filter domain.BedsFilter) (Predicate, bool) {
	switch filter {
	case domain.BedsAny, "":
		return Predicate{}, false
	case domain.BedsFiveOrMore:
		return Predicate{
			Name:  PredicateBeds,
			Match: func(p domain.Property) bool { return p.Beds >= 5 },
		}, true
	}

	n, err := strconv.Atoi(string(filter))
	if err != nil {
		// Нечисловой фильтр не совпадает ни с одной записью.
		return Predicate{
			Name:  PredicateBeds,
			Match: func(domain.Property) bool { return false },
		}, true
	}
	return Predicate{
		Name:  PredicateBeds,
		Match: func(p domain.Property) bool { return p.Beds == n },
	}, true
}
