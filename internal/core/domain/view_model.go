package domain

// ViewModel - результат движка для слоя отображения.
type ViewModel struct {
	Items        []Property
	TotalMatches int
	TotalPages   int
	CurrentPage  int
}

// IsEmpty - ни одна запись не прошла фильтры (показывается пустое состояние со сбросом).
func (v ViewModel) IsEmpty() bool {
	return v.TotalMatches == 0
}

// PropertyDetailsView - страница объекта вместе с похожими предложениями.
type PropertyDetailsView struct {
	Property Property
	Related  []Property
}

// FilterOptionsResult - значения для контролов фильтра.
type FilterOptionsResult struct {
	Tabs         []ListingMode
	Types        []PropertyType
	Amenities    []Amenity
	Beds         []BedsFilter
	SortKeys     []SortKey
	PriceMin     float64
	PriceMax     float64
	CountsByType map[PropertyType]int
	Total        int
}
