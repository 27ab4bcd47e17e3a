package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// TypeFilterAll - значение фильтра типа, при котором тип не проверяется.
const TypeFilterAll PropertyType = "All"

// BedsFilter - фильтр по спальням: "Any", точное число или "5+".
type BedsFilter string

const (
	BedsAny        BedsFilter = "Any"
	BedsFiveOrMore BedsFilter = "5+"
)

var BedsOptions = []BedsFilter{BedsAny, "1", "2", "3", "4", BedsFiveOrMore}

// Exact возвращает точное число спален для числового фильтра.
func (b BedsFilter) Exact() (int, bool) {
	if b == BedsAny || b == BedsFiveOrMore {
		return 0, false
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return 0, false
	}
	return n, true
}

func ParseBedsFilter(s string) (BedsFilter, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || strings.EqualFold(s, string(BedsAny)):
		return BedsAny, nil
	case s == string(BedsFiveOrMore):
		return BedsFiveOrMore, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return "", fmt.Errorf("unknown beds filter %q: %w", s, ErrInvalidFilter)
	}
	return BedsFilter(strconv.Itoa(n)), nil
}

// SortKey - порядок сортировки выдачи.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

var SortKeys = []SortKey{SortDefault, SortPriceAsc, SortPriceDesc}

func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortDefault, nil
	}
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(SortKeys, key) {
		return "", fmt.Errorf("sort key %q: %w", s, ErrInvalidSortKey)
	}
	return key, nil
}

const (
	DefaultPageSize = 8
	DefaultMaxPrice = 5000
)

// FilterState - текущее значение всех контролов страницы выдачи.
type FilterState struct {
	Tab               ListingMode
	TypeFilter        PropertyType
	MaxPrice          float64
	BedsFilter        BedsFilter
	LongTermEnabled   bool
	ShortTermEnabled  bool
	SelectedAmenities []Amenity
	FreeTextType      string
	FreeTextLocation  string
	SortBy            SortKey
	PageSize          int
	CurrentPage       int
}

// DefaultFilterState - состояние при открытии страницы и после сброса фильтров.
func DefaultFilterState(pageSize int, maxPrice float64) FilterState {
	return FilterState{
		Tab:               ListingModeRent,
		TypeFilter:        TypeFilterAll,
		MaxPrice:          maxPrice,
		BedsFilter:        BedsAny,
		LongTermEnabled:   true,
		ShortTermEnabled:  false,
		SelectedAmenities: []Amenity{},
		SortBy:            SortDefault,
		PageSize:          pageSize,
		CurrentPage:       1,
	}
}

// Clone возвращает копию без общих срезов.
func (s FilterState) Clone() FilterState {
	c := s
	c.SelectedAmenities = slices.Clone(s.SelectedAmenities)
	if c.SelectedAmenities == nil {
		c.SelectedAmenities = []Amenity{}
	}
	return c
}

// Validate проверяет, что состояние можно передать движку.
func (s FilterState) Validate() error {
	if s.PageSize <= 0 {
		return fmt.Errorf("page size %d: %w", s.PageSize, ErrInvalidPageSize)
	}
	if !slices.Contains(SortKeys, s.SortBy) {
		return fmt.Errorf("sort key %q: %w", s.SortBy, ErrInvalidSortKey)
	}
	if !slices.Contains(ListingModes, s.Tab) {
		return fmt.Errorf("listing mode %q: %w", s.Tab, ErrInvalidFilter)
	}
	if s.TypeFilter != TypeFilterAll && !slices.Contains(PropertyTypes, s.TypeFilter) {
		return fmt.Errorf("type filter %q: %w", s.TypeFilter, ErrInvalidFilter)
	}
	if _, err := ParseBedsFilter(string(s.BedsFilter)); err != nil {
		return err
	}
	return nil
}
