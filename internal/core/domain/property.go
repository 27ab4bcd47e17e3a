package domain

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ListingMode - режим объявления (вкладка Buy / Sell / Rent).
type ListingMode string

const (
	ListingModeBuy  ListingMode = "Buy"
	ListingModeSell ListingMode = "Sell"
	ListingModeRent ListingMode = "Rent"
)

var ListingModes = []ListingMode{ListingModeBuy, ListingModeSell, ListingModeRent}

// PropertyType - тип объекта. Набор закрытый, но расширяемый.
type PropertyType string

const (
	PropertyTypeHouse       PropertyType = "House"
	PropertyTypeResidential PropertyType = "Residential"
	PropertyTypeApartment   PropertyType = "Apartment"
	PropertyTypeVilla       PropertyType = "Villa"
)

var PropertyTypes = []PropertyType{
	PropertyTypeHouse,
	PropertyTypeResidential,
	PropertyTypeApartment,
	PropertyTypeVilla,
}

// RentalPeriod - срок аренды.
type RentalPeriod string

const (
	RentalPeriodLongTerm  RentalPeriod = "Long term"
	RentalPeriodShortTerm RentalPeriod = "Short term"
)

var RentalPeriods = []RentalPeriod{RentalPeriodLongTerm, RentalPeriodShortTerm}

// Amenity - тег удобства.
type Amenity string

const (
	AmenityPool   Amenity = "Pool"
	AmenityGarden Amenity = "Garden"
	AmenityGarage Amenity = "Garage"
	AmenityGym    Amenity = "Gym"
)

var Amenities = []Amenity{AmenityPool, AmenityGarden, AmenityGarage, AmenityGym}

// Coordinates - заранее заданная точка на карте.
type Coordinates struct {
	Lat float64
	Lng float64
}

// PropertyPresentation - данные только для отображения, движок фильтрации их не читает.
type PropertyPresentation struct {
	PriceRange  string
	Price       string
	Period      string
	Area        string
	Images      []string
	AgentName   string
	AgentImg    string
	Features    []string
	Coordinates *Coordinates
}

// Property - запись каталога. После загрузки каталога не изменяется.
type Property struct {
	ID           int
	Title        string
	Description  string
	Location     string
	Type         PropertyType
	Tab          []ListingMode
	RentalPeriod []RentalPeriod
	PriceNumeric float64
	Amenities    []Amenity
	Beds         int
	Baths        int
	Featured     bool

	Presentation PropertyPresentation
}

func (p Property) HasTab(mode ListingMode) bool {
	return slices.Contains(p.Tab, mode)
}

func (p Property) HasAmenity(a Amenity) bool {
	return slices.Contains(p.Amenities, a)
}

// Validate проверяет инварианты записи каталога.
func (p Property) Validate() error {
	if p.PriceNumeric < 0 {
		return fmt.Errorf("property %d: negative price %v: %w", p.ID, p.PriceNumeric, ErrInvalidProperty)
	}
	if p.Beds < 0 || p.Baths < 0 {
		return fmt.Errorf("property %d: negative beds/baths (%d/%d): %w", p.ID, p.Beds, p.Baths, ErrInvalidProperty)
	}
	if p.Tab == nil || p.RentalPeriod == nil || p.Amenities == nil {
		return fmt.Errorf("property %d: tab, rental period and amenities must be non-nil: %w", p.ID, ErrInvalidProperty)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("property %d: empty title: %w", p.ID, ErrInvalidProperty)
	}
	return nil
}

// --- Разбор значений из внешних источников (URL, JSON каталога) ---

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

func ParseListingMode(s string) (ListingMode, error) {
	mode := ListingMode(titleCase(s))
	if !slices.Contains(ListingModes, mode) {
		return "", fmt.Errorf("unknown listing mode %q: %w", s, ErrInvalidFilter)
	}
	return mode, nil
}

func ParsePropertyType(s string) (PropertyType, error) {
	t := PropertyType(titleCase(s))
	if !slices.Contains(PropertyTypes, t) {
		return "", fmt.Errorf("unknown property type %q: %w", s, ErrInvalidFilter)
	}
	return t, nil
}

func ParseAmenity(s string) (Amenity, error) {
	a := Amenity(titleCase(s))
	if !slices.Contains(Amenities, a) {
		return "", fmt.Errorf("unknown amenity %q: %w", s, ErrInvalidFilter)
	}
	return a, nil
}

func ParseRentalPeriod(s string) (RentalPeriod, error) {
	for _, rp := range RentalPeriods {
		if strings.EqualFold(strings.TrimSpace(s), string(rp)) {
			return rp, nil
		}
	}
	return "", fmt.Errorf("unknown rental period %q: %w", s, ErrInvalidFilter)
}
