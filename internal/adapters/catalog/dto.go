package catalog

import (
	"fmt"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

// Формат документа каталога (тот же, что у мок-данных фронтенда).
type catalogDocument struct {
	Properties []propertyDTO `json:"properties"`
}

type propertyDTO struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Tab          []string `json:"tab"`
	RentalPeriod []string `json:"rentalPeriod"`
	PriceNumeric float64  `json:"priceNumeric"`
	PriceRange   string   `json:"priceRange"`
	Price        string   `json:"price"`
	Period       string   `json:"period"`
	Amenities    []string `json:"amenities"`
	Beds         int      `json:"beds"`
	Baths        int      `json:"baths"`
	Area         string   `json:"area"`
	Featured     bool     `json:"featured"`
	Images       []string `json:"images"`
	AgentName    string   `json:"agentName"`
	AgentImg     string   `json:"agentImg"`
	Features     []string `json:"features"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
}

func (d propertyDTO) toDomain() (domain.Property, error) {
	propType, err := domain.ParsePropertyType(d.Type)
	if err != nil {
		return domain.Property{}, fmt.Errorf("property %d: %w", d.ID, err)
	}

	tabs := make([]domain.ListingMode, 0, len(d.Tab))
	for _, t := range d.Tab {
		mode, err := domain.ParseListingMode(t)
		if err != nil {
			return domain.Property{}, fmt.Errorf("property %d: %w", d.ID, err)
		}
		tabs = append(tabs, mode)
	}

	periods := make([]domain.RentalPeriod, 0, len(d.RentalPeriod))
	for _, rp := range d.RentalPeriod {
		period, err := domain.ParseRentalPeriod(rp)
		if err != nil {
			return domain.Property{}, fmt.Errorf("property %d: %w", d.ID, err)
		}
		periods = append(periods, period)
	}

	amenities := make([]domain.Amenity, 0, len(d.Amenities))
	for _, a := range d.Amenities {
		amenity, err := domain.ParseAmenity(a)
		if err != nil {
			return domain.Property{}, fmt.Errorf("property %d: %w", d.ID, err)
		}
		amenities = append(amenities, amenity)
	}

	var coords *domain.Coordinates
	if d.Lat != nil && d.Lng != nil {
		coords = &domain.Coordinates{Lat: *d.Lat, Lng: *d.Lng}
	}

	return domain.Property{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Location:     d.Location,
		Type:         propType,
		Tab:          tabs,
		RentalPeriod: periods,
		PriceNumeric: d.PriceNumeric,
		Amenities:    amenities,
		Beds:         d.Beds,
		Baths:        d.Baths,
		Featured:     d.Featured,
		Presentation: domain.PropertyPresentation{
			PriceRange:  d.PriceRange,
			Price:       d.Price,
			Period:      d.Period,
			Area:        d.Area,
			Images:      d.Images,
			AgentName:   d.AgentName,
			AgentImg:    d.AgentImg,
			Features:    d.Features,
			Coordinates: coords,
		},
	}, nil
}
