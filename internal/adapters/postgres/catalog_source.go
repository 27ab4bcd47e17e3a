package postgres

import (
	"context"
	"fmt"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectCatalogQuery = `
	SELECT id, title, description, location, type,
	       tab, rental_period, price_numeric, amenities, beds, baths, featured,
	       price_range, price, period, area, images, agent_name, agent_img, features,
	       lat, lng
	FROM properties
	ORDER BY position, id`

// CatalogSource читает каталог из таблицы properties. Только SELECT, в базу ничего не пишет.
type CatalogSource struct {
	pool *pgxpool.Pool
}

func NewCatalogSource(pool *pgxpool.Pool) (*CatalogSource, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres catalog source: pool cannot be nil")
	}
	return &CatalogSource{pool: pool}, nil
}

// catalogRow - строка таблицы properties
type catalogRow struct {
	ID           int
	Title        string
	Description  string
	Location     string
	Type         string
	Tab          []string
	RentalPeriod []string
	PriceNumeric float64
	Amenities    []string
	Beds         int
	Baths        int
	Featured     bool
	PriceRange   *string
	Price        *string
	Period       *string
	Area         *string
	Images       []string
	AgentName    *string
	AgentImg     *string
	Features     []string
	Lat          *float64
	Lng          *float64
}

func (s *CatalogSource) LoadCatalog(ctx context.Context) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresCatalogSource",
	})

	rows, err := s.pool.Query(ctx, selectCatalogQuery)
	if err != nil {
		logger.Error("Failed to query catalog", err, nil)
		return nil, fmt.Errorf("postgres catalog source: query: %w", err)
	}

	catalogRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalogRow, error) {
		var r catalogRow
		err := row.Scan(
			&r.ID, &r.Title, &r.Description, &r.Location, &r.Type,
			&r.Tab, &r.RentalPeriod, &r.PriceNumeric, &r.Amenities, &r.Beds, &r.Baths, &r.Featured,
			&r.PriceRange, &r.Price, &r.Period, &r.Area, &r.Images, &r.AgentName, &r.AgentImg, &r.Features,
			&r.Lat, &r.Lng,
		)
		return r, err
	})
	if err != nil {
		logger.Error("Failed to scan catalog rows", err, nil)
		return nil, fmt.Errorf("postgres catalog source: scan: %w", err)
	}

	props := make([]domain.Property, 0, len(catalogRows))
	for _, r := range catalogRows {
		p, err := r.toDomain()
		if err != nil {
			logger.Error("Invalid catalog row", err, port.Fields{"property_id": r.ID})
			return nil, fmt.Errorf("postgres catalog source: %w", err)
		}
		props = append(props, p)
	}

	logger.Info("Catalog loaded from PostgreSQL", port.Fields{"properties": len(props)})
	return props, nil
}

func (r catalogRow) toDomain() (domain.Property, error) {
	propType, err := domain.ParsePropertyType(r.Type)
	if err != nil {
		return domain.Property{}, fmt.Errorf("property %d: %w", r.ID, err)
	}

	tabs := make([]domain.ListingMode, 0, len(r.Tab))
	for _, t := range r.Tab {
		mode, err := domain.ParseListingMode(t)
		if err != nil {
			return domain.Property{}, fmt.Errorf("property %d: %w", r.ID, err)
		}
		tabs = append(tabs, mode)
	}

	periods := make([]domain.RentalPeriod, 0, len(r.RentalPeriod))
	for _, rp := range r.RentalPeriod {
		period, err := domain.ParseRentalPeriod(rp)
		if err != nil {
			return domain.Property{}, fmt.Errorf("property %d: %w", r.ID, err)
		}
		periods = append(periods, period)
	}

	amenities := make([]domain.Amenity, 0, len(r.Amenities))
	for _, a := range r.Amenities {
		amenity, err := domain.ParseAmenity(a)
		if err != nil {
			return domain.Property{}, fmt.Errorf("property %d: %w", r.ID, err)
		}
		amenities = append(amenities, amenity)
	}

	var coords *domain.Coordinates
	if r.Lat != nil && r.Lng != nil {
		coords = &domain.Coordinates{Lat: *r.Lat, Lng: *r.Lng}
	}

	return domain.Property{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		Type:         propType,
		Tab:          tabs,
		RentalPeriod: periods,
		PriceNumeric: r.PriceNumeric,
		Amenities:    amenities,
		Beds:         r.Beds,
		Baths:        r.Baths,
		Featured:     r.Featured,
		Presentation: domain.PropertyPresentation{
			PriceRange:  deref(r.PriceRange),
			Price:       deref(r.Price),
			Period:      deref(r.Period),
			Area:        deref(r.Area),
			Images:      r.Images,
			AgentName:   deref(r.AgentName),
			AgentImg:    deref(r.AgentImg),
			Features:    r.Features,
			Coordinates: coords,
		},
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
