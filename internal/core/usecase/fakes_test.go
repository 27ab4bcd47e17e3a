package usecase

import (
	"context"
	"errors"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

type fakeCatalog []domain.Property

func (c fakeCatalog) All() []domain.Property { return c }

func (c fakeCatalog) ByID(id int) (domain.Property, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Property{}, false
}

func prop(id int, t domain.PropertyType, price float64, tabs ...domain.ListingMode) domain.Property {
	if len(tabs) == 0 {
		tabs = []domain.ListingMode{domain.ListingModeRent}
	}
	return domain.Property{
		ID:           id,
		Title:        "Listing",
		Location:     "Jakarta",
		Type:         t,
		Tab:          tabs,
		RentalPeriod: []domain.RentalPeriod{domain.RentalPeriodLongTerm},
		PriceNumeric: price,
		Amenities:    []domain.Amenity{},
		Beds:         2,
	}
}

type fakeMetrics struct {
	observed []domain.ViewModel
}

func (m *fakeMetrics) ObserveBrowse(_ domain.FilterState, vm domain.ViewModel) {
	m.observed = append(m.observed, vm)
}

type fakePublisher struct {
	published []domain.ViewingRequest
	err       error
}

func (p *fakePublisher) PublishViewingRequest(_ context.Context, req domain.ViewingRequest) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, req)
	return nil
}

type fakeContent struct {
	content *domain.MarketingContent
	err     error
}

func (c fakeContent) MarketingContent(context.Context) (*domain.MarketingContent, error) {
	return c.content, c.err
}

var errBroker = errors.New("broker unavailable")
