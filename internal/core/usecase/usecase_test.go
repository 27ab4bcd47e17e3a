package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/engine"
	"github.com/ayleenrq/urbane/internal/core/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() fakeCatalog {
	return fakeCatalog{
		prop(1, domain.PropertyTypeVilla, 640),
		prop(2, domain.PropertyTypeHouse, 450, domain.ListingModeRent, domain.ListingModeBuy),
		prop(3, domain.PropertyTypeVilla, 800),
		prop(4, domain.PropertyTypeVilla, 300, domain.ListingModeBuy),
		prop(5, domain.PropertyTypeApartment, 150),
		prop(6, domain.PropertyTypeVilla, 990),
		prop(7, domain.PropertyTypeVilla, 2000, domain.ListingModeSell),
	}
}

func TestBrowseProperties(t *testing.T) {
	metrics := &fakeMetrics{}
	uc := NewBrowsePropertiesUseCase(catalogFixture(), metrics)

	state := domain.DefaultFilterState(2, 5000)
	vm, err := uc.Execute(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 5, vm.TotalMatches)
	assert.Equal(t, 3, vm.TotalPages)
	require.Len(t, metrics.observed, 1)

	state.SortBy = "newest"
	_, err = uc.Execute(context.Background(), state)
	assert.ErrorIs(t, err, domain.ErrInvalidSortKey)
	assert.Len(t, metrics.observed, 1)
}

func TestBrowsePropertiesWithoutMetrics(t *testing.T) {
	uc := NewBrowsePropertiesUseCase(catalogFixture(), nil)
	vm, err := uc.Execute(context.Background(), domain.DefaultFilterState(8, 100))
	require.NoError(t, err)
	assert.True(t, vm.IsEmpty())
	assert.Equal(t, 1, vm.CurrentPage)
}

func TestBrowseRejectionsByPredicate(t *testing.T) {
	state := domain.DefaultFilterState(8, 100)
	counts := rejections(catalogFixture(), state)

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(catalogFixture()), total)
	assert.Positive(t, counts[engine.PredicatePrice])
}

func TestGetPropertyDetailsRelated(t *testing.T) {
	uc := NewGetPropertyDetailsUseCase(catalogFixture())

	view, err := uc.Execute(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Property.ID)

	var relatedIDs []int
	for _, p := range view.Related {
		relatedIDs = append(relatedIDs, p.ID)
	}
	assert.Equal(t, []int{1, 4, 6}, relatedIDs)

	view, err = uc.Execute(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, view.Related)

	_, err = uc.Execute(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestGetFeaturedProperties(t *testing.T) {
	catalog := catalogFixture()
	catalog[1].Featured = true
	catalog[4].Featured = true

	featured, err := NewGetFeaturedPropertiesUseCase(catalog).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, 2, featured[0].ID)
	assert.Equal(t, 5, featured[1].ID)
}

func TestGetFeaturedPropertiesFallback(t *testing.T) {
	catalog := catalogFixture()

	featured, err := NewGetFeaturedPropertiesUseCase(catalog).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, 1, featured[0].ID)
	assert.True(t, featured[0].Featured)
	assert.False(t, catalog[0].Featured, "catalog record must not change")

	featured, err = NewGetFeaturedPropertiesUseCase(fakeCatalog{}).Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, featured)
}

func TestGetFilterOptions(t *testing.T) {
	uc := NewGetFilterOptionsUseCase(catalogFixture())

	opts, err := uc.Execute(context.Background(), domain.ListingModeBuy)
	require.NoError(t, err)
	assert.Equal(t, 2, opts.Total)
	assert.Equal(t, 300.0, opts.PriceMin)
	assert.Equal(t, 450.0, opts.PriceMax)
	assert.Equal(t, 1, opts.CountsByType[domain.PropertyTypeHouse])
	assert.Equal(t, 0, opts.CountsByType[domain.PropertyTypeResidential])
	assert.Equal(t, domain.TypeFilterAll, opts.Types[0])

	opts, err = uc.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, opts.Total)
	assert.Equal(t, 2000.0, opts.PriceMax)
}

func TestGetHomePage(t *testing.T) {
	content := &domain.MarketingContent{
		HeroSlides: []domain.HeroSlide{{Title: "Find your home"}},
		FAQ:        []domain.FAQItem{{Question: "Q", Answer: "A"}},
		Map: domain.MapView{
			Center:  domain.Coordinates{Lat: -6.26, Lng: 106.805},
			Zoom:    13,
			Markers: []domain.MapMarker{{ID: 1, Geohash: "qqguy2k"}},
		},
	}
	catalog := catalogFixture()
	catalog[2].Featured = true

	uc := NewGetHomePageUseCase(fakeContent{content: content}, NewGetFeaturedPropertiesUseCase(catalog))
	page, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, page.HeroSlides, 1)
	require.Len(t, page.Featured, 1)
	assert.Equal(t, 3, page.Featured[0].ID)
	assert.Equal(t, 13, page.Map.Zoom)

	_, err = NewGetHomePageUseCase(fakeContent{err: assert.AnError}, NewGetFeaturedPropertiesUseCase(catalog)).Execute(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetMapMarkers(t *testing.T) {
	content := &domain.MarketingContent{Map: domain.MapView{Zoom: 13, Markers: []domain.MapMarker{{ID: 1}, {ID: 3}}}}

	view, err := NewGetMapMarkersUseCase(fakeContent{content: content}).Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, view.Markers, 2)

	_, err = NewGetMapMarkersUseCase(fakeContent{err: assert.AnError}).Execute(context.Background())
	assert.Error(t, err)
}

func TestSendViewingRequest(t *testing.T) {
	pub := &fakePublisher{}
	uc := NewSendViewingRequestUseCase(catalogFixture(), pub)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	req, err := uc.Execute(context.Background(), domain.ViewingRequest{
		PropertyID: 3,
		Name:       "  Dewi  ",
		Email:      "dewi@example.com",
		Source:     domain.ViewingSourceDetailPage,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, req.ID)
	assert.Equal(t, fixed, req.CreatedAt)
	assert.Equal(t, "Dewi", req.Name)
	require.Len(t, pub.published, 1)
	assert.Equal(t, req.ID, pub.published[0].ID)
}

func TestSendViewingRequestRejects(t *testing.T) {
	pub := &fakePublisher{}
	uc := NewSendViewingRequestUseCase(catalogFixture(), pub)

	_, err := uc.Execute(context.Background(), domain.ViewingRequest{Name: "A", Email: "not-an-email", Source: domain.ViewingSourceCTA})
	assert.ErrorIs(t, err, domain.ErrInvalidViewingRequest)

	_, err = uc.Execute(context.Background(), domain.ViewingRequest{PropertyID: 99, Name: "A", Email: "a@b.co", Source: domain.ViewingSourceMap})
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)

	assert.Empty(t, pub.published)

	pub.err = errBroker
	_, err = uc.Execute(context.Background(), domain.ViewingRequest{Name: "A", Email: "a@b.co", Source: domain.ViewingSourceCTA})
	assert.ErrorIs(t, err, errBroker)
}

func TestManageSession(t *testing.T) {
	manager, err := session.NewManager(catalogFixture(), domain.DefaultFilterState(8, 5000), time.Minute)
	require.NoError(t, err)
	uc := NewManageSessionUseCase(manager)
	ctx := context.Background()

	snap, err := uc.Create(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.View.TotalMatches)

	snap, err = uc.Apply(ctx, snap.ID, []domain.SessionCommand{
		{Op: domain.OpSetType, Value: "Villa"},
		{Op: domain.OpSetMaxPrice, Value: "900"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, snap.View.TotalMatches)
	assert.Equal(t, domain.PropertyTypeVilla, snap.State.TypeFilter)

	// первая команда применится, вторая нет
	_, err = uc.Apply(ctx, snap.ID, []domain.SessionCommand{
		{Op: domain.OpSetMaxPrice, Value: "700"},
		{Op: "fly"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSessionCommand)

	got, err := uc.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 700.0, got.State.MaxPrice)
	assert.Equal(t, 1, got.View.TotalMatches)

	require.NoError(t, uc.Delete(ctx, snap.ID))
	_, err = uc.Get(ctx, snap.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = uc.Apply(ctx, snap.ID, nil)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
