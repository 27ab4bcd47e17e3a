package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSourceLoadsValidCatalog(t *testing.T) {
	props, err := NewEmbeddedSource().LoadCatalog(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, props)

	snapshot, err := NewSnapshot(props)
	require.NoError(t, err)
	assert.Equal(t, len(props), snapshot.Len())

	p, ok := snapshot.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "Villa Pondok Indah", p.Title)
	assert.Equal(t, domain.PropertyTypeVilla, p.Type)
	assert.True(t, p.HasTab(domain.ListingModeRent))
	assert.NotNil(t, p.Presentation.Coordinates)
}

func TestDocumentSourceRejectsSchemaViolations(t *testing.T) {
	body := []byte(`{"properties":[{"id":1,"title":"X","location":"Y","type":"Castle",
		"tab":["Rent"],"rentalPeriod":[],"priceNumeric":1,"amenities":[],"beds":1,"baths":1}]}`)

	_, err := NewBytesSource("test", body).LoadCatalog(context.Background())
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	_, err := NewFileSource("")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	body := []byte(`{"properties":[{"id":7,"title":"Loft","location":"Kemang","type":"apartment",
		"tab":["rent"],"rentalPeriod":["short term"],"priceNumeric":480,"amenities":["gym"],"beds":1,"baths":1}]}`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	src, err := NewFileSource(path)
	require.NoError(t, err)

	_, err = src.LoadCatalog(context.Background())
	assert.Error(t, err, "schema enums are case sensitive")

	missing, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	_, err = missing.LoadCatalog(context.Background())
	assert.Error(t, err)
}

func TestSnapshotRejectsDuplicatesAndInvalidRecords(t *testing.T) {
	p := domain.Property{
		ID: 1, Title: "A", Type: domain.PropertyTypeHouse,
		Tab: []domain.ListingMode{}, RentalPeriod: []domain.RentalPeriod{}, Amenities: []domain.Amenity{},
	}

	_, err := NewSnapshot([]domain.Property{p, p})
	assert.ErrorIs(t, err, domain.ErrInvalidProperty)

	negative := p
	negative.PriceNumeric = -5
	_, err = NewSnapshot([]domain.Property{negative})
	assert.ErrorIs(t, err, domain.ErrInvalidProperty)

	nilSets := p
	nilSets.Amenities = nil
	_, err = NewSnapshot([]domain.Property{nilSets})
	assert.ErrorIs(t, err, domain.ErrInvalidProperty)
}

func TestMarketingSource(t *testing.T) {
	src, err := NewEmbeddedMarketingSource()
	require.NoError(t, err)

	content, err := src.MarketingContent(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, content.HeroSlides)
	assert.Len(t, content.FAQ, 3)
	require.NotEmpty(t, content.Map.Markers)

	for _, m := range content.Map.Markers {
		assert.Len(t, m.Geohash, markerGeohashPrecision)
	}
	assert.Equal(t, 13, content.Map.Zoom)

	_, err = NewMarketingSource([]byte(`{"heroSlides":[]}`))
	assert.Error(t, err)
}
