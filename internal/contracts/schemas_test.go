package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromPath(t *testing.T) {
	assert.Equal(t, "Catalog/1.0.0", keyFromPath("schemas/catalog/v1.json"))
	assert.Equal(t, "ViewingRequest/2.0.0", keyFromPath("schemas/viewing-request/v2.json"))
	assert.Equal(t, "", keyFromPath("schemas/v1.json"))
}

func TestValidateCatalog(t *testing.T) {
	valid := []byte(`{"properties":[{"id":1,"title":"Villa","location":"Kemang","type":"Villa",
		"tab":["Rent"],"rentalPeriod":[],"priceNumeric":640,"amenities":["Pool"],"beds":3,"baths":2}]}`)
	require.NoError(t, Validate(CatalogV1, valid))

	negativePrice := []byte(`{"properties":[{"id":1,"title":"Villa","location":"Kemang","type":"Villa",
		"tab":["Rent"],"rentalPeriod":[],"priceNumeric":-1,"amenities":[],"beds":3,"baths":2}]}`)
	assert.Error(t, Validate(CatalogV1, negativePrice))

	unknownAmenity := []byte(`{"properties":[{"id":1,"title":"Villa","location":"Kemang","type":"Villa",
		"tab":["Rent"],"rentalPeriod":[],"priceNumeric":1,"amenities":["Sauna"],"beds":3,"baths":2}]}`)
	assert.Error(t, Validate(CatalogV1, unknownAmenity))
}

func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("Nope/1.0.0", []byte(`{}`))
	assert.ErrorContains(t, err, "not found")
}

func TestValidateRejectsBrokenJSON(t *testing.T) {
	assert.Error(t, Validate(CatalogV1, []byte(`{"properties":`)))
}
