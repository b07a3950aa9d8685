package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() *Product {
	catID := "cat-electronics"
	discount := int64(39999)
	return &Product{
		ID:               "prod-1",
		Name:             "Galaxy S24",
		Slug:             "galaxy-s24",
		Description:      "Flagship smartphone",
		ShortDescription: "6.2 inch flagship",
		SKU:              "GS24-128-BLK",
		BasePrice:        42999,
		DiscountPrice:    &discount,
		Currency:         "TRY",
		CategoryID:       &catID,
		Brand:            &BrandRef{ID: "brand-samsung", Name: "Samsung"},
		IsActive:         true,
		IsFeatured:       true,
		CreatedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestDocumentFromProduct_MapsAllFields(t *testing.T) {
	p := testProduct()

	doc := DocumentFromProduct(p)

	assert.Equal(t, p.ID, doc.ID)
	assert.Equal(t, p.Name, doc.Name)
	assert.Equal(t, p.Slug, doc.Slug)
	assert.Equal(t, p.Description, doc.Description)
	assert.Equal(t, p.ShortDescription, doc.ShortDescription)
	assert.Equal(t, p.SKU, doc.SKU)
	assert.Equal(t, "cat-electronics", doc.CategoryID)
	assert.Equal(t, "brand-samsung", doc.BrandID)
	assert.Equal(t, "Samsung", doc.BrandName)
	assert.Equal(t, p.BasePrice, doc.BasePrice)
	require.NotNil(t, doc.DiscountPrice)
	assert.Equal(t, *p.DiscountPrice, *doc.DiscountPrice)
	assert.Equal(t, p.Currency, doc.Currency)
	assert.True(t, doc.IsActive)
	assert.True(t, doc.IsFeatured)
	assert.Equal(t, p.CreatedAt, doc.CreatedAt)
	assert.Equal(t, p.UpdatedAt, doc.UpdatedAt)
}

func TestDocumentFromProduct_Deterministic(t *testing.T) {
	p := testProduct()

	first := DocumentFromProduct(p)
	second := DocumentFromProduct(p)

	assert.Equal(t, first, second)
}

func TestDocumentFromProduct_MissingBrand(t *testing.T) {
	p := testProduct()
	p.Brand = nil

	doc := DocumentFromProduct(p)

	assert.Empty(t, doc.BrandID)
	assert.Empty(t, doc.BrandName)
	assert.Equal(t, p.ID, doc.ID)
}

func TestDocumentFromProduct_MissingCategory(t *testing.T) {
	p := testProduct()
	p.CategoryID = nil

	doc := DocumentFromProduct(p)

	assert.Empty(t, doc.CategoryID)
}

func TestDocumentFromProduct_IDMirrorsCatalogID(t *testing.T) {
	p := testProduct()
	p.ID = "some-opaque-id"

	doc := DocumentFromProduct(p)

	assert.Equal(t, "some-opaque-id", doc.ID)
}

func TestEmptyResult(t *testing.T) {
	r := EmptyResult(3, 25)

	assert.Equal(t, 0, r.Total)
	assert.Empty(t, r.Products)
	assert.NotNil(t, r.Products)
	assert.Equal(t, 3, r.Page)
	assert.Equal(t, 25, r.PerPage)
}

func TestIsValidSort(t *testing.T) {
	for _, s := range ValidSortOptions() {
		assert.True(t, IsValidSort(s), s)
	}
	assert.False(t, IsValidSort("alphabetical"))
	assert.False(t, IsValidSort(""))
}
