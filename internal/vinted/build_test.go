package vinted

import (
	"testing"

	"github.com/lukman83/vinted-relist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTemplate_RecordWins(t *testing.T) {
	rec := &ItemRecord{
		Title:       "API Title",
		Description: "API description",
		Brand:       &Ref{ID: 53, Title: "Levi's"},
		Status:      &Ref{ID: 2, Title: "Very good"},
		SizeID:      int64p(4),
		CatalogID:   int64p(1231),
		Color1:      &Ref{ID: 1, Title: "Blue"},
		Color2:      &Ref{ID: 9, Title: "Navy"},
		Currency:    "EUR",
		IsUnisex:    true,
	}
	rec.Price = Price{Amount: "25.5", Present: true}

	page := models.ListingFields{
		Title:       "Page Title",
		Description: "Page description",
		Brand:       "Page Brand",
		Size:        "M",
		Category:    "Jackets",
		Condition:   "Page condition",
		Colors:      "Page colors",
	}

	data, err := BuildTemplate(rec, page)
	require.NoError(t, err)

	assert.Equal(t, "API Title", data.Title)
	assert.Equal(t, "API description", data.Description)
	assert.Equal(t, "Levi's", data.Brand)
	assert.Equal(t, int64p(53), data.BrandID)
	assert.Equal(t, "Very good", data.Status)
	assert.Equal(t, int64p(2), data.StatusID)
	assert.Equal(t, []int64{1, 9}, data.ColorIDs)
	assert.Equal(t, "Blue, Navy", data.Colors)
	assert.Equal(t, "25.5", data.Price)
	assert.Equal(t, "EUR", data.Currency)
	assert.True(t, data.IsUnisex)

	// Size and category only ever come from the page.
	assert.Equal(t, "M", data.Size)
	assert.Equal(t, int64p(4), data.SizeID)
	assert.Equal(t, "Jackets", data.Category)
	assert.Equal(t, int64p(1231), data.CatalogID)
}

func TestBuildTemplate_PageFallback(t *testing.T) {
	rec := &ItemRecord{}
	page := models.ListingFields{
		Title:       "Page Title",
		Description: "Page description",
		Brand:       "Page Brand",
		Condition:   "Good",
		Colors:      "Red",
	}

	data, err := BuildTemplate(rec, page)
	require.NoError(t, err)

	assert.Equal(t, "Page Title", data.Title)
	assert.Equal(t, "Page description", data.Description)
	assert.Equal(t, "Page Brand", data.Brand)
	assert.Nil(t, data.BrandID)
	assert.Equal(t, "Good", data.Status)
	assert.Equal(t, "Red", data.Colors)
	assert.Empty(t, data.ColorIDs)
}

func TestBuildTemplate_NilRecord(t *testing.T) {
	data, err := BuildTemplate(nil, models.ListingFields{Title: "DOM only"})
	require.NoError(t, err)
	assert.Equal(t, "DOM only", data.Title)
}

func TestBuildTemplate_MissingTitle(t *testing.T) {
	_, err := BuildTemplate(&ItemRecord{}, models.ListingFields{Description: "no title anywhere"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestBuildTemplate_CurrencyFromPriceObject(t *testing.T) {
	rec := &ItemRecord{Title: "x"}
	rec.Price = Price{Amount: "9.99", CurrencyCode: "PLN", Present: true}

	data, err := BuildTemplate(rec, models.ListingFields{})
	require.NoError(t, err)
	assert.Equal(t, "PLN", data.Currency)
	assert.Equal(t, "9.99", data.Price)
}
