package vinted

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/lukman83/vinted-relist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidV4Re = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{4}-[0-9a-f]{12}$`)

func int64p(v int64) *int64 { return &v }

func TestBuildCreateItemPayload(t *testing.T) {
	data := models.TemplateData{
		Title:       "Blue Denim Jacket",
		Description: "Barely worn.",
		Brand:       "Levi's",
		BrandID:     int64p(53),
		SizeID:      int64p(4),
		CatalogID:   int64p(1231),
		StatusID:    int64p(1),
		ColorIDs:    []int64{1, 9},
		Price:       "25.50",
		Currency:    "EUR",
		IsUnisex:    true,
	}
	photos := []UploadedPhoto{{ID: 101, Orientation: 0}, {ID: 102, Orientation: 90}}

	payload, err := BuildCreateItemPayload(data, photos, PayloadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Blue Denim Jacket", payload.Item.Title)
	assert.Equal(t, "Barely worn.", payload.Item.Description)
	assert.Equal(t, int64p(53), payload.Item.BrandID)
	assert.Equal(t, "Levi's", payload.Item.Brand)
	assert.Equal(t, int64p(4), payload.Item.SizeID)
	assert.Equal(t, int64p(1231), payload.Item.CatalogID)
	assert.Equal(t, int64(1), payload.Item.StatusID)
	assert.Equal(t, []int64{1, 9}, payload.Item.ColorIDs)
	assert.Equal(t, 25.50, payload.Item.Price)
	assert.Equal(t, "EUR", payload.Item.Currency)
	assert.True(t, payload.Item.IsUnisex)
	assert.Equal(t, photos, payload.Item.AssignedPhotos)

	// One fresh v4 UUID shared between the item and the session.
	assert.Regexp(t, uuidV4Re, payload.UploadSessionID)
	assert.Equal(t, payload.UploadSessionID, payload.Item.TempUUID)

	// Shipment prices always serialize as explicit nulls.
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"shipment_prices":{"domestic":null,"international":null}`)
}

func TestBuildCreateItemPayload_Defaults(t *testing.T) {
	payload, err := BuildCreateItemPayload(models.TemplateData{
		Title: "Plain item",
		Price: "5",
	}, nil, PayloadOptions{})
	require.NoError(t, err)

	assert.Equal(t, int64(defaultStatusID), payload.Item.StatusID)
	assert.Equal(t, int64(defaultPackageSizeID), payload.Item.PackageSizeID)
	assert.Equal(t, "EUR", payload.Item.Currency)

	// Collections marshal as [] rather than null.
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"color_ids":[]`)
	assert.Contains(t, string(raw), `"assigned_photos":[]`)
	assert.Contains(t, string(raw), `"item_attributes":[]`)
}

func TestBuildCreateItemPayload_ConfiguredCurrency(t *testing.T) {
	payload, err := BuildCreateItemPayload(models.TemplateData{
		Title: "Plain item",
		Price: "5",
	}, nil, PayloadOptions{Currency: "PLN"})
	require.NoError(t, err)
	assert.Equal(t, "PLN", payload.Item.Currency)
}

func TestBuildCreateItemPayload_MissingTitle(t *testing.T) {
	_, err := BuildCreateItemPayload(models.TemplateData{Price: "5"}, nil, PayloadOptions{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestResolvePrice(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		allowDefault bool
		want         float64
		wantErr      bool
	}{
		{name: "plain number", raw: "25.50", want: 25.50},
		{name: "integer", raw: "10", want: 10},
		{name: "missing without fallback", raw: "", wantErr: true},
		{name: "missing with fallback", raw: "", allowDefault: true, want: legacyDefaultPrice},
		{name: "not a number", raw: "cheap", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvePrice(tt.raw, tt.allowDefault)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "price", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
