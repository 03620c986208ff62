package vinted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemRecord_Envelope(t *testing.T) {
	body := `{"item":{"id":42,"title":"Jacket","brand":{"id":53,"title":"Levi's"}}}`

	rec, err := ParseItemRecord([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, "Jacket", rec.Title)
	assert.Equal(t, int64p(53), rec.ResolveBrandID())
}

func TestParseItemRecord_TopLevel(t *testing.T) {
	body := `{"id":42,"title":"Jacket","brand_id":53}`

	rec, err := ParseItemRecord([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, int64p(53), rec.ResolveBrandID())
}

func TestParseItemRecord_Malformed(t *testing.T) {
	_, err := ParseItemRecord([]byte(`not json`))
	assert.Error(t, err)
}

func TestItemRecord_Resolvers(t *testing.T) {
	// Flat ids win over the nested refs.
	rec := &ItemRecord{
		BrandID: int64p(1),
		Brand:   &Ref{ID: 2, Title: "Nested"},
		Size:    &Ref{ID: 7, Title: "M"},
	}
	assert.Equal(t, int64p(1), rec.ResolveBrandID())
	assert.Equal(t, int64p(7), rec.ResolveSizeID())
	assert.Nil(t, rec.ResolveCatalogID())
	assert.Nil(t, rec.ResolveStatusID())
}

func TestItemRecord_Colors(t *testing.T) {
	rec := &ItemRecord{
		Color1: &Ref{ID: 1, Title: "Blue"},
		Color2: &Ref{ID: 9, Title: "Navy"},
	}
	assert.Equal(t, []int64{1, 9}, rec.ColorIDs())
	assert.Equal(t, []string{"Blue", "Navy"}, rec.ColorTitles())

	// A single flat id with no nested ref still counts.
	rec = &ItemRecord{Color1ID: int64p(4)}
	assert.Equal(t, []int64{4}, rec.ColorIDs())
	assert.Empty(t, rec.ColorTitles())

	assert.Empty(t, (&ItemRecord{}).ColorIDs())
}

func TestPrice_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    string
		present bool
	}{
		{name: "object", json: `{"price":{"amount":"25.5","currency_code":"EUR"}}`, want: "25.5", present: true},
		{name: "object numeric amount", json: `{"price":{"amount":25.5}}`, want: "25.5", present: true},
		{name: "bare number", json: `{"price":12}`, want: "12", present: true},
		{name: "numeric string", json: `{"price":"12.99"}`, want: "12.99", present: true},
		{name: "null", json: `{"price":null}`, present: false},
		{name: "absent", json: `{}`, present: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseItemRecord([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.present, rec.Price.Present)
			if tt.present {
				assert.Equal(t, tt.want, rec.Price.Amount)
			}
		})
	}
}

func TestPrice_Float(t *testing.T) {
	f, ok := Price{Amount: "25.5", Present: true}.Float()
	assert.True(t, ok)
	assert.Equal(t, 25.5, f)

	_, ok = Price{}.Float()
	assert.False(t, ok)

	_, ok = Price{Amount: "junk", Present: true}.Float()
	assert.False(t, ok)
}
