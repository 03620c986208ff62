package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsListingPage(t *testing.T) {
	assert.True(t, IsListingPage("https://www.vinted.fr/items/123456-blue-jacket"))
	assert.True(t, IsListingPage("https://www.vinted.de/items/9"))
	assert.False(t, IsListingPage("https://www.vinted.fr/items/new"))
	assert.False(t, IsListingPage("https://www.vinted.fr/catalog/1234-shoes"))
	assert.False(t, IsListingPage("https://example.com/"))
}

func TestIsCreatePage(t *testing.T) {
	assert.True(t, IsCreatePage("https://www.vinted.fr/items/new"))
	assert.True(t, IsCreatePage("https://www.vinted.fr/upload"))
	assert.False(t, IsCreatePage("https://www.vinted.fr/items/123456"))
}

func TestItemIDFromURL(t *testing.T) {
	id, err := ItemIDFromURL("https://www.vinted.fr/items/123456-blue-jacket")
	require.NoError(t, err)
	assert.Equal(t, int64(123456), id)

	_, err = ItemIDFromURL("https://www.vinted.fr/catalog/shoes")
	assert.Error(t, err)
}
