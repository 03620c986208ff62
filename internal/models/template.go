package models

import (
	"encoding/json"
	"time"
)

// TemplateData is the canonical saved snapshot of one listing's metadata.
// Taxonomy fields are dual-represented: the human-readable name (scraped from
// the listing page, used for display and form matching) and the marketplace's
// internal numeric id (from the item-upload API, used for direct creation).
// Everything except Title is optional.
type TemplateData struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	Brand     string `json:"brand,omitempty"`
	BrandID   *int64 `json:"brand_id,omitempty"`
	Size      string `json:"size,omitempty"`
	SizeID    *int64 `json:"size_id,omitempty"`
	Category  string `json:"category,omitempty"`
	CatalogID *int64 `json:"catalog_id,omitempty"`
	Status    string `json:"status,omitempty"`
	StatusID  *int64 `json:"status_id,omitempty"`

	// Colors is the comma-joined display string, ColorIDs the numeric ids.
	Colors   string  `json:"colors,omitempty"`
	ColorIDs []int64 `json:"color_ids,omitempty"`

	Price         string `json:"price,omitempty"`
	Currency      string `json:"currency,omitempty"`
	PackageSizeID *int64 `json:"package_size_id,omitempty"`
	IsUnisex      bool   `json:"is_unisex,omitempty"`

	// ItemAttributes are opaque marketplace attribute descriptors,
	// passed through unchanged.
	ItemAttributes []json.RawMessage `json:"item_attributes,omitempty"`

	// Book listings
	ISBN      string `json:"isbn,omitempty"`
	Author    string `json:"author,omitempty"`
	BookTitle string `json:"book_title,omitempty"`

	// Video game listings
	VideoGameRating   string `json:"video_game_rating,omitempty"`
	VideoGameRatingID *int64 `json:"video_game_rating_id,omitempty"`
}

// Template is one saved entry in the template store.
type Template struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"created_at"`
	Data      TemplateData `json:"data"`
}
