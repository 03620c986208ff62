package models

// ListingFields holds the human-readable fields scraped from a rendered
// listing page. Every field is best-effort: a missing element leaves the
// field empty and records its name in Missing.
type ListingFields struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Size        string `json:"size,omitempty"`
	Category    string `json:"category,omitempty"`
	Condition   string `json:"condition,omitempty"`
	Colors      string `json:"colors,omitempty"`

	Missing []string `json:"-"`
}
