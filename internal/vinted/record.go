package vinted

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Ref is a referenced taxonomy entity as the API nests it: {id, title}.
type Ref struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Price normalizes the record's price field, which the API serves either as
// a bare number, a numeric string, or an object with an "amount" field.
type Price struct {
	Amount       string
	CurrencyCode string
	Present      bool
}

func (p *Price) UnmarshalJSON(b []byte) error {
	var obj struct {
		Amount       json.Number `json:"amount"`
		CurrencyCode string      `json:"currency_code"`
	}
	if err := json.Unmarshal(b, &obj); err == nil && obj.Amount != "" {
		p.Amount = obj.Amount.String()
		p.CurrencyCode = obj.CurrencyCode
		p.Present = true
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil && num != "" {
		p.Amount = num.String()
		p.Present = true
		return nil
	}

	// null or an unrecognized shape: leave the price absent
	return nil
}

// Float parses the normalized amount. Returns false when absent or malformed.
func (p Price) Float() (float64, bool) {
	if !p.Present {
		return 0, false
	}
	f, err := strconv.ParseFloat(p.Amount, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// RecordPhoto is one photo descriptor on a fetched item record.
type RecordPhoto struct {
	ID          int64  `json:"id"`
	Orientation int    `json:"orientation"`
	URL         string `json:"url"`
	FullSizeURL string `json:"full_size_url"`
}

// ItemRecord is the authoritative item returned by the item-upload read
// endpoint. It is the only source of the internal numeric ids the listing
// page never exposes. Flat *_id fields and nested refs are both tolerated;
// use the resolver methods instead of reading fields directly.
type ItemRecord struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	BrandID   *int64 `json:"brand_id"`
	Brand     *Ref   `json:"brand"`
	SizeID    *int64 `json:"size_id"`
	Size      *Ref   `json:"size"`
	CatalogID *int64 `json:"catalog_id"`
	Catalog   *Ref   `json:"catalog"`
	StatusID  *int64 `json:"status_id"`
	Status    *Ref   `json:"status"`

	Color1ID *int64 `json:"color1_id"`
	Color1   *Ref   `json:"color1"`
	Color2ID *int64 `json:"color2_id"`
	Color2   *Ref   `json:"color2"`

	Price         Price  `json:"price"`
	Currency      string `json:"currency"`
	IsUnisex      bool   `json:"is_unisex"`
	PackageSizeID *int64 `json:"package_size_id"`

	ItemAttributes []json.RawMessage `json:"item_attributes"`

	ISBN              string `json:"isbn"`
	Author            string `json:"author"`
	BookTitle         string `json:"book_title"`
	VideoGameRatingID *int64 `json:"video_game_rating_id"`

	Photos []RecordPhoto `json:"photos"`
}

// ParseItemRecord decodes an item-read response body. The endpoint serves
// either {"item": {...}} or the item fields at the top level; both are
// accepted.
func ParseItemRecord(body []byte) (*ItemRecord, error) {
	var env struct {
		Item *ItemRecord `json:"item"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Item != nil {
		return env.Item, nil
	}

	var rec ItemRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("parse item record: %w", err)
	}
	return &rec, nil
}

func refID(flat *int64, ref *Ref) *int64 {
	if flat != nil {
		return flat
	}
	if ref != nil && ref.ID != 0 {
		id := ref.ID
		return &id
	}
	return nil
}

func refTitle(ref *Ref) string {
	if ref != nil {
		return ref.Title
	}
	return ""
}

// ResolveBrandID returns the brand id from either representation.
func (r *ItemRecord) ResolveBrandID() *int64 { return refID(r.BrandID, r.Brand) }

// ResolveSizeID returns the size id from either representation.
func (r *ItemRecord) ResolveSizeID() *int64 { return refID(r.SizeID, r.Size) }

// ResolveCatalogID returns the catalog id from either representation.
func (r *ItemRecord) ResolveCatalogID() *int64 { return refID(r.CatalogID, r.Catalog) }

// ResolveStatusID returns the condition id from either representation.
func (r *ItemRecord) ResolveStatusID() *int64 { return refID(r.StatusID, r.Status) }

// ColorIDs collects the up-to-two color ids carried by the record.
func (r *ItemRecord) ColorIDs() []int64 {
	var ids []int64
	for _, c := range []*int64{refID(r.Color1ID, r.Color1), refID(r.Color2ID, r.Color2)} {
		if c != nil {
			ids = append(ids, *c)
		}
	}
	return ids
}

// ColorTitles collects the color display names present on the record.
func (r *ItemRecord) ColorTitles() []string {
	var titles []string
	for _, ref := range []*Ref{r.Color1, r.Color2} {
		if t := refTitle(ref); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}
