package vinted

import (
	"strings"

	"github.com/lukman83/vinted-relist/internal/models"
)

// BuildTemplate reconciles the authoritative API record with the fields
// scraped from the rendered listing page into one template. Pure merge, no
// I/O. Precedence per field:
//
//	numeric ids          record only (the page never exposes them)
//	title, description   record, page fallback
//	brand, condition     record title, page fallback
//	category, size       page only (absent from the read response)
//	colors               ids from record; names from record, page fallback
//	price, currency      record, normalized
//
// Either source may be missing entirely. The only hard requirement is a
// non-empty title; everything else degrades to empty.
func BuildTemplate(rec *ItemRecord, page models.ListingFields) (models.TemplateData, error) {
	if rec == nil {
		rec = &ItemRecord{}
	}

	data := models.TemplateData{
		Title:       firstNonEmpty(rec.Title, page.Title),
		Description: firstNonEmpty(rec.Description, page.Description),

		Brand:     firstNonEmpty(refTitle(rec.Brand), page.Brand),
		BrandID:   rec.ResolveBrandID(),
		Size:      page.Size,
		SizeID:    rec.ResolveSizeID(),
		Category:  page.Category,
		CatalogID: rec.ResolveCatalogID(),
		Status:    firstNonEmpty(refTitle(rec.Status), page.Condition),
		StatusID:  rec.ResolveStatusID(),

		ColorIDs: rec.ColorIDs(),
		Colors:   firstNonEmpty(strings.Join(rec.ColorTitles(), ", "), page.Colors),

		Currency:      firstNonEmpty(rec.Currency, rec.Price.CurrencyCode),
		PackageSizeID: rec.PackageSizeID,
		IsUnisex:      rec.IsUnisex,

		ItemAttributes: rec.ItemAttributes,

		ISBN:              rec.ISBN,
		Author:            rec.Author,
		BookTitle:         rec.BookTitle,
		VideoGameRatingID: rec.VideoGameRatingID,
	}

	if rec.Price.Present {
		data.Price = rec.Price.Amount
	}

	if strings.TrimSpace(data.Title) == "" {
		return models.TemplateData{}, &ValidationError{Field: "title", Reason: "missing from both the API record and the page"}
	}
	return data, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
