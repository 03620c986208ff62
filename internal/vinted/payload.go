package vinted

import (
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/lukman83/vinted-relist/internal/models"
)

// legacyDefaultPrice is what the upstream form fell back to when the source
// carried no price. Substituting it silently risks publishing an underpriced
// listing, so it is only applied behind PayloadOptions.AllowDefaultPrice.
const legacyDefaultPrice = 10

const (
	defaultStatusID      = 2 // "good condition"
	defaultPackageSizeID = 1 // small package
)

// ShipmentPrices mirrors the create-item contract; both fields are always null.
type ShipmentPrices struct {
	Domestic      *float64 `json:"domestic"`
	International *float64 `json:"international"`
}

// PayloadItem is the item body of the create-item contract. Field names are
// fixed by the marketplace API and must not be renamed.
type PayloadItem struct {
	ID                    *int64            `json:"id"`
	Currency              string            `json:"currency"`
	TempUUID              string            `json:"temp_uuid"`
	Title                 string            `json:"title"`
	Description           string            `json:"description"`
	BrandID               *int64            `json:"brand_id"`
	Brand                 string            `json:"brand"`
	SizeID                *int64            `json:"size_id"`
	CatalogID             *int64            `json:"catalog_id"`
	ISBN                  *string           `json:"isbn"`
	Author                *string           `json:"author"`
	BookTitle             *string           `json:"book_title"`
	Model                 *string           `json:"model"`
	VideoGameRatingID     *int64            `json:"video_game_rating_id"`
	IsUnisex              bool              `json:"is_unisex"`
	StatusID              int64             `json:"status_id"`
	Price                 float64           `json:"price"`
	PackageSizeID         int64             `json:"package_size_id"`
	ShipmentPrices        ShipmentPrices    `json:"shipment_prices"`
	ColorIDs              []int64           `json:"color_ids"`
	AssignedPhotos        []UploadedPhoto   `json:"assigned_photos"`
	ItemAttributes        []json.RawMessage `json:"item_attributes"`
	Manufacturer          *string           `json:"manufacturer"`
	ManufacturerLabelling *string           `json:"manufacturer_labelling"`
	MeasurementLength     *float64          `json:"measurement_length"`
	MeasurementWidth      *float64          `json:"measurement_width"`
	MeasurementUnit       *string           `json:"measurement_unit"`
}

// CreateItemPayload is the full body POSTed to the create-item endpoint.
type CreateItemPayload struct {
	Item            PayloadItem     `json:"item"`
	FeedbackID      *int64          `json:"feedback_id"`
	PushUp          bool            `json:"push_up"`
	Parcel          json.RawMessage `json:"parcel"`
	UploadSessionID string          `json:"upload_session_id"`
}

// PayloadOptions tune payload construction.
type PayloadOptions struct {
	// Currency applies when the template carries none. Defaults to EUR.
	Currency string
	// AllowDefaultPrice restores the legacy behaviour of substituting a
	// minimum price when the template has none. Off by default: a missing
	// price is a validation error instead.
	AllowDefaultPrice bool
}

// BuildCreateItemPayload assembles the create-item body from a template and
// the photos uploaded under one session UUID. A fresh UUID v4 is generated
// and used for both item.temp_uuid and upload_session_id.
func BuildCreateItemPayload(data models.TemplateData, photos []UploadedPhoto, opts PayloadOptions) (*CreateItemPayload, error) {
	if data.Title == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}

	price, err := resolvePrice(data.Price, opts.AllowDefaultPrice)
	if err != nil {
		return nil, err
	}

	currency := data.Currency
	if currency == "" {
		currency = opts.Currency
	}
	if currency == "" {
		currency = "EUR"
	}

	statusID := int64(defaultStatusID)
	if data.StatusID != nil {
		statusID = *data.StatusID
	}
	packageSizeID := int64(defaultPackageSizeID)
	if data.PackageSizeID != nil {
		packageSizeID = *data.PackageSizeID
	}

	colorIDs := data.ColorIDs
	if colorIDs == nil {
		colorIDs = []int64{}
	}
	attrs := data.ItemAttributes
	if attrs == nil {
		attrs = []json.RawMessage{}
	}
	if photos == nil {
		photos = []UploadedPhoto{}
	}

	sessionUUID := uuid.NewString()

	return &CreateItemPayload{
		Item: PayloadItem{
			Currency:          currency,
			TempUUID:          sessionUUID,
			Title:             data.Title,
			Description:       data.Description,
			BrandID:           data.BrandID,
			Brand:             data.Brand,
			SizeID:            data.SizeID,
			CatalogID:         data.CatalogID,
			ISBN:              optString(data.ISBN),
			Author:            optString(data.Author),
			BookTitle:         optString(data.BookTitle),
			VideoGameRatingID: data.VideoGameRatingID,
			IsUnisex:          data.IsUnisex,
			StatusID:          statusID,
			Price:             price,
			PackageSizeID:     packageSizeID,
			ColorIDs:          colorIDs,
			AssignedPhotos:    photos,
			ItemAttributes:    attrs,
		},
		UploadSessionID: sessionUUID,
	}, nil
}

func resolvePrice(raw string, allowDefault bool) (float64, error) {
	if raw == "" {
		if allowDefault {
			return legacyDefaultPrice, nil
		}
		return 0, &ValidationError{Field: "price", Reason: "missing from template; set one or enable the default-price fallback"}
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		return 0, &ValidationError{Field: "price", Reason: "not a positive number: " + raw}
	}
	return price, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
