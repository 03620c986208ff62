package vinted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lukman83/vinted-relist/internal/httputil"
	"go.uber.org/zap"
)

// Credentials carries the two optional auth signals the private API expects
// alongside the session cookies. Either may be empty: requests are then sent
// without the corresponding header, which the API tolerates for some calls.
type Credentials struct {
	CSRFToken string
	AnonID    string
}

// Client talks to the marketplace's private item-upload API. Session cookies
// must already be present on the injected http.Client's jar.
type Client struct {
	http    *http.Client
	baseURL string
	log     *zap.Logger
}

// NewClient creates an API client for the given marketplace origin,
// e.g. https://www.vinted.fr.
func NewClient(httpClient *http.Client, baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{http: httpClient, baseURL: baseURL, log: log}
}

func (c *Client) itemUploadURL(itemID int64) string {
	return fmt.Sprintf("%s/api/v2/item_upload/items/%d", c.baseURL, itemID)
}

// FetchItemRecord reads the authoritative item record for one of the current
// user's listings. A 403 or 404 is surfaced as ForbiddenError: the read
// endpoint only serves items owned by the session.
func (c *Client) FetchItemRecord(ctx context.Context, itemID int64) (*ItemRecord, error) {
	endpoint := c.itemUploadURL(itemID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header = httputil.APIHeaders("", "")

	resp, err := httputil.DoWithRetry(c.http, req, 2)
	if err != nil {
		return nil, fmt.Errorf("fetch item %d: %w", itemID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusNotFound {
		return nil, &ForbiddenError{APIError{Status: resp.StatusCode, Endpoint: endpoint}}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Endpoint: endpoint}
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read item %d response: %w", itemID, err)
	}

	rec, err := ParseItemRecord(body)
	if err != nil {
		return nil, err
	}
	c.log.Debug("item record fetched",
		zap.Int64("item_id", itemID),
		zap.String("title", rec.Title),
		zap.Int("photos", len(rec.Photos)))
	return rec, nil
}

// CreatedItem is the relevant part of a successful create-item response.
type CreatedItem struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// CreateItem POSTs the assembled payload to the create-item endpoint.
func (c *Client) CreateItem(ctx context.Context, payload *CreateItemPayload, creds Credentials) (*CreatedItem, error) {
	endpoint := c.baseURL + "/api/v2/item_upload/items"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header = httputil.APIHeaders(creds.CSRFToken, creds.AnonID)
	req.Header.Set("Content-Type", "application/json")
	// Fixed feature flags the upload form always sends.
	req.Header.Set("X-Enable-Multiple-Size-Groups", "true")
	req.Header.Set("X-Upload-Form", "true")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	defer resp.Body.Close()

	respBody, readErr := httputil.ReadBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Best-effort diagnostics from the error body; tolerate junk.
		return nil, &SubmitError{Status: resp.StatusCode, Body: apiErrorDetail(respBody)}
	}
	if readErr != nil {
		return nil, fmt.Errorf("read create response: %w", readErr)
	}

	var created struct {
		Item *CreatedItem `json:"item"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil || created.Item == nil {
		return nil, fmt.Errorf("unexpected create response: %s", string(respBody))
	}
	c.log.Info("listing created", zap.Int64("item_id", created.Item.ID))
	return created.Item, nil
}

// DeleteItem removes an existing listing. Used by the relist flow after a
// successful creation; its failure always propagates so the caller never
// believes the source listing is gone when it is not.
func (c *Client) DeleteItem(ctx context.Context, itemID int64, creds Credentials) error {
	endpoint := fmt.Sprintf("%s/api/v2/items/%d/delete", c.baseURL, itemID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header = httputil.APIHeaders(creds.CSRFToken, creds.AnonID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", itemID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Endpoint: endpoint}
	}
	c.log.Info("listing deleted", zap.Int64("item_id", itemID))
	return nil
}

func apiErrorDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	if len(body) > 500 {
		body = body[:500]
	}
	return string(body)
}
