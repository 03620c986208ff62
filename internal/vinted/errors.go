package vinted

import (
	"errors"
	"fmt"
)

// ErrNoPhotos is returned when a listing would be created with zero photos.
var ErrNoPhotos = errors.New("at least one photo is required")

// APIError is a non-2xx response from the marketplace API.
type APIError struct {
	Status   int
	Endpoint string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d on %s", e.Status, e.Endpoint)
}

// ForbiddenError means the item-read endpoint refused the request: the item
// upload read API is scoped to the caller's own listings, so a 403/404 here
// means "not your listing", not "gone".
type ForbiddenError struct {
	APIError
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: item is not owned by the current session (status %d)", e.Status)
}

// ValidationError marks a template or payload field that fails the minimum
// requirements for creating a listing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DownloadError is a failed photo download from an external host.
type DownloadError struct {
	Status int
	URL    string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed: status %d for %s", e.Status, e.URL)
}

// UploadError is a rejected or malformed photo upload.
type UploadError struct {
	Status int
	Reason string
}

func (e *UploadError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("photo upload failed: %s (status %d)", e.Reason, e.Status)
	}
	return fmt.Sprintf("photo upload failed: status %d", e.Status)
}

// SubmitError is a rejected create-item call. Body carries the API's error
// payload when one could be read; it may be empty.
type SubmitError struct {
	Status int
	Body   string
}

func (e *SubmitError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("create listing failed: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("create listing failed: status %d", e.Status)
}
