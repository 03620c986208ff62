package vinted

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lukman83/vinted-relist/internal/models"
	"github.com/lukman83/vinted-relist/internal/progress"
	"go.uber.org/zap"
)

// RelistOptions control one relist run.
type RelistOptions struct {
	// DeleteSource removes the original listing, strictly after the new one
	// was created. A failed creation never touches the source.
	DeleteSource bool
	// ReusePhotos assigns the source record's existing photo ids to the new
	// listing instead of downloading and re-uploading the files.
	ReusePhotos bool
	// MaxDownloads bounds concurrent photo downloads.
	MaxDownloads int
	// Creds are the optional auth headers resolved from the live session.
	Creds Credentials
	// OnPhotoProgress is invoked after each photo upload with (done, total).
	OnPhotoProgress ProgressFunc
}

// RelistResult summarizes a completed relist.
type RelistResult struct {
	SourceID       int64  `json:"source_id"`
	NewID          int64  `json:"new_id"`
	NewURL         string `json:"new_url,omitempty"`
	PhotosUploaded int    `json:"photos_uploaded"`
	PhotosFailed   int    `json:"photos_failed"`
	SourceDeleted  bool   `json:"source_deleted"`
}

// Relister runs the relist sequence:
// fetch source → upload photos → build payload → create new → delete source.
// Every step fails fast; the error names the step that broke.
type Relister struct {
	client *Client
	photos *PhotoPipeline
	opts   PayloadOptions
	log    *zap.Logger
}

// NewRelister wires the relist workflow.
func NewRelister(client *Client, photos *PhotoPipeline, payloadOpts PayloadOptions, log *zap.Logger) *Relister {
	if log == nil {
		log = zap.NewNop()
	}
	return &Relister{client: client, photos: photos, opts: payloadOpts, log: log}
}

// Relist duplicates the listing identified by itemID.
func (r *Relister) Relist(ctx context.Context, itemID int64, opts RelistOptions) (*RelistResult, error) {
	progress.Report(ctx, "Fetching source listing...")
	rec, err := r.client.FetchItemRecord(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("fetch source: %w", err)
	}

	data, err := BuildTemplate(rec, models.ListingFields{})
	if err != nil {
		return nil, fmt.Errorf("build template: %w", err)
	}

	result := &RelistResult{SourceID: itemID}

	var uploaded []UploadedPhoto
	if opts.ReusePhotos {
		uploaded = reuseRecordPhotos(rec)
		if len(uploaded) == 0 {
			return nil, fmt.Errorf("reuse photos: %w", ErrNoPhotos)
		}
	} else {
		urls := PhotoURLs(rec)
		if len(urls) == 0 {
			return nil, fmt.Errorf("source photos: %w", ErrNoPhotos)
		}

		progress.Report(ctx, fmt.Sprintf("Downloading %d photos...", len(urls)))
		downloaded := r.photos.DownloadPhotos(ctx, urls, opts.MaxDownloads)

		sessionUUID := uuid.NewString()
		uploaded, err = r.photos.UploadPhotos(ctx, downloaded, sessionUUID, opts.Creds, opts.OnPhotoProgress)
		if err != nil {
			return nil, fmt.Errorf("upload photos: %w", err)
		}
		result.PhotosFailed = len(urls) - len(uploaded)
	}
	result.PhotosUploaded = len(uploaded)

	payload, err := BuildCreateItemPayload(data, uploaded, r.opts)
	if err != nil {
		return nil, fmt.Errorf("build payload: %w", err)
	}

	progress.Report(ctx, "Creating new listing...")
	created, err := r.client.CreateItem(ctx, payload, opts.Creds)
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	result.NewID = created.ID
	result.NewURL = created.URL

	if opts.DeleteSource {
		progress.Report(ctx, "Deleting source listing...")
		if err := r.client.DeleteItem(ctx, itemID, opts.Creds); err != nil {
			// The duplicate exists; the stale source does too. Surface it so
			// the user does not end up with a ghost listing they think is gone.
			return result, fmt.Errorf("delete source (new listing %d was created): %w", created.ID, err)
		}
		result.SourceDeleted = true
	}

	r.log.Info("relist complete",
		zap.Int64("source_id", itemID),
		zap.Int64("new_id", created.ID),
		zap.Int("photos", result.PhotosUploaded),
		zap.Bool("source_deleted", result.SourceDeleted))
	return result, nil
}

// reuseRecordPhotos reuses the photo ids already attached to the source
// record, skipping download and re-upload entirely.
func reuseRecordPhotos(rec *ItemRecord) []UploadedPhoto {
	var photos []UploadedPhoto
	for _, p := range rec.Photos {
		if p.ID != 0 {
			photos = append(photos, UploadedPhoto{ID: p.ID, Orientation: p.Orientation})
		}
	}
	return photos
}
