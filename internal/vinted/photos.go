package vinted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/lukman83/vinted-relist/internal/httputil"
	"github.com/lukman83/vinted-relist/internal/pacing"
	"github.com/lukman83/vinted-relist/internal/progress"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UploadedPhoto is the marketplace's handle for one uploaded photo, assigned
// to the create-item payload. Never persisted; it only lives for the duration
// of one upload session.
type UploadedPhoto struct {
	ID          int64 `json:"id"`
	Orientation int   `json:"orientation"`
}

// PhotoData is raw downloaded photo content.
type PhotoData struct {
	Bytes       []byte
	ContentType string
}

// ProgressFunc reports per-photo upload progress.
type ProgressFunc func(done, total int)

// PhotoPipeline downloads photo content from external hosts and uploads it
// to the marketplace photo endpoint under a shared session UUID.
type PhotoPipeline struct {
	client *Client
	robots *pacing.RobotsChecker
	log    *zap.Logger
}

// NewPhotoPipeline creates a pipeline sharing the API client's HTTP session.
// robots may be nil to skip robots.txt checks on photo hosts.
func NewPhotoPipeline(client *Client, robots *pacing.RobotsChecker, log *zap.Logger) *PhotoPipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &PhotoPipeline{client: client, robots: robots, log: log}
}

// DownloadPhoto fetches raw photo bytes from an external URL.
func (p *PhotoPipeline) DownloadPhoto(ctx context.Context, url string) (*PhotoData, error) {
	if p.robots != nil {
		allowed, err := p.robots.IsAllowed(httputil.UserAgent, url)
		if err == nil && !allowed {
			return nil, fmt.Errorf("blocked by robots.txt: %s", url)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httputil.UserAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/*,*/*;q=0.8")

	resp, err := p.client.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DownloadError{Status: resp.StatusCode, URL: url}
	}

	data, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read photo body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	p.log.Debug("photo downloaded", zap.String("url", url), zap.Int("bytes", len(data)))
	return &PhotoData{Bytes: data, ContentType: contentType}, nil
}

// DownloadPhotos fetches several photos concurrently, bounded by maxConcurrent.
// Failures are logged and skipped; the returned slice keeps the input order of
// the photos that succeeded. Only the uploads must stay sequential, downloads
// hit unrelated CDN hosts.
func (p *PhotoPipeline) DownloadPhotos(ctx context.Context, urls []string, maxConcurrent int) []*PhotoData {
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	results := make([]*PhotoData, len(urls))
	for i, url := range urls {
		g.Go(func() error {
			data, err := p.DownloadPhoto(ctx, url)
			if err != nil {
				p.log.Warn("photo download failed", zap.String("url", url), zap.Error(err))
				return nil
			}
			results[i] = data
			return nil
		})
	}
	_ = g.Wait()

	var downloaded []*PhotoData
	for _, r := range results {
		if r != nil {
			downloaded = append(downloaded, r)
		}
	}
	return downloaded
}

// UploadPhoto posts one photo as multipart form data tied to the upload
// session UUID.
func (p *PhotoPipeline) UploadPhoto(ctx context.Context, photo *PhotoData, sessionUUID string, creds Credentials) (UploadedPhoto, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("photo[type]", "item"); err != nil {
		return UploadedPhoto{}, fmt.Errorf("write form field: %w", err)
	}
	if err := w.WriteField("photo[temp_uuid]", sessionUUID); err != nil {
		return UploadedPhoto{}, fmt.Errorf("write form field: %w", err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="photo[file]"; filename="photo.jpg"`)
	header.Set("Content-Type", photo.ContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return UploadedPhoto{}, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(photo.Bytes); err != nil {
		return UploadedPhoto{}, fmt.Errorf("write photo bytes: %w", err)
	}
	if err := w.Close(); err != nil {
		return UploadedPhoto{}, fmt.Errorf("close multipart writer: %w", err)
	}

	endpoint := p.client.baseURL + "/api/v2/photos"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return UploadedPhoto{}, err
	}
	req.Header = httputil.APIHeaders(creds.CSRFToken, creds.AnonID)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := p.client.http.Do(req)
	if err != nil {
		return UploadedPhoto{}, fmt.Errorf("upload photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return UploadedPhoto{}, &UploadError{Status: resp.StatusCode}
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return UploadedPhoto{}, fmt.Errorf("read upload response: %w", err)
	}

	var uploaded UploadedPhoto
	if err := json.Unmarshal(body, &uploaded); err != nil || uploaded.ID == 0 {
		return UploadedPhoto{}, &UploadError{Status: resp.StatusCode, Reason: "response carries no photo id"}
	}
	return uploaded, nil
}

// UploadPhotos uploads photos strictly one at a time. The upload endpoint is
// session-scoped through the shared UUID and is treated as order-sensitive,
// so this is deliberately not parallelized. Individual failures are logged
// and skipped: photo upload is the most failure-prone step of the whole flow
// and losing a minority of photos should not sink the listing. Only a zero
// success count is an error.
func (p *PhotoPipeline) UploadPhotos(ctx context.Context, photos []*PhotoData, sessionUUID string, creds Credentials, onProgress ProgressFunc) ([]UploadedPhoto, error) {
	if len(photos) == 0 {
		return nil, ErrNoPhotos
	}

	total := len(photos)
	uploaded := make([]UploadedPhoto, 0, total)

	for i, photo := range photos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		progress.Report(ctx, fmt.Sprintf("Uploading photo %d/%d...", i+1, total))

		up, err := p.UploadPhoto(ctx, photo, sessionUUID, creds)
		if err != nil {
			p.log.Warn("photo upload failed, continuing",
				zap.Int("photo", i+1),
				zap.Int("total", total),
				zap.Error(err))
			continue
		}

		uploaded = append(uploaded, up)
		if onProgress != nil {
			onProgress(i+1, total)
		}
		p.log.Debug("photo uploaded",
			zap.Int("photo", i+1),
			zap.Int("total", total),
			zap.Int64("photo_id", up.ID))
	}

	if len(uploaded) == 0 {
		return nil, fmt.Errorf("all %d uploads failed: %w", total, ErrNoPhotos)
	}
	if len(uploaded) < total {
		p.log.Warn("some photos were not uploaded",
			zap.Int("uploaded", len(uploaded)),
			zap.Int("total", total))
	}
	return uploaded, nil
}

// PhotoURLs picks the best downloadable URL for every photo on a record.
func PhotoURLs(rec *ItemRecord) []string {
	var urls []string
	for _, photo := range rec.Photos {
		u := photo.FullSizeURL
		if u == "" {
			u = photo.URL
		}
		if strings.TrimSpace(u) != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
