package extract

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lukman83/vinted-relist/internal/browser"
	"github.com/lukman83/vinted-relist/internal/httputil"
	"github.com/lukman83/vinted-relist/internal/progress"
)

// PageSource fetches the rendered markup of a listing page. Listing pages
// are server-rendered, so a plain HTTP fetch usually suffices; a live
// browser render is the slow fallback.
type PageSource interface {
	Name() string
	FetchHTML(ctx context.Context, url string) (string, error)
}

// StaticSource fetches raw page HTML over HTTP.
type StaticSource struct {
	client *http.Client
}

func NewStaticSource(client *http.Client) *StaticSource {
	return &StaticSource{client: client}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) FetchHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	for k, v := range httputil.PageHeaders() {
		req.Header[k] = v
	}

	resp, err := httputil.DoWithRetry(s.client, req, 2)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("page fetch status %d for %s", resp.StatusCode, url)
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// BrowserSource renders the page in the live browser session.
type BrowserSource struct {
	session *browser.Session
}

func NewBrowserSource(session *browser.Session) *BrowserSource {
	return &BrowserSource{session: session}
}

func (b *BrowserSource) Name() string { return "browser" }

func (b *BrowserSource) FetchHTML(ctx context.Context, url string) (string, error) {
	page, err := b.session.OpenPage(ctx, url)
	if err != nil {
		return "", err
	}
	defer page.Close()

	return b.session.HTML(page)
}

// FetchListingHTML tries each source in order and returns the first markup
// that looks like an item page (carries usable fields).
func FetchListingHTML(ctx context.Context, url string, sources ...PageSource) (string, error) {
	var lastErr error
	for _, src := range sources {
		progress.Report(ctx, fmt.Sprintf("Fetching page via %s...", src.Name()))
		htmlContent, err := src.FetchHTML(ctx, url)
		if err != nil {
			lastErr = fmt.Errorf("%s source: %w", src.Name(), err)
			continue
		}
		if htmlContent != "" {
			return htmlContent, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no page sources configured")
	}
	return "", lastErr
}
