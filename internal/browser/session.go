// Package browser owns the Chromium session the tool works inside. The
// session carries the user's marketplace login, and it is the only context
// privileged enough to read the anon_id cookie or drive the create form.
package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Options describe how to obtain a browser.
type Options struct {
	// ControlURL attaches to an already running browser (DevTools URL).
	// When empty a browser is launched.
	ControlURL string
	// Bin overrides the Chromium binary for launched browsers.
	Bin string
	// UserDataDir points at the profile carrying the logged-in session.
	UserDataDir string
	Headless    bool
}

// Session wraps one connected browser.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	log      *zap.Logger
}

// Connect attaches to or launches a browser per the options.
func Connect(opts Options, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if opts.ControlURL != "" {
		b := rod.New().ControlURL(opts.ControlURL)
		if err := b.Connect(); err != nil {
			return nil, fmt.Errorf("connect browser: %w", err)
		}
		log.Debug("attached to running browser", zap.String("url", opts.ControlURL))
		return &Session{browser: b, log: log}, nil
	}

	l := launcher.New().Headless(opts.Headless).Logger(io.Discard)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}
	if opts.UserDataDir != "" {
		l = l.UserDataDir(opts.UserDataDir)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	log.Debug("browser launched", zap.Bool("headless", opts.Headless))
	return &Session{browser: b, launcher: l, log: log}, nil
}

// Close shuts the browser down and cleans up a launched instance.
func (s *Session) Close() {
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
}

// OpenPage navigates to the URL and waits for the page to stabilize.
func (s *Session) OpenPage(ctx context.Context, pageURL string) (*rod.Page, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  1920,
		Height: 1080,
	})
	if err != nil {
		page.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	timedPage := page.Context(ctx).Timeout(15 * time.Second)
	if err := timedPage.WaitStable(time.Second); err == nil {
		_ = timedPage.WaitDOMStable(2*time.Second, 0.1)
	}

	return page, nil
}

// HTML returns the page's current serialized markup.
func (s *Session) HTML(page *rod.Page) (string, error) {
	htmlContent, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("get page HTML: %w", err)
	}
	return htmlContent, nil
}

// AnonID reads the anon_id cookie scoped to the page's URL. Page scripts
// cannot see it; only the browser process can. Returns "" when absent; a
// missing anon id downgrades requests, it never fails them.
func (s *Session) AnonID(page *rod.Page, pageURL string) string {
	cookies, err := page.Cookies([]string{pageURL})
	if err != nil {
		s.log.Warn("cookie lookup failed", zap.Error(err))
		return ""
	}
	for _, c := range cookies {
		if c.Name == "anon_id" {
			return c.Value
		}
	}
	s.log.Debug("anon_id cookie not present")
	return ""
}

// HTTPCookies exports the page's cookies in net/http form so the API client's
// jar can share the browser's authenticated session.
func (s *Session) HTTPCookies(page *rod.Page, pageURL string) ([]*http.Cookie, error) {
	cookies, err := page.Cookies([]string{pageURL})
	if err != nil {
		return nil, fmt.Errorf("read cookies: %w", err)
	}

	out := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		})
	}
	return out, nil
}
