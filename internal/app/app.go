// Package app wires the extraction, relist and form-fill workflows out of
// the lower-level pieces. Both the CLI commands and the MCP tools run
// through it.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/lukman83/vinted-relist/config"
	"github.com/lukman83/vinted-relist/internal/browser"
	"github.com/lukman83/vinted-relist/internal/extract"
	"github.com/lukman83/vinted-relist/internal/formfill"
	"github.com/lukman83/vinted-relist/internal/httputil"
	"github.com/lukman83/vinted-relist/internal/models"
	"github.com/lukman83/vinted-relist/internal/pacing"
	"github.com/lukman83/vinted-relist/internal/store"
	"github.com/lukman83/vinted-relist/internal/vinted"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// App holds the shared clients and the template store.
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	jar    *cookiejar.Jar
	http   *http.Client
	api    *vinted.Client
	photos *vinted.PhotoPipeline
	delay  *pacing.HumanDelay
	store  *store.Store
}

// New builds the application from config.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	base, err := httputil.NewBaseTransport(cfg.ProxyURL)
	if err != nil {
		return nil, err
	}

	delay := pacing.NewHumanDelay(pacing.Profile(cfg.DelayProfile))
	transport := &pacing.Transport{
		Base:        base,
		Delay:       delay,
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
	}

	client := httputil.NewHTTPClient(transport, jar)
	api := vinted.NewClient(client, cfg.BaseURL, log)

	// robots.txt lookups bypass the pacing transport; they are tiny and
	// themselves a politeness mechanism.
	robots := pacing.NewRobotsChecker(&http.Client{Timeout: 10 * time.Second}, cfg.RespectRobots)
	photos := vinted.NewPhotoPipeline(api, robots, log)

	return &App{
		cfg:    cfg,
		log:    log,
		jar:    jar,
		http:   client,
		api:    api,
		photos: photos,
		delay:  delay,
		store:  store.New(cfg.TemplateFile),
	}, nil
}

// Store exposes the template store.
func (a *App) Store() *store.Store { return a.store }

func (a *App) connect(headless bool) (*browser.Session, error) {
	return browser.Connect(browser.Options{
		ControlURL:  a.cfg.BrowserURL,
		Bin:         a.cfg.BrowserBin,
		UserDataDir: a.cfg.UserDataDir,
		Headless:    headless,
	}, a.log)
}

// adoptSession pulls the credentials and cookies off an open page so the
// API client shares the browser's authenticated session. Both credentials
// are optional; requests lacking one are sent without the matching header.
func (a *App) adoptSession(session *browser.Session, page *rod.Page, pageURL string) vinted.Credentials {
	creds := vinted.Credentials{AnonID: session.AnonID(page, pageURL)}

	if htmlContent, err := session.HTML(page); err == nil {
		creds.CSRFToken = extract.CSRFTokenFromHTML(htmlContent)
	}
	if creds.CSRFToken == "" {
		a.log.Warn("csrf token not found in page scripts")
	}

	if cookies, err := session.HTTPCookies(page, pageURL); err == nil {
		if u, err := url.Parse(a.cfg.BaseURL); err == nil {
			a.jar.SetCookies(u, cookies)
		}
	} else {
		a.log.Warn("could not adopt browser cookies", zap.Error(err))
	}
	return creds
}

// ExtractTemplate scrapes a listing page, fetches its API record and saves
// the reconciled template. With domOnly the API fetch is skipped and the
// template is built from the page alone.
func (a *App) ExtractTemplate(ctx context.Context, listingURL string, domOnly bool) (models.Template, error) {
	if !extract.IsListingPage(listingURL) {
		return models.Template{}, fmt.Errorf("not a listing page url: %s", listingURL)
	}
	itemID, err := extract.ItemIDFromURL(listingURL)
	if err != nil {
		return models.Template{}, err
	}

	session, err := a.connect(a.cfg.Headless)
	if err != nil {
		if !domOnly {
			return models.Template{}, fmt.Errorf("browser session needed for the API record: %w", err)
		}
		a.log.Warn("browser unavailable, static fetch only", zap.Error(err))
		session = nil
	}
	if session != nil {
		defer session.Close()
	}

	sources := []extract.PageSource{extract.NewStaticSource(a.http)}
	if session != nil {
		sources = append(sources, extract.NewBrowserSource(session))
	}
	htmlContent, err := extract.FetchListingHTML(ctx, listingURL, sources...)
	if err != nil {
		return models.Template{}, fmt.Errorf("fetch listing page: %w", err)
	}

	fields, err := extract.ExtractListingFields(htmlContent, a.log)
	if err != nil {
		return models.Template{}, err
	}

	var rec *vinted.ItemRecord
	if !domOnly {
		page, err := session.OpenPage(ctx, listingURL)
		if err != nil {
			return models.Template{}, fmt.Errorf("open listing page: %w", err)
		}
		defer page.Close()
		a.adoptSession(session, page, listingURL)

		rec, err = a.api.FetchItemRecord(ctx, itemID)
		if err != nil {
			var forbidden *vinted.ForbiddenError
			if errors.As(err, &forbidden) {
				return models.Template{}, fmt.Errorf("only your own listings can be saved as templates: %w", err)
			}
			return models.Template{}, err
		}
	}

	data, err := vinted.BuildTemplate(rec, fields)
	if err != nil {
		return models.Template{}, err
	}
	return a.store.Add(data)
}

// RelistFlags are the user-facing relist switches.
type RelistFlags struct {
	DeleteSource bool
	ReusePhotos  bool
}

// Relist duplicates one of the user's listings through the API.
func (a *App) Relist(ctx context.Context, itemID int64, flags RelistFlags) (*vinted.RelistResult, error) {
	session, err := a.connect(a.cfg.Headless)
	if err != nil {
		return nil, fmt.Errorf("browser session: %w", err)
	}
	defer session.Close()

	listingURL := fmt.Sprintf("%s/items/%d", a.cfg.BaseURL, itemID)
	page, err := session.OpenPage(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("open listing page: %w", err)
	}
	defer page.Close()
	creds := a.adoptSession(session, page, listingURL)

	relister := vinted.NewRelister(a.api, a.photos, vinted.PayloadOptions{
		Currency:          a.cfg.Currency,
		AllowDefaultPrice: a.cfg.AllowDefaultPrice,
	}, a.log)

	return relister.Relist(ctx, itemID, vinted.RelistOptions{
		DeleteSource: flags.DeleteSource,
		ReusePhotos:  flags.ReusePhotos,
		MaxDownloads: a.cfg.MaxDownloads,
		Creds:        creds,
	})
}

// FillForm replays a stored template into the live create form. Always runs
// headed: the user finishes and submits the form themselves.
func (a *App) FillForm(ctx context.Context, templateIndex int, createURL string) (formfill.Result, error) {
	tpl, err := a.store.Get(templateIndex)
	if err != nil {
		return formfill.Result{}, err
	}

	if createURL == "" {
		createURL = a.cfg.BaseURL + "/items/new"
	}
	if !extract.IsCreatePage(createURL) {
		return formfill.Result{}, fmt.Errorf("not a create-form url: %s", createURL)
	}

	session, err := a.connect(false)
	if err != nil {
		return formfill.Result{}, fmt.Errorf("browser session: %w", err)
	}
	// The session stays open so the user can review and submit the form.

	page, err := session.OpenPage(ctx, createURL)
	if err != nil {
		return formfill.Result{}, fmt.Errorf("open create page: %w", err)
	}

	if err := formfill.WaitReady(page, 10*time.Second); err != nil {
		return formfill.Result{}, fmt.Errorf("create form did not load: %w", err)
	}

	filler := formfill.NewFiller(
		formfill.NewRodPage(page),
		formfill.FixedWait{Jitter: a.delay},
		formfill.DefaultDelays(),
		a.log,
	)
	return filler.Fill(ctx, tpl.Data), nil
}
