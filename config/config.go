package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Marketplace
	BaseURL  string // e.g. https://www.vinted.fr
	Currency string // default currency for new listings

	// Browser session
	BrowserURL  string // DevTools URL of an already running browser, empty = launch
	BrowserBin  string // Chromium binary override
	UserDataDir string // profile dir carrying the logged-in session cookies
	Headless    bool

	// Behaviour
	DelayProfile      string // "cautious", "normal", "aggressive"
	RatePerSecond     float64
	RateBurst         int
	MaxDownloads      int  // concurrent photo downloads
	RespectRobots     bool // robots.txt check on external photo hosts
	AllowDefaultPrice bool // legacy: substitute 10 when the source has no price

	// Storage
	TemplateFile string // path of the template store JSON file

	// HTTP server
	HTTPPort string
	APIKey   string

	// Proxy
	ProxyURL string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "https://www.vinted.fr",
		Currency:      "EUR",
		Headless:      true,
		DelayProfile:  "normal",
		RatePerSecond: 2.0,
		RateBurst:     3,
		MaxDownloads:  3,
		RespectRobots: true,
		TemplateFile:  defaultTemplateFile(),
		HTTPPort:      "8080",
	}
}

func defaultTemplateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "templates.json"
	}
	return filepath.Join(dir, "vinted-relist", "templates.json")
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("RELIST_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("RELIST_CURRENCY"); v != "" {
		c.Currency = v
	}
	if v := os.Getenv("RELIST_BROWSER_URL"); v != "" {
		c.BrowserURL = v
	}
	if v := os.Getenv("ROD_BROWSER_BIN"); v != "" {
		c.BrowserBin = v
	}
	if v := os.Getenv("RELIST_USER_DATA_DIR"); v != "" {
		c.UserDataDir = v
	}
	if v := os.Getenv("RELIST_HEADLESS"); v == "false" {
		c.Headless = false
	}
	if v := os.Getenv("RELIST_DELAY_PROFILE"); v != "" {
		c.DelayProfile = v
	}
	if v := os.Getenv("RELIST_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("RELIST_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("RELIST_MAX_DOWNLOADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxDownloads = n
		}
	}
	if v := os.Getenv("RELIST_RESPECT_ROBOTS"); v == "false" {
		c.RespectRobots = false
	}
	if v := os.Getenv("RELIST_ALLOW_DEFAULT_PRICE"); v == "true" {
		c.AllowDefaultPrice = true
	}
	if v := os.Getenv("RELIST_TEMPLATE_FILE"); v != "" {
		c.TemplateFile = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("RELIST_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("RELIST_PROXY_URL"); v != "" {
		c.ProxyURL = v
	}
}
