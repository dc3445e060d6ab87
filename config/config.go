package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scrape    ScrapeConfig
	Output    OutputConfig
	DB        DBConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 4

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// UserAgent is applied to every scraping page.
	UserAgent string
}

// ScrapeConfig carries the timing and threshold constants of the
// extraction engine. The defaults reproduce the pacing the target site
// is known to tolerate; change them only against the live site.
type ScrapeConfig struct {
	// NavigationTimeout bounds the initial navigation and its load milestone.
	NavigationTimeout time.Duration // default: 30s

	// LoadTimeout bounds the load milestone after a pagination click.
	LoadTimeout time.Duration // default: 10s

	// ControlTimeout bounds the visibility wait for one next-control candidate.
	ControlTimeout time.Duration // default: 3s

	// PopupTimeout bounds the visibility wait for one interstitial closer.
	PopupTimeout time.Duration // default: 1s

	// RenderSettle is the pause after the initial page load.
	RenderSettle time.Duration // default: 2s

	// ScrollPause is the pause between scroll attempts while stabilizing.
	ScrollPause time.Duration // default: 500ms

	// PaginationSettle is the pause after scrolling the pagination into view.
	PaginationSettle time.Duration // default: 500ms

	// ClickDelay is the pause before clicking the next-control.
	ClickDelay time.Duration // default: 300ms

	// NavigationSettle is the pause after a successful pagination click.
	NavigationSettle time.Duration // default: 2s

	// DismissPause is the pause after clicking an interstitial closer.
	DismissPause time.Duration // default: 500ms

	// MaxScrollAttempts caps the stabilizer loop on pages that keep growing.
	MaxScrollAttempts int // default: 10

	// MinCardMatches is the minimum match count for a card selector
	// candidate to be accepted, guarding against sparse false matches.
	MinCardMatches int // default: 5

	// PagesPerSecond paces page advances across a run.
	PagesPerSecond float64 // default: 0.5
}

// OutputConfig controls the file sinks.
type OutputConfig struct {
	Dir      string // default: "data"
	CSVFile  string // default: "property_basic_info.csv"
	URLsFile string // default: "property_urls.txt"
}

// DBConfig controls the optional Postgres sink.
type DBConfig struct {
	Enabled  bool // default: false
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RateLimitConfig controls per-IP API rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per client.
	Burst int // default: 2
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PORTALINMO_HOST", "0.0.0.0"),
			Port: envIntOr("PORTALINMO_PORT", 8080),
			Mode: envOr("PORTALINMO_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("PORTALINMO_HEADLESS", true),
			MaxPages:   envIntOr("PORTALINMO_MAX_PAGES", 4),
			NoSandbox:  envBoolOr("PORTALINMO_NO_SANDBOX", false),
			BrowserBin: os.Getenv("PORTALINMO_BROWSER_BIN"),
			UserAgent: envOr("PORTALINMO_USER_AGENT",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
		},
		Scrape: ScrapeConfig{
			NavigationTimeout: envDurationOr("PORTALINMO_NAV_TIMEOUT", 30*time.Second),
			LoadTimeout:       envDurationOr("PORTALINMO_LOAD_TIMEOUT", 10*time.Second),
			ControlTimeout:    envDurationOr("PORTALINMO_CONTROL_TIMEOUT", 3*time.Second),
			PopupTimeout:      envDurationOr("PORTALINMO_POPUP_TIMEOUT", time.Second),
			RenderSettle:      envDurationOr("PORTALINMO_RENDER_SETTLE", 2*time.Second),
			ScrollPause:       envDurationOr("PORTALINMO_SCROLL_PAUSE", 500*time.Millisecond),
			PaginationSettle:  envDurationOr("PORTALINMO_PAGINATION_SETTLE", 500*time.Millisecond),
			ClickDelay:        envDurationOr("PORTALINMO_CLICK_DELAY", 300*time.Millisecond),
			NavigationSettle:  envDurationOr("PORTALINMO_NAVIGATION_SETTLE", 2*time.Second),
			DismissPause:      envDurationOr("PORTALINMO_DISMISS_PAUSE", 500*time.Millisecond),
			MaxScrollAttempts: envIntOr("PORTALINMO_MAX_SCROLL_ATTEMPTS", 10),
			MinCardMatches:    envIntOr("PORTALINMO_MIN_CARD_MATCHES", 5),
			PagesPerSecond:    envFloatOr("PORTALINMO_PAGES_PER_SECOND", 0.5),
		},
		Output: OutputConfig{
			Dir:      envOr("PORTALINMO_OUTPUT_DIR", "data"),
			CSVFile:  envOr("PORTALINMO_CSV_FILE", "property_basic_info.csv"),
			URLsFile: envOr("PORTALINMO_URLS_FILE", "property_urls.txt"),
		},
		DB: DBConfig{
			Enabled:  envBoolOr("PORTALINMO_DB_ENABLED", false),
			Host:     envOr("DB_HOST", "localhost"),
			Port:     envIntOr("DB_PORT", 5432),
			User:     envOr("DB_USER", "portalinmo"),
			Password: envOr("DB_PASSWORD", "portalinmo"),
			Name:     envOr("DB_NAME", "portalinmo"),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PORTALINMO_RATE_RPS", 1.0),
			Burst:             envIntOr("PORTALINMO_RATE_BURST", 2),
		},
		Log: LogConfig{
			Level:  envOr("PORTALINMO_LOG_LEVEL", "info"),
			Format: envOr("PORTALINMO_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
