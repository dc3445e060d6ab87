package scraper

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
	"golang.org/x/time/rate"

	"github.com/jtlavin/portalinmo/config"
	"github.com/jtlavin/portalinmo/models"
)

// Scraper manages the global browser lifecycle, the page pool and the
// pacing limiter. It is safe for concurrent use.
type Scraper struct {
	browser     *rod.Browser
	pagePool    rod.Pool[rod.Page]
	browserCfg  config.BrowserConfig
	cfg         config.ScrapeConfig
	limiter     *rate.Limiter
	activePages atomic.Int32
	startTime   time.Time
}

// New launches a headless browser and initialises the reusable page pool.
func New(browserCfg config.BrowserConfig, scrapeCfg config.ScrapeConfig) (*Scraper, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}

	// Container hygiene flags. Listing pages are media heavy and exhaust
	// the default /dev/shm in Docker without disable-dev-shm-usage.
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	pool := rod.NewPagePool(browserCfg.MaxPages)
	slog.Info("page pool created", "maxPages", browserCfg.MaxPages)

	return &Scraper{
		browser:    browser,
		pagePool:   pool,
		browserCfg: browserCfg,
		cfg:        scrapeCfg,
		limiter:    rate.NewLimiter(rate.Limit(scrapeCfg.PagesPerSecond), 1),
		startTime:  time.Now(),
	}, nil
}

// Scrape runs one full extraction for the requested comuna: load the
// search page, then extract and paginate until the page budget is spent
// or pagination ends. Mid-run faults are downgraded to a partial result
// with a session-failure termination; only invalid input is an error.
func (s *Scraper) Scrape(ctx context.Context, req *models.ScrapeRequest) (*models.RunResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// ── 1. Acquire page from pool ────────────────────────────────────
	s.activePages.Add(1)
	defer s.activePages.Add(-1)

	page, acquireErr := s.pagePool.Get(func() (*rod.Page, error) {
		return s.browser.Page(proto.TargetCreateTarget{})
	})
	if acquireErr != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}

	// ── 2. Identity headers ──────────────────────────────────────────
	if s.browserCfg.UserAgent != "" {
		_ = proto.NetworkSetUserAgentOverride{
			UserAgent: s.browserCfg.UserAgent,
		}.Call(page)
	}
	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{
			"Accept-Language": "es-CL,es;q=0.9",
		}),
	}.Call(page)

	// ── 3. Run the page loop ─────────────────────────────────────────
	url := BuildSearchURL(req.Comuna, req.PropertyType)
	slog.Info("starting scrape",
		"comuna", req.Comuna,
		"property_type", req.PropertyType,
		"max_pages", req.MaxPages,
		"url", url)

	driver := newRodDriver(s, page, url)
	defer driver.close()

	result, runErr := runPages(ctx, driver, req.MaxPages)
	if runErr != nil {
		slog.Error("scrape aborted mid-run",
			"comuna", req.Comuna,
			"pages_processed", result.PagesProcessed,
			"error", runErr)
		result.TerminationReason = models.TerminationSessionFailure
		return result, nil
	}

	slog.Info("scrape finished",
		"comuna", req.Comuna,
		"pages_processed", result.PagesProcessed,
		"properties", len(result.Properties),
		"termination", result.TerminationReason)
	return result, nil
}

// Stats returns a snapshot of the pool's current state.
func (s *Scraper) Stats() models.PoolStats {
	return models.PoolStats{
		MaxPages:    s.browserCfg.MaxPages,
		ActivePages: int(s.activePages.Load()),
	}
}

// Close drains the page pool and kills the browser process.
// Call this on graceful shutdown to prevent zombie Chrome processes.
func (s *Scraper) Close() {
	slog.Info("scraper shutting down: draining page pool")
	s.pagePool.Cleanup(func(p *rod.Page) {
		_ = p.Close()
	})
	slog.Info("scraper shutting down: closing browser")
	s.browser.MustClose()
	slog.Info("scraper shutdown complete")
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders
// type (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
