package scraper

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-rod/rod"

	"github.com/jtlavin/portalinmo/models"
)

// rodDriver implements pageDriver on a live rod page. One driver serves
// one comuna run, so the dedup index spans every page of the run.
type rodDriver struct {
	s    *Scraper
	page *rod.Page
	url  string
	seen dedupIndex
}

func newRodDriver(s *Scraper, page *rod.Page, url string) *rodDriver {
	return &rodDriver{s: s, page: page, url: url, seen: dedupIndex{}}
}

func (d *rodDriver) Load(ctx context.Context) error {
	page := d.page.Context(ctx)

	if err := page.Timeout(d.s.cfg.NavigationTimeout).Navigate(d.url); err != nil {
		return models.NewScrapeError(models.ErrCodeNavigation, "failed to navigate to search page", err)
	}
	if err := page.Timeout(d.s.cfg.NavigationTimeout).WaitLoad(); err != nil {
		return models.NewScrapeError(models.ErrCodeTimeout, "search page did not finish loading", err)
	}

	// Client-side rendering keeps painting cards after the load event.
	sleep(ctx, d.s.cfg.RenderSettle)
	d.s.dismissInterstitials(ctx, page)
	return nil
}

func (d *rodDriver) ExtractPage(ctx context.Context) ([]models.Property, models.PageStats, error) {
	page := d.page.Context(ctx)
	var stats models.PageStats

	attempts, err := stabilize(ctx, rodScrollTarget{page}, d.s.cfg.ScrollPause, d.s.cfg.MaxScrollAttempts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, stats, ctx.Err()
		}
		return nil, stats, models.NewScrapeError(models.ErrCodeInternal, "failed to stabilize results page", err)
	}

	cards, winner, ok := locateAll(cardCandidates, d.s.cfg.MinCardMatches, func(sel string) ([]*rod.Element, error) {
		els, err := page.Elements(sel)
		if err != nil {
			return nil, err
		}
		return els, nil
	})
	if !ok {
		// An empty page is reported rather than failed: the run can
		// still advance, and the operator sees the drift in the stats.
		slog.Warn("no card selector matched the page; site markup may have changed",
			"code", models.ErrCodeSelectorDrift,
			"url", d.url, "scroll_attempts", attempts)
		return nil, stats, nil
	}

	var props []models.Property
	for _, card := range cards {
		markup, err := card.HTML()
		if err != nil {
			continue
		}
		if p := parseCard(markup, d.seen, &stats); p != nil {
			props = append(props, *p)
		}
	}

	slog.Info("extracted results page",
		"selector", winner,
		"examined", stats.Examined,
		"accepted", stats.Accepted,
		"skipped_projects", stats.SkippedProjects,
		"skipped_multi_unit", stats.SkippedMultiUnit,
		"scroll_attempts", attempts)
	return props, stats, nil
}

func (d *rodDriver) AdvancePage(ctx context.Context) (bool, error) {
	if err := d.s.limiter.Wait(ctx); err != nil {
		return false, err
	}

	page := d.page.Context(ctx)
	d.s.dismissInterstitials(ctx, page)
	d.bringPaginationIntoView(ctx, page)

	ok, err := d.s.nextPage(ctx, page)
	if err != nil || !ok {
		return false, err
	}

	sleep(ctx, d.s.cfg.NavigationSettle)
	return true, nil
}

// bringPaginationIntoView scrolls the pagination bar into the viewport
// so the next control is clickable. Best effort: when no container
// candidate resolves, an approximate scroll near the bottom is used.
func (d *rodDriver) bringPaginationIntoView(ctx context.Context, page *rod.Page) {
	for _, c := range paginationContainerCandidates {
		el, ok := visibleElement(page, c, d.s.cfg.ControlTimeout)
		if !ok {
			continue
		}
		if err := el.ScrollIntoView(); err != nil {
			continue
		}
		sleep(ctx, d.s.cfg.PaginationSettle)
		return
	}

	if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight - 1500)`); err == nil {
		sleep(ctx, d.s.cfg.PaginationSettle)
	}
}

// close returns the page to the pool in a neutral state.
func (d *rodDriver) close() {
	if err := d.page.Navigate("about:blank"); err != nil &&
		!strings.Contains(err.Error(), "context canceled") {
		slog.Debug("failed to reset page before pooling", "error", err)
	}
	d.s.pagePool.Put(d.page)
}
