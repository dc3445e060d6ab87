package scraper

import (
	"context"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// dismissInterstitials attempts every popup closer once, clicking the
// ones that resolve to a visible element. It never fails: a closer that
// is absent, hidden or unclickable is simply skipped, and the scrape
// proceeds with whatever overlays remain.
func (s *Scraper) dismissInterstitials(ctx context.Context, page *rod.Page) {
	for _, c := range popupCloserCandidates {
		if ctx.Err() != nil {
			return
		}

		el, ok := visibleElement(page, c, s.cfg.PopupTimeout)
		if !ok {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			continue
		}
		slog.Debug("dismissed interstitial", "selector", c.Selector, "text", c.Text)
		sleep(ctx, s.cfg.DismissPause)
	}
}
