package scraper

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// controlStateJS captures everything the disabled check needs in one
// round trip: the control's own class and aria state plus the class of
// its enclosing list item, where the andes pagination marks exhaustion.
const controlStateJS = `() => {
	const li = this.closest('li');
	return {
		cls: this.className || '',
		aria: this.getAttribute('aria-disabled') || '',
		dis: this.hasAttribute('disabled'),
		licls: li ? (li.className || '') : '',
	};
}`

type controlState struct {
	Cls   string
	Aria  string
	Dis   bool
	LiCls string
}

func readControlState(el *rod.Element) (controlState, error) {
	res, err := el.Eval(controlStateJS)
	if err != nil {
		return controlState{}, err
	}
	return controlState{
		Cls:   res.Value.Get("cls").Str(),
		Aria:  res.Value.Get("aria").Str(),
		Dis:   res.Value.Get("dis").Bool(),
		LiCls: res.Value.Get("licls").Str(),
	}, nil
}

// disabled reports whether a next control is exhausted. Any one signal
// is sufficient; sites flip different ones across redesigns.
func (st controlState) disabled() bool {
	return hasClass(st.Cls, "disabled") ||
		st.Aria == "true" ||
		st.Dis ||
		hasClass(st.LiCls, "disabled") ||
		hasClass(st.LiCls, "andes-pagination__button--disabled")
}

func hasClass(classAttr, class string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == class {
			return true
		}
	}
	return false
}

// nextPage tries each next-control candidate in order: find it, check
// it is not disabled, click it and wait for the new page to load. The
// first candidate to complete the full sequence wins. A candidate whose
// click does not lead to a loaded page is treated like a missing one
// and the search continues. Returns false when no candidate advanced,
// which the caller reads as the last page.
func (s *Scraper) nextPage(ctx context.Context, page *rod.Page) (bool, error) {
	for _, c := range nextControlCandidates {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		el, ok := visibleElement(page, c, s.cfg.ControlTimeout)
		if !ok {
			continue
		}

		st, err := readControlState(el)
		if err != nil {
			continue
		}
		if st.disabled() {
			slog.Debug("next control disabled", "selector", c.Selector)
			continue
		}

		if err := el.ScrollIntoView(); err != nil {
			continue
		}
		sleep(ctx, s.cfg.ClickDelay)

		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			slog.Debug("next control click failed", "selector", c.Selector, "error", err)
			continue
		}
		if err := page.Timeout(s.cfg.LoadTimeout).WaitLoad(); err != nil {
			slog.Debug("page load after pagination click timed out", "selector", c.Selector)
			continue
		}

		slog.Debug("advanced to next page", "selector", c.Selector)
		return true, nil
	}
	return false, nil
}
