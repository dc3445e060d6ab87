package scraper

import (
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/go-rod/rod"
)

// locateAll evaluates selector candidates in order against query and
// returns the first result set with at least minMatches elements, along
// with the winning selector. Results are never merged across
// candidates. A malformed selector or a query error counts as candidate
// failure and the next candidate is tried; all candidates failing is a
// normal outcome, reported by ok=false.
func locateAll[T any](candidates []string, minMatches int, query func(selector string) ([]T, error)) (matches []T, selector string, ok bool) {
	for _, sel := range candidates {
		if _, err := cascadia.Parse(sel); err != nil {
			continue
		}
		found, err := query(sel)
		if err != nil {
			continue
		}
		if len(found) >= minMatches {
			return found, sel, true
		}
	}
	return nil, "", false
}

// visibleElement resolves a single candidate to a visible element
// within the bounded wait. The returned element is detached from the
// wait deadline so later operations run under the caller's context.
func visibleElement(page *rod.Page, c candidate, wait time.Duration) (*rod.Element, bool) {
	if _, err := cascadia.Parse(c.Selector); err != nil {
		return nil, false
	}

	p := page.Timeout(wait)
	var el *rod.Element
	var err error
	if c.Text != "" {
		el, err = p.ElementR(c.Selector, c.Text)
	} else {
		el, err = p.Element(c.Selector)
	}
	if err != nil {
		return nil, false
	}

	el = el.CancelTimeout()
	visible, err := el.Visible()
	if err != nil || !visible {
		return nil, false
	}
	return el, true
}
