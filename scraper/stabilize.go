package scraper

import (
	"context"
	"time"

	"github.com/go-rod/rod"
)

// topSettle is the short pause after scrolling back to the top.
const topSettle = 300 * time.Millisecond

// scrollTarget is the minimal page surface the stabilizer needs.
// The production implementation is a rod page; tests substitute fakes.
type scrollTarget interface {
	ContentHeight() (float64, error)
	ScrollToBottom() error
	ScrollToTop() error
}

// stabilize scrolls to the current bottom and waits, repeating until
// the measured content height stops growing (lazy-loaded cards have all
// materialised) or maxAttempts is reached. Afterwards the page is
// returned to the top. Returns the number of scroll attempts performed.
func stabilize(ctx context.Context, t scrollTarget, pause time.Duration, maxAttempts int) (int, error) {
	last, err := t.ContentHeight()
	if err != nil {
		return 0, err
	}

	attempts := 0
	for attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			return attempts, err
		}
		if err := t.ScrollToBottom(); err != nil {
			return attempts, err
		}
		attempts++
		sleep(ctx, pause)

		height, err := t.ContentHeight()
		if err != nil {
			return attempts, err
		}
		if height == last {
			break
		}
		last = height
	}

	if err := t.ScrollToTop(); err != nil {
		return attempts, err
	}
	sleep(ctx, topSettle)
	return attempts, nil
}

// sleep pauses for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// rodScrollTarget adapts a rod page to the stabilizer's primitives.
type rodScrollTarget struct {
	page *rod.Page
}

func (t rodScrollTarget) ContentHeight() (float64, error) {
	res, err := t.page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Num(), nil
}

func (t rodScrollTarget) ScrollToBottom() error {
	_, err := t.page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	return err
}

func (t rodScrollTarget) ScrollToTop() error {
	_, err := t.page.Eval(`() => window.scrollTo(0, 0)`)
	return err
}
