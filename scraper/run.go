package scraper

import (
	"context"

	"github.com/jtlavin/portalinmo/models"
)

// pageDriver is the per-run page surface the orchestration loop drives.
// The production driver wraps a rod page; tests substitute fakes.
type pageDriver interface {
	// Load navigates to the first results page and settles it.
	Load(ctx context.Context) error
	// ExtractPage stabilizes the current page and parses its cards.
	ExtractPage(ctx context.Context) ([]models.Property, models.PageStats, error)
	// AdvancePage moves to the next results page. ok=false means the
	// last page was reached, which is a normal terminal outcome.
	AdvancePage(ctx context.Context) (bool, error)
}

// runPages drives the extract/advance loop until the page budget is
// spent, pagination ends, the context is canceled or the session fails.
// The result always reports how it terminated; on cancellation the
// partial result collected so far is returned with a nil error.
func runPages(ctx context.Context, d pageDriver, maxPages int) (*models.RunResult, error) {
	result := &models.RunResult{}

	if ctx.Err() != nil {
		result.TerminationReason = models.TerminationCanceled
		return result, nil
	}
	if err := d.Load(ctx); err != nil {
		result.TerminationReason = models.TerminationSessionFailure
		return result, err
	}

	for page := 1; ; page++ {
		if ctx.Err() != nil {
			result.TerminationReason = models.TerminationCanceled
			return result, nil
		}

		props, stats, err := d.ExtractPage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				result.TerminationReason = models.TerminationCanceled
				return result, nil
			}
			result.TerminationReason = models.TerminationSessionFailure
			return result, err
		}
		result.Properties = append(result.Properties, props...)
		result.Pages = append(result.Pages, stats)
		result.PagesProcessed = page

		if page == maxPages {
			result.TerminationReason = models.TerminationBudgetExhausted
			return result, nil
		}
		if ctx.Err() != nil {
			result.TerminationReason = models.TerminationCanceled
			return result, nil
		}

		ok, err := d.AdvancePage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				result.TerminationReason = models.TerminationCanceled
				return result, nil
			}
			result.TerminationReason = models.TerminationSessionFailure
			return result, err
		}
		if !ok {
			result.TerminationReason = models.TerminationNoFurtherPage
			return result, nil
		}
	}
}
