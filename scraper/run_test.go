package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/jtlavin/portalinmo/models"
)

// fakeDriver scripts the page loop: per-page property counts, whether
// each advance succeeds and optional injected faults.
type fakeDriver struct {
	loadErr         error
	pageProps       []int // properties produced per extracted page
	extractErr      error
	extractErrOn    int // 1-based page on which extractErr fires, 0 = never
	advanceOK       []bool
	advanceErr      error
	cancelOnAdvance context.CancelFunc

	extracts int
	advances int
}

func (d *fakeDriver) Load(ctx context.Context) error {
	return d.loadErr
}

func (d *fakeDriver) ExtractPage(ctx context.Context) ([]models.Property, models.PageStats, error) {
	d.extracts++
	if d.extractErrOn != 0 && d.extracts == d.extractErrOn {
		return nil, models.PageStats{}, d.extractErr
	}

	count := 0
	if d.extracts <= len(d.pageProps) {
		count = d.pageProps[d.extracts-1]
	}
	props := make([]models.Property, count)
	for i := range props {
		props[i] = models.Property{URL: "https://example.test/MLC-" + string(rune('a'+d.extracts)) + string(rune('0'+i))}
	}
	return props, models.PageStats{Examined: count, Accepted: count}, nil
}

func (d *fakeDriver) AdvancePage(ctx context.Context) (bool, error) {
	d.advances++
	if d.cancelOnAdvance != nil {
		d.cancelOnAdvance()
		return false, ctx.Err()
	}
	if d.advanceErr != nil {
		return false, d.advanceErr
	}
	if d.advances <= len(d.advanceOK) {
		return d.advanceOK[d.advances-1], nil
	}
	return false, nil
}

func TestRunPages_BudgetExhausted(t *testing.T) {
	d := &fakeDriver{
		pageProps: []int{2, 3, 1},
		advanceOK: []bool{true, true},
	}

	result, err := runPages(context.Background(), d, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TerminationReason != models.TerminationBudgetExhausted {
		t.Errorf("wrong termination: %q", result.TerminationReason)
	}
	if result.PagesProcessed != 3 {
		t.Errorf("wrong pages processed: %d", result.PagesProcessed)
	}
	if len(result.Properties) != 6 {
		t.Errorf("wrong property count: %d", len(result.Properties))
	}
	if d.advances != 2 {
		t.Errorf("the final page must not trigger an advance, got %d advances", d.advances)
	}
}

func TestRunPages_NoFurtherPage(t *testing.T) {
	d := &fakeDriver{
		pageProps: []int{4},
		advanceOK: []bool{false},
	}

	result, err := runPages(context.Background(), d, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TerminationReason != models.TerminationNoFurtherPage {
		t.Errorf("wrong termination: %q", result.TerminationReason)
	}
	if result.PagesProcessed != 1 {
		t.Errorf("wrong pages processed: %d", result.PagesProcessed)
	}
	if len(result.Properties) != 4 {
		t.Errorf("the last page's results must be kept, got %d", len(result.Properties))
	}
}

func TestRunPages_CanceledKeepsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := &fakeDriver{
		pageProps:       []int{2, 2, 2},
		cancelOnAdvance: cancel,
	}

	result, err := runPages(ctx, d, 5)
	if err != nil {
		t.Fatalf("cancellation must not surface an error, got %v", err)
	}
	if result.TerminationReason != models.TerminationCanceled {
		t.Errorf("wrong termination: %q", result.TerminationReason)
	}
	if len(result.Properties) != 2 {
		t.Errorf("partial results must be kept, got %d", len(result.Properties))
	}
}

func TestRunPages_LoadFailure(t *testing.T) {
	wantErr := errors.New("navigation refused")
	d := &fakeDriver{loadErr: wantErr}

	result, err := runPages(context.Background(), d, 3)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if result.TerminationReason != models.TerminationSessionFailure {
		t.Errorf("wrong termination: %q", result.TerminationReason)
	}
	if d.extracts != 0 {
		t.Error("no extraction should run after a failed load")
	}
}

func TestRunPages_ExtractFailureKeepsEarlierPages(t *testing.T) {
	d := &fakeDriver{
		pageProps:    []int{3, 0},
		advanceOK:    []bool{true},
		extractErr:   errors.New("page crashed"),
		extractErrOn: 2,
	}

	result, err := runPages(context.Background(), d, 5)
	if err == nil {
		t.Fatal("expected the extract error to surface")
	}
	if result.TerminationReason != models.TerminationSessionFailure {
		t.Errorf("wrong termination: %q", result.TerminationReason)
	}
	if len(result.Properties) != 3 {
		t.Errorf("earlier pages must be kept, got %d", len(result.Properties))
	}
}
