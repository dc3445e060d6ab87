package scraper

import (
	"context"
	"testing"
	"time"
)

// fakeScrollTarget replays a scripted sequence of content heights. The
// first value is the pre-scroll measurement; each ScrollToBottom call
// advances to the next.
type fakeScrollTarget struct {
	heights   []float64
	pos       int
	scrolls   int
	topCalled bool
}

func (f *fakeScrollTarget) ContentHeight() (float64, error) {
	h := f.heights[f.pos]
	if f.pos < len(f.heights)-1 {
		f.pos++
	}
	return h, nil
}

func (f *fakeScrollTarget) ScrollToBottom() error {
	f.scrolls++
	return nil
}

func (f *fakeScrollTarget) ScrollToTop() error {
	f.topCalled = true
	return nil
}

func TestStabilize_StopsWhenHeightPlateaus(t *testing.T) {
	// Heights 100, 250, 250: the first scroll grows the page, the
	// second measures no change, so exactly two attempts happen.
	target := &fakeScrollTarget{heights: []float64{100, 250, 250}}

	attempts, err := stabilize(context.Background(), target, time.Millisecond, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if target.scrolls != 2 {
		t.Errorf("expected 2 scrolls, got %d", target.scrolls)
	}
}

func TestStabilize_CapsEverGrowingPage(t *testing.T) {
	heights := make([]float64, 20)
	for i := range heights {
		heights[i] = float64(100 * (i + 1))
	}
	target := &fakeScrollTarget{heights: heights}

	attempts, err := stabilize(context.Background(), target, time.Millisecond, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 5 {
		t.Errorf("expected the attempt ceiling 5, got %d", attempts)
	}
}

func TestStabilize_ReturnsToTop(t *testing.T) {
	target := &fakeScrollTarget{heights: []float64{100, 100}}

	if _, err := stabilize(context.Background(), target, time.Millisecond, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !target.topCalled {
		t.Error("stabilize must scroll back to the top before returning")
	}
}

func TestStabilize_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	target := &fakeScrollTarget{heights: []float64{100, 200, 300}}
	_, err := stabilize(ctx, target, time.Millisecond, 10)
	if err == nil {
		t.Fatal("expected a context error")
	}
	if target.scrolls != 0 {
		t.Errorf("no scroll should run after cancellation, got %d", target.scrolls)
	}
}
