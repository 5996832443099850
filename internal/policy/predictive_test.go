package policy

import (
	"strings"
	"testing"
)

func TestPredictiveEmptyWindowMatchesReactive(t *testing.T) {
	pred := NewPredictive(defaultBand())
	react := NewReactive(defaultBand())
	for a := 0; a <= 10; a++ {
		if p, r := pred.Decide(a), react.Decide(a); p != r {
			t.Errorf("altitude %d: predictive %d, reactive %d", a, p, r)
		}
	}
}

func TestPredictiveForecastOverridesSafePresent(t *testing.T) {
	p := NewPredictive(defaultBand())
	// Strong downdraft trend: mean -2 forecasts 5 → 3, below the band.
	p.Observe(-2)
	p.Observe(-2)

	if got := p.Decide(5); got != 1 {
		t.Errorf("Decide(5) with trend -2 = %d, want +1", got)
	}
}

func TestPredictiveActsOnPresentDangerDespiteBenignForecast(t *testing.T) {
	p := NewPredictive(defaultBand())
	// Updraft trend +1 forecasts 3 → 4, inside the band, but the present
	// altitude is already unsafe and must still be corrected.
	p.Observe(1)
	p.Observe(1)

	if got := p.Decide(3); got != 1 {
		t.Errorf("Decide(3) with trend +1 = %d, want +1", got)
	}

	p.Reset()
	p.Observe(-1)
	p.Observe(-1)
	// Trend -1 forecasts 7 → 6, inside the band; present altitude 7 is
	// above it and still demands a descent.
	if got := p.Decide(7); got != -1 {
		t.Errorf("Decide(7) with trend -1 = %d, want -1", got)
	}
}

func TestPredictiveForecastDescent(t *testing.T) {
	p := NewPredictive(defaultBand())
	p.Observe(2)
	p.Observe(2)
	// Trend +2 forecasts 6 → 8, above the band.
	if got := p.Decide(6); got != -1 {
		t.Errorf("Decide(6) with trend +2 = %d, want -1", got)
	}
}

func TestPredictiveWindowEvictsOldestFIFO(t *testing.T) {
	p := NewPredictiveWindow(defaultBand(), 3)
	for _, d := range []int{1, 1, 1, -1, -1} {
		p.Observe(d)
	}
	want := []int{1, -1, -1}
	got := p.Window()
	if len(got) != len(want) {
		t.Fatalf("window = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("window = %v, want %v", got, want)
		}
	}
}

func TestPredictiveTrend(t *testing.T) {
	p := NewPredictive(defaultBand())
	if got := p.Trend(); got != 0 {
		t.Errorf("empty window trend = %v, want 0", got)
	}
	p.Observe(1)
	p.Observe(0)
	p.Observe(-1)
	p.Observe(1)
	if got := p.Trend(); got != 0.25 {
		t.Errorf("trend = %v, want 0.25", got)
	}
}

func TestPredictiveResetClearsWindow(t *testing.T) {
	p := NewPredictive(defaultBand())
	p.Observe(-1)
	p.Observe(-1)
	p.Reset()
	if got := len(p.Window()); got != 0 {
		t.Errorf("window length after reset = %d, want 0", got)
	}
	// Post-reset behavior is reactive again.
	if got := p.Decide(5); got != 0 {
		t.Errorf("Decide(5) after reset = %d, want 0", got)
	}
}

func TestPredictiveExplainReportsTrendAndForecast(t *testing.T) {
	p := NewPredictive(defaultBand())
	p.Observe(-1)
	p.Observe(-1)
	got := p.Explain(5, 1)
	for _, want := range []string{"trend", "-1.00", "4.00", "climbing"} {
		if !strings.Contains(got, want) {
			t.Errorf("Explain(5, 1) = %q, want it to mention %q", got, want)
		}
	}
}

func TestPredictiveImplementsObserverCapability(t *testing.T) {
	var p Policy = NewPredictive(defaultBand())
	if _, ok := p.(DisturbanceObserver); !ok {
		t.Error("predictive policy does not expose the observer capability")
	}
	var r Policy = NewReactive(defaultBand())
	if _, ok := r.(DisturbanceObserver); ok {
		t.Error("reactive policy unexpectedly exposes the observer capability")
	}
}
