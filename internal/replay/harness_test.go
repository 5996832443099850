package replay

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/control"
)

func downdraftFixture() *Fixture {
	return &Fixture{
		Description:  "sustained downdraft under the reactive policy",
		Policy:       "reactive",
		Disturbances: []int{-1, -1, -1, -1},
		Expected: []ExpectedTick{
			{Tick: 1, Altitude: 4, Action: 0, Source: "policy"},
			{Tick: 2, Altitude: 4, Action: 1, Source: "policy"},
			{Tick: 3, Altitude: 4, Action: 1, Source: "policy"},
			{Tick: 4, Altitude: 4, Action: 1, Source: "policy"},
		},
	}
}

func TestReplayDowndraftMatchesExpectations(t *testing.T) {
	f := downdraftFixture()
	results, err := Replay(f)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d ticks, want 4", len(results))
	}
	if diffs := Compare(results, f.Expected); len(diffs) != 0 {
		t.Errorf("unexpected divergences: %+v", diffs)
	}
}

func TestReplayPlannerTakesOverInCriticalZone(t *testing.T) {
	f := &Fixture{
		Config: FixtureConfig{
			MinAltitude: 0, MaxAltitude: 10,
			SafeMin: 4, SafeMax: 6,
			CriticalLow: 3, CriticalHigh: 7,
			InitialAltitude: 9,
		},
		Policy:       "reactive",
		Disturbances: []int{1, 0},
	}
	results, err := Replay(f)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	if results[0].Source != control.SourcePlanner {
		t.Errorf("tick 1 source = %s, want planner", results[0].Source)
	}
	if results[0].Action != -1 || results[0].Altitude != 9 {
		t.Errorf("tick 1 = %+v, want action -1, altitude 9", results[0])
	}
	if results[1].Altitude != 8 {
		t.Errorf("tick 2 altitude = %d, want 8", results[1].Altitude)
	}
}

func TestReplayPredictiveCorrectsPreemptively(t *testing.T) {
	f := &Fixture{
		Policy:       "predictive",
		Disturbances: []int{-1, -1, -1},
	}
	results, err := Replay(f)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	// With the downdraft trend the forecast dips below the band while the
	// present altitude is still safe; the predictive policy climbs early
	// and holds 5 instead of riding down to the band edge.
	want := []ExpectedTick{
		{Tick: 1, Altitude: 5, Action: 1, Source: "policy"},
		{Tick: 2, Altitude: 5, Action: 1, Source: "policy"},
		{Tick: 3, Altitude: 5, Action: 1, Source: "policy"},
	}
	if diffs := Compare(results, want); len(diffs) != 0 {
		t.Errorf("unexpected divergences: %+v", diffs)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	f := downdraftFixture()
	first, err := Replay(f)
	if err != nil {
		t.Fatalf("first replay: %v", err)
	}
	second, err := Replay(f)
	if err != nil {
		t.Fatalf("second replay: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("replays diverged (-first +second):\n%s", diff)
	}
}

func TestReplayRejectsUnknownPolicy(t *testing.T) {
	f := &Fixture{Policy: "autopilot", Disturbances: []int{0}}
	if _, err := Replay(f); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestCompareReportsDivergences(t *testing.T) {
	results := []control.TickOutcome{
		{Tick: 1, Altitude: 4, Action: 0, Source: control.SourcePolicy},
	}
	expected := []ExpectedTick{
		{Tick: 1, Altitude: 5, Action: 1, Source: "planner"},
		{Tick: 2, Altitude: 5, Action: 0, Source: "policy"},
	}

	diffs := Compare(results, expected)

	// Tick 1 diverges on altitude, action, and source; tick 2 is missing.
	if len(diffs) != 4 {
		t.Fatalf("divergences = %+v, want 4", diffs)
	}
	if diffs[3].Field != "tick" || diffs[3].Got != "missing" {
		t.Errorf("missing-tick divergence = %+v", diffs[3])
	}
}

func TestCompareIgnoresEmptyExpectedSource(t *testing.T) {
	results := []control.TickOutcome{
		{Tick: 1, Altitude: 4, Action: 0, Source: control.SourcePolicy},
	}
	expected := []ExpectedTick{{Tick: 1, Altitude: 4, Action: 0}}
	if diffs := Compare(results, expected); len(diffs) != 0 {
		t.Errorf("unexpected divergences: %+v", diffs)
	}
}

func TestSummarize(t *testing.T) {
	results := []control.TickOutcome{
		{Tick: 1, Altitude: 5, Stable: true, Source: control.SourcePolicy},
		{Tick: 2, Altitude: 8, Critical: true, Source: control.SourcePlanner},
		{Tick: 3, Altitude: 7, Source: control.SourcePolicy},
	}
	got := Summarize(results)
	want := Summary{
		Ticks:         3,
		StableTicks:   1,
		CriticalTicks: 1,
		PlannerTicks:  1,
		FinalAltitude: 7,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got.Ticks != 0 || got.FinalAltitude != 0 {
		t.Errorf("summary = %+v, want zero", got)
	}
}
