// Package replay re-runs scripted disturbance sequences through the full
// tick pipeline, entirely in-memory, and compares the outcomes against a
// fixture's expectations. Scripted wind makes every replay bit-deterministic.
package replay

import (
	"fmt"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/control"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/envsim"
)

// #region replay

// Replay runs one tick per scripted disturbance through the pipeline:
// disturbance → critical check → planner-or-policy → action. No recorder is
// attached; replay is a pure in-memory exercise.
func Replay(f *Fixture) ([]control.TickOutcome, error) {
	cfg := f.Config.ToEnvConfig()
	ctrl := control.NewControllerWithWind(cfg, envsim.NewScriptedWind(f.Disturbances), nil)
	if err := ctrl.SwitchPolicy(f.Policy); err != nil {
		return nil, fmt.Errorf("fixture policy: %w", err)
	}

	results := make([]control.TickOutcome, 0, len(f.Disturbances))
	for range f.Disturbances {
		results = append(results, ctrl.Step())
	}
	return results, nil
}

// #endregion replay

// #region compare

// Divergence describes one tick where the replay disagreed with the fixture.
type Divergence struct {
	Tick     int
	Field    string
	Expected string
	Got      string
}

// Compare checks replayed outcomes against the fixture's expected ticks and
// returns every divergence. Expectations beyond the replayed range are
// reported as missing ticks.
func Compare(results []control.TickOutcome, expected []ExpectedTick) []Divergence {
	var diffs []Divergence
	byTick := make(map[int]control.TickOutcome, len(results))
	for _, r := range results {
		byTick[r.Tick] = r
	}

	for _, exp := range expected {
		got, ok := byTick[exp.Tick]
		if !ok {
			diffs = append(diffs, Divergence{
				Tick:     exp.Tick,
				Field:    "tick",
				Expected: fmt.Sprintf("%d", exp.Tick),
				Got:      "missing",
			})
			continue
		}
		if got.Altitude != exp.Altitude {
			diffs = append(diffs, Divergence{
				Tick:     exp.Tick,
				Field:    "altitude",
				Expected: fmt.Sprintf("%d", exp.Altitude),
				Got:      fmt.Sprintf("%d", got.Altitude),
			})
		}
		if got.Action != exp.Action {
			diffs = append(diffs, Divergence{
				Tick:     exp.Tick,
				Field:    "action",
				Expected: fmt.Sprintf("%+d", exp.Action),
				Got:      fmt.Sprintf("%+d", got.Action),
			})
		}
		if exp.Source != "" && string(got.Source) != exp.Source {
			diffs = append(diffs, Divergence{
				Tick:     exp.Tick,
				Field:    "source",
				Expected: exp.Source,
				Got:      string(got.Source),
			})
		}
	}
	return diffs
}

// #endregion compare

// #region summary

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Ticks         int
	StableTicks   int
	CriticalTicks int
	PlannerTicks  int
	FinalAltitude int
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []control.TickOutcome) Summary {
	s := Summary{Ticks: len(results)}
	for _, r := range results {
		if r.Stable {
			s.StableTicks++
		}
		if r.Critical {
			s.CriticalTicks++
		}
		if r.Source == control.SourcePlanner {
			s.PlannerTicks++
		}
	}
	if len(results) > 0 {
		s.FinalAltitude = results[len(results)-1].Altitude
	}
	return s
}

// #endregion summary
