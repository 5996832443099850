// Package control drives the altitude-hold loop: one synchronous step per
// tick, planner pre-emption in the critical zone, and policy dispatch
// through the shared capability.
package control

import (
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/envsim"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/planner"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/policy"
)

// #region tick-outcome

// DecisionSource identifies which component chose a tick's action.
type DecisionSource string

const (
	SourcePolicy  DecisionSource = "policy"
	SourcePlanner DecisionSource = "planner"
)

// TickOutcome is the record emitted by one simulation step.
type TickOutcome struct {
	Tick        int
	Disturbance int
	Action      int
	Source      DecisionSource
	PolicyName  string
	Altitude    int // post-action altitude
	Stable      bool
	Critical    bool
	Explanation string
}

// #endregion tick-outcome

// #region step

// Step executes one tick: disturbance → criticality check → planner-or-policy
// decision → action application. The planner pre-empts the active policy in
// the critical zone; on non-critical ticks the tick's disturbance is fed to
// the policy before it decides, if it observes disturbances. The whole
// sequence is synchronous with no suspension points.
func Step(tick int, env *envsim.Environment, active policy.Policy, recovery *planner.RecoveryPlanner) TickOutcome {
	disturbance := env.ApplyDisturbance()

	var action int
	var source DecisionSource
	var explanation string

	if env.Critical() {
		action = recovery.NextAction(env.Altitude())
		source = SourcePlanner
		explanation = recovery.ExplainPath(env.Altitude())
	} else {
		if obs, ok := active.(policy.DisturbanceObserver); ok {
			obs.Observe(disturbance)
		}
		action = active.Decide(env.Altitude())
		source = SourcePolicy
		explanation = active.Explain(env.Altitude(), action)
	}

	env.ApplyAction(action)

	return TickOutcome{
		Tick:        tick,
		Disturbance: disturbance,
		Action:      action,
		Source:      source,
		PolicyName:  active.Name(),
		Altitude:    env.Altitude(),
		Stable:      env.InSafeBand(),
		Critical:    env.Critical(),
		Explanation: explanation,
	}
}

// #endregion step
