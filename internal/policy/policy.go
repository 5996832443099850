// Package policy implements the two corrective decision strategies for the
// altitude-hold loop: a stateless reactive policy and a stateful predictive
// policy, dispatched through a single shared capability.
package policy

// #region capability

// Policy is the shared capability every decision strategy implements.
// The driving loop holds the active strategy through this interface and
// never inspects concrete types for decisions.
type Policy interface {
	// Decide maps the current altitude to a corrective action in {-1, 0, +1}.
	Decide(altitude int) int
	// Explain renders a deterministic human-readable rationale for the
	// branch Decide took for this altitude/action pair.
	Explain(altitude, action int) string
	// Reset clears any internal belief state and observability logs.
	Reset()
	// Name identifies the strategy.
	Name() string
}

// DisturbanceObserver is the optional capability of strategies that maintain
// a belief state about environmental trend. The driving loop feeds the
// tick's disturbance to the active policy before asking it to decide.
type DisturbanceObserver interface {
	Observe(disturbance int)
}

// #endregion capability

// #region decision-record

// DecisionRecord logs one past decision for observability. Logs are
// write-only: no policy ever reads its own log back into a decision.
type DecisionRecord struct {
	Altitude int
	Action   int
}

// #endregion decision-record
