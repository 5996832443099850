package policy

import (
	"fmt"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/envsim"
)

// #region reactive

// Reactive is the threshold policy: climb below the band, descend above it,
// hold inside it. It carries no belief state; the decision log exists for
// observability only.
type Reactive struct {
	band envsim.Band
	log  []DecisionRecord
}

// NewReactive creates a reactive policy correcting toward the given band.
func NewReactive(band envsim.Band) *Reactive {
	return &Reactive{band: band}
}

// Decide is a pure function of altitude alone: below the band → +1, above
// → -1, inside → 0.
func (p *Reactive) Decide(altitude int) int {
	var action int
	switch {
	case altitude < p.band.Low:
		action = 1
	case altitude > p.band.High:
		action = -1
	}
	p.log = append(p.log, DecisionRecord{Altitude: altitude, Action: action})
	return action
}

// Explain renders the rationale matching the branch Decide took.
func (p *Reactive) Explain(altitude, action int) string {
	switch {
	case action > 0:
		return fmt.Sprintf("altitude %d below safe band [%d,%d], climbing", altitude, p.band.Low, p.band.High)
	case action < 0:
		return fmt.Sprintf("altitude %d above safe band [%d,%d], descending", altitude, p.band.Low, p.band.High)
	default:
		return fmt.Sprintf("altitude %d inside safe band [%d,%d], holding", altitude, p.band.Low, p.band.High)
	}
}

// Reset clears the decision log.
func (p *Reactive) Reset() {
	p.log = nil
}

// Name identifies the strategy.
func (p *Reactive) Name() string {
	return "reactive"
}

// Decisions returns a copy of the observability log.
func (p *Reactive) Decisions() []DecisionRecord {
	out := make([]DecisionRecord, len(p.log))
	copy(out, p.log)
	return out
}

// #endregion reactive
