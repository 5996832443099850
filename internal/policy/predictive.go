package policy

import (
	"fmt"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/envsim"
)

// #region config

// DefaultWindowSize is the default capacity of the predictive wind window.
const DefaultWindowSize = 5

// #endregion config

// #region predictive

// Predictive forecasts the next altitude from the rolling mean of recent
// disturbances and corrects pre-emptively. Its only belief state is the
// bounded wind window; with an empty window it behaves exactly like
// Reactive.
type Predictive struct {
	band       envsim.Band
	windowSize int
	window     []int
}

// NewPredictive creates a predictive policy with the default window size.
func NewPredictive(band envsim.Band) *Predictive {
	return NewPredictiveWindow(band, DefaultWindowSize)
}

// NewPredictiveWindow creates a predictive policy with an explicit window
// size. Sizes below 1 fall back to the default.
func NewPredictiveWindow(band envsim.Band, windowSize int) *Predictive {
	if windowSize < 1 {
		windowSize = DefaultWindowSize
	}
	return &Predictive{band: band, windowSize: windowSize}
}

// Observe appends a disturbance to the wind window, evicting the oldest
// entry once the window is full.
func (p *Predictive) Observe(disturbance int) {
	p.window = append(p.window, disturbance)
	if len(p.window) > p.windowSize {
		p.window = p.window[1:]
	}
}

// Trend returns the arithmetic mean of the wind window, 0 when empty.
func (p *Predictive) Trend() float64 {
	if len(p.window) == 0 {
		return 0
	}
	var sum int
	for _, d := range p.window {
		sum += d
	}
	return float64(sum) / float64(len(p.window))
}

// Decide forecasts predicted = altitude + trend and corrects against the
// forecast first; a currently-unsafe altitude is still corrected even when
// the forecast looks benign. The forecast never overrides present danger.
func (p *Predictive) Decide(altitude int) int {
	predicted := float64(altitude) + p.Trend()
	switch {
	case predicted < float64(p.band.Low):
		return 1
	case predicted > float64(p.band.High):
		return -1
	case altitude < p.band.Low:
		return 1
	case altitude > p.band.High:
		return -1
	default:
		return 0
	}
}

// Explain reports the trend and predicted altitude alongside the action.
func (p *Predictive) Explain(altitude, action int) string {
	trend := p.Trend()
	predicted := float64(altitude) + trend
	verb := "holding"
	if action > 0 {
		verb = "climbing"
	} else if action < 0 {
		verb = "descending"
	}
	return fmt.Sprintf("trend %+.2f forecasts altitude %.2f (band [%d,%d]), %s",
		trend, predicted, p.band.Low, p.band.High, verb)
}

// Reset clears the wind window.
func (p *Predictive) Reset() {
	p.window = nil
}

// Name identifies the strategy.
func (p *Predictive) Name() string {
	return "predictive"
}

// Window returns a copy of the current wind window, oldest first.
func (p *Predictive) Window() []int {
	out := make([]int, len(p.window))
	copy(out, p.window)
	return out
}

// #endregion predictive
