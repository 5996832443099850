package envsim

import (
	"math/rand"
	"time"
)

// #region wind-source

// WindSource abstracts per-tick disturbance generation so the environment
// can be driven by real randomness or by a scripted sequence in replay.
type WindSource interface {
	// Next returns the disturbance for the current tick: -1, 0, or +1.
	Next() int
}

// #endregion wind-source

// #region random-wind

// RandomWind draws disturbances with an intensity-weighted distribution.
// P(0) interpolates linearly from 1 at intensity 0 down to 1/3 at
// intensity 1; the two non-zero outcomes stay equiprobable at every
// intensity: P(-1) = P(+1) = intensity/3.
type RandomWind struct {
	intensity float64
	rng       *rand.Rand
}

// NewRandomWind creates a wind source with the given intensity in [0, 1]
// (clamped). Seed 0 seeds from the wall clock.
func NewRandomWind(intensity float64, seed int64) *RandomWind {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomWind{
		intensity: intensity,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Next draws one disturbance. Generation is total: it always succeeds.
func (w *RandomWind) Next() int {
	p := w.intensity / 3.0
	r := w.rng.Float64()
	switch {
	case r < p:
		return -1
	case r < 2*p:
		return 1
	default:
		return 0
	}
}

// Intensity returns the configured wind intensity.
func (w *RandomWind) Intensity() float64 {
	return w.intensity
}

// #endregion random-wind

// #region scripted-wind

// ScriptedWind replays a fixed disturbance sequence, cycling when the
// sequence is exhausted. An empty script yields calm air forever.
type ScriptedWind struct {
	script []int
	pos    int
}

// NewScriptedWind creates a scripted wind source. Values outside {-1, 0, +1}
// are clamped to the nearest valid disturbance.
func NewScriptedWind(script []int) *ScriptedWind {
	cleaned := make([]int, len(script))
	for i, d := range script {
		if d < -1 {
			d = -1
		}
		if d > 1 {
			d = 1
		}
		cleaned[i] = d
	}
	return &ScriptedWind{script: cleaned}
}

// Next returns the next scripted disturbance.
func (w *ScriptedWind) Next() int {
	if len(w.script) == 0 {
		return 0
	}
	d := w.script[w.pos]
	w.pos = (w.pos + 1) % len(w.script)
	return d
}

// #endregion scripted-wind
