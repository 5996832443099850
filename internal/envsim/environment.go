package envsim

import "time"

// #region environment

// Environment owns the authoritative altitude state for one run: the current
// altitude, the bounds and safe band, the wind source, and the append-only
// history. It is single-owner state; nothing here locks or blocks.
type Environment struct {
	config   Config
	wind     WindSource
	altitude int
	history  []HistoryRecord
}

// New creates an environment from config. The initial altitude is clamped
// into bounds, never rejected. A nil-safe default wind source is built from
// the config's intensity and seed.
func New(cfg Config) *Environment {
	return NewWithWind(cfg, NewRandomWind(cfg.WindIntensity, cfg.Seed))
}

// NewWithWind creates an environment with an injected wind source, used by
// the replay harness and tests to script disturbances.
func NewWithWind(cfg Config, wind WindSource) *Environment {
	env := &Environment{
		config: cfg,
		wind:   wind,
	}
	env.Reset(cfg.InitialAltitude)
	return env
}

// #endregion environment

// #region mutators

// ApplyDisturbance draws one disturbance, shifts the altitude, clamps it,
// appends a history record, and returns the drawn value.
func (e *Environment) ApplyDisturbance() int {
	d := e.wind.Next()
	e.altitude = e.config.Bounds.Clamp(e.altitude + d)
	e.history = append(e.history, HistoryRecord{
		Altitude:    e.altitude,
		Disturbance: d,
		Timestamp:   time.Now().UTC(),
		Stable:      e.InSafeBand(),
	})
	return d
}

// ApplyAction shifts the altitude by a corrective action and clamps it.
// Actions do not append history: the recorded series tracks
// post-disturbance, pre-action transitions only.
func (e *Environment) ApplyAction(action int) {
	e.altitude = e.config.Bounds.Clamp(e.altitude + action)
}

// Reset clamps and sets the altitude, clears history, and seeds one initial
// record with disturbance 0.
func (e *Environment) Reset(initial int) {
	e.altitude = e.config.Bounds.Clamp(initial)
	e.history = []HistoryRecord{{
		Altitude:    e.altitude,
		Disturbance: 0,
		Timestamp:   time.Now().UTC(),
		Stable:      e.InSafeBand(),
	}}
}

// #endregion mutators

// #region queries

// Altitude returns the current altitude (post-action when queried between
// ticks).
func (e *Environment) Altitude() int {
	return e.altitude
}

// SafeBand returns the configured safe band.
func (e *Environment) SafeBand() Band {
	return e.config.Band
}

// AltitudeBounds returns the configured altitude bounds.
func (e *Environment) AltitudeBounds() Bounds {
	return e.config.Bounds
}

// InSafeBand reports whether the current altitude is inside the safe band.
func (e *Environment) InSafeBand() bool {
	return e.config.Band.Contains(e.altitude)
}

// Critical reports whether the current altitude is outside the wider
// critical-free region. Checked independently of band membership.
func (e *Environment) Critical() bool {
	return e.altitude < e.config.CriticalLow || e.altitude > e.config.CriticalHigh
}

// Classify returns the three-zone classification of the current altitude.
// Critical takes precedence over the band check.
func (e *Environment) Classify() Zone {
	switch {
	case e.Critical():
		return ZoneCritical
	case e.InSafeBand():
		return ZoneSafe
	default:
		return ZoneUnstable
	}
}

// History returns a defensive copy of the run's history records.
func (e *Environment) History() []HistoryRecord {
	out := make([]HistoryRecord, len(e.history))
	copy(out, e.history)
	return out
}

// RecentTrend returns the arithmetic mean of the last window recorded
// disturbances, 0 when the window is empty or non-positive.
func (e *Environment) RecentTrend(window int) float64 {
	if window <= 0 || len(e.history) == 0 {
		return 0
	}
	start := len(e.history) - window
	if start < 0 {
		start = 0
	}
	recent := e.history[start:]
	var sum int
	for _, rec := range recent {
		sum += rec.Disturbance
	}
	return float64(sum) / float64(len(recent))
}

// #endregion queries
