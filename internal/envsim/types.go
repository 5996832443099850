package envsim

import "time"

// #region bounds

// Bounds is the closed altitude range the vehicle can occupy.
type Bounds struct {
	Min int
	Max int
}

// Clamp restricts a to the bounds.
func (b Bounds) Clamp(a int) int {
	if a < b.Min {
		return b.Min
	}
	if a > b.Max {
		return b.Max
	}
	return a
}

// #endregion bounds

// #region band

// Band is the closed safe sub-interval inside the altitude bounds.
type Band struct {
	Low  int
	High int
}

// Contains reports whether a lies inside the band.
func (b Band) Contains(a int) bool {
	return a >= b.Low && a <= b.High
}

// #endregion band

// #region zone

// Zone is the three-way stability classification of an altitude.
type Zone string

const (
	ZoneSafe     Zone = "safe"
	ZoneUnstable Zone = "unstable"
	ZoneCritical Zone = "critical"
)

// #endregion zone

// #region history-record

// HistoryRecord is an immutable snapshot appended after each disturbance.
// Records track post-disturbance, pre-action altitude: corrective actions
// mutate the environment but never append here.
type HistoryRecord struct {
	Altitude    int
	Disturbance int
	Timestamp   time.Time
	Stable      bool
}

// #endregion history-record

// #region config

// Config holds the static parameters of an environment.
type Config struct {
	Bounds          Bounds
	Band            Band
	CriticalLow     int // altitudes strictly below this are critical
	CriticalHigh    int // altitudes strictly above this are critical
	InitialAltitude int
	WindIntensity   float64 // 0 = dead calm, 1 = flat one-third split
	Seed            int64   // 0 = time-seeded
}

// DefaultConfig returns the standard 0..10 range with safe band 4..6,
// critical thresholds 3/7, start altitude 5, and full wind intensity.
func DefaultConfig() Config {
	return Config{
		Bounds:          Bounds{Min: 0, Max: 10},
		Band:            Band{Low: 4, High: 6},
		CriticalLow:     3,
		CriticalHigh:    7,
		InitialAltitude: 5,
		WindIntensity:   1.0,
	}
}

// #endregion config
