package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/envsim"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a scripted
// disturbance sequence plus the expected per-tick outcomes.
type Fixture struct {
	Description  string         `json:"description"`
	Config       FixtureConfig  `json:"config"`
	Policy       string         `json:"policy"`
	Disturbances []int          `json:"disturbances"`
	Expected     []ExpectedTick `json:"expected"`
}

// FixtureConfig mirrors envsim.Config with JSON tags.
type FixtureConfig struct {
	MinAltitude     int `json:"min_altitude"`
	MaxAltitude     int `json:"max_altitude"`
	SafeMin         int `json:"safe_min"`
	SafeMax         int `json:"safe_max"`
	CriticalLow     int `json:"critical_low"`
	CriticalHigh    int `json:"critical_high"`
	InitialAltitude int `json:"initial_altitude"`
}

// ExpectedTick captures the expected outcome of one replayed tick.
type ExpectedTick struct {
	Tick     int    `json:"tick"`
	Altitude int    `json:"altitude"`
	Action   int    `json:"action"`
	Source   string `json:"source"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Policy == "" {
		f.Policy = "reactive"
	}
	return &f, nil
}

// WriteFixture marshals a fixture to disk, used by fixture-export.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// ToEnvConfig converts the fixture config to a domain envsim.Config. A
// zeroed config falls back to the standard defaults.
func (fc *FixtureConfig) ToEnvConfig() envsim.Config {
	if *fc == (FixtureConfig{}) {
		return envsim.DefaultConfig()
	}
	return envsim.Config{
		Bounds:          envsim.Bounds{Min: fc.MinAltitude, Max: fc.MaxAltitude},
		Band:            envsim.Band{Low: fc.SafeMin, High: fc.SafeMax},
		CriticalLow:     fc.CriticalLow,
		CriticalHigh:    fc.CriticalHigh,
		InitialAltitude: fc.InitialAltitude,
	}
}

// FromEnvConfig converts a domain config to its fixture mirror.
func FromEnvConfig(cfg envsim.Config) FixtureConfig {
	return FixtureConfig{
		MinAltitude:     cfg.Bounds.Min,
		MaxAltitude:     cfg.Bounds.Max,
		SafeMin:         cfg.Band.Low,
		SafeMax:         cfg.Band.High,
		CriticalLow:     cfg.CriticalLow,
		CriticalHigh:    cfg.CriticalHigh,
		InitialAltitude: cfg.InitialAltitude,
	}
}

// #endregion fixture-loader
