package envsim

import "testing"

func calmEnv(initial int) *Environment {
	cfg := DefaultConfig()
	cfg.InitialAltitude = initial
	return NewWithWind(cfg, NewScriptedWind(nil))
}

func TestNewClampsInitialAltitude(t *testing.T) {
	cases := []struct {
		initial int
		want    int
	}{
		{-5, 0},
		{0, 0},
		{5, 5},
		{10, 10},
		{42, 10},
	}
	for _, c := range cases {
		env := calmEnv(c.initial)
		if got := env.Altitude(); got != c.want {
			t.Errorf("initial %d: altitude = %d, want %d", c.initial, got, c.want)
		}
	}
}

func TestAltitudeStaysInBoundsUnderDisturbanceAndAction(t *testing.T) {
	for a := 0; a <= 10; a++ {
		for _, d := range []int{-1, 0, 1} {
			for _, action := range []int{-1, 0, 1} {
				cfg := DefaultConfig()
				cfg.InitialAltitude = a
				env := NewWithWind(cfg, NewScriptedWind([]int{d}))
				env.ApplyDisturbance()
				env.ApplyAction(action)
				if got := env.Altitude(); got < 0 || got > 10 {
					t.Fatalf("a=%d d=%d action=%d: altitude %d out of [0,10]", a, d, action, got)
				}
			}
		}
	}
}

func TestApplyDisturbanceAppendsHistory(t *testing.T) {
	env := NewWithWind(DefaultConfig(), NewScriptedWind([]int{1, -1}))

	if got := len(env.History()); got != 1 {
		t.Fatalf("fresh env history length = %d, want 1", got)
	}

	d := env.ApplyDisturbance()
	if d != 1 {
		t.Fatalf("drawn disturbance = %d, want 1", d)
	}
	hist := env.History()
	if len(hist) != 2 {
		t.Fatalf("history length = %d, want 2", len(hist))
	}
	last := hist[len(hist)-1]
	if last.Altitude != 6 || last.Disturbance != 1 || !last.Stable {
		t.Errorf("record = %+v, want altitude 6, disturbance 1, stable", last)
	}
}

func TestApplyActionDoesNotAppendHistory(t *testing.T) {
	env := calmEnv(5)
	env.ApplyAction(1)
	if got := len(env.History()); got != 1 {
		t.Errorf("history length after action = %d, want 1", got)
	}
	if got := env.Altitude(); got != 6 {
		t.Errorf("altitude = %d, want 6", got)
	}
}

func TestHistoryIsDefensiveCopy(t *testing.T) {
	env := calmEnv(5)
	hist := env.History()
	hist[0].Altitude = 99
	if env.History()[0].Altitude == 99 {
		t.Error("mutating the returned history leaked into the environment")
	}
}

func TestZoneClassification(t *testing.T) {
	cases := []struct {
		altitude int
		critical bool
		safe     bool
		zone     Zone
	}{
		{0, true, false, ZoneCritical},
		{2, true, false, ZoneCritical},
		{3, false, false, ZoneUnstable},
		{4, false, true, ZoneSafe},
		{5, false, true, ZoneSafe},
		{6, false, true, ZoneSafe},
		{7, false, false, ZoneUnstable},
		{8, true, false, ZoneCritical},
		{10, true, false, ZoneCritical},
	}
	for _, c := range cases {
		env := calmEnv(c.altitude)
		if got := env.Critical(); got != c.critical {
			t.Errorf("altitude %d: Critical() = %v, want %v", c.altitude, got, c.critical)
		}
		if got := env.InSafeBand(); got != c.safe {
			t.Errorf("altitude %d: InSafeBand() = %v, want %v", c.altitude, got, c.safe)
		}
		if got := env.Classify(); got != c.zone {
			t.Errorf("altitude %d: Classify() = %s, want %s", c.altitude, got, c.zone)
		}
		if env.Critical() && env.InSafeBand() {
			t.Errorf("altitude %d: critical and safe simultaneously", c.altitude)
		}
	}
}

func TestResetClearsHistoryAndClamps(t *testing.T) {
	env := NewWithWind(DefaultConfig(), NewScriptedWind([]int{1, 1, 1}))
	env.ApplyDisturbance()
	env.ApplyDisturbance()

	env.Reset(-3)

	if got := env.Altitude(); got != 0 {
		t.Errorf("altitude after reset(-3) = %d, want 0", got)
	}
	hist := env.History()
	if len(hist) != 1 {
		t.Fatalf("history length after reset = %d, want 1", len(hist))
	}
	if hist[0].Disturbance != 0 {
		t.Errorf("initial record disturbance = %d, want 0", hist[0].Disturbance)
	}
	if hist[0].Stable {
		t.Error("altitude 0 recorded as stable")
	}
}

func TestRecentTrendAveragesLastDisturbances(t *testing.T) {
	env := NewWithWind(DefaultConfig(), NewScriptedWind([]int{-1, -1, 1, 0}))
	for i := 0; i < 4; i++ {
		env.ApplyDisturbance()
	}

	// Last 4 recorded disturbances: -1, -1, 1, 0 → mean -0.25.
	if got := env.RecentTrend(4); got != -0.25 {
		t.Errorf("RecentTrend(4) = %v, want -0.25", got)
	}
	if got := env.RecentTrend(0); got != 0 {
		t.Errorf("RecentTrend(0) = %v, want 0", got)
	}
	// Window larger than history covers everything including the seed record.
	if got := env.RecentTrend(100); got != -1.0/5.0 {
		t.Errorf("RecentTrend(100) = %v, want -0.2", got)
	}
}
