package envsim

import "testing"

func TestRandomWindZeroIntensityIsCalm(t *testing.T) {
	w := NewRandomWind(0, 7)
	for i := 0; i < 1000; i++ {
		if d := w.Next(); d != 0 {
			t.Fatalf("draw %d: got %d at intensity 0, want 0", i, d)
		}
	}
}

func TestRandomWindDrawsOnlyUnitValues(t *testing.T) {
	w := NewRandomWind(1.0, 7)
	counts := map[int]int{}
	for i := 0; i < 3000; i++ {
		d := w.Next()
		if d < -1 || d > 1 {
			t.Fatalf("draw %d: disturbance %d outside {-1,0,+1}", i, d)
		}
		counts[d]++
	}
	// At full intensity every outcome should appear in 3000 draws.
	for _, d := range []int{-1, 0, 1} {
		if counts[d] == 0 {
			t.Errorf("outcome %d never drawn at intensity 1", d)
		}
	}
}

func TestRandomWindClampsIntensity(t *testing.T) {
	if got := NewRandomWind(-0.5, 1).Intensity(); got != 0 {
		t.Errorf("intensity = %v, want 0", got)
	}
	if got := NewRandomWind(2.0, 1).Intensity(); got != 1 {
		t.Errorf("intensity = %v, want 1", got)
	}
}

func TestRandomWindDeterministicWithSeed(t *testing.T) {
	a := NewRandomWind(1.0, 42)
	b := NewRandomWind(1.0, 42)
	for i := 0; i < 100; i++ {
		if da, db := a.Next(), b.Next(); da != db {
			t.Fatalf("draw %d diverged: %d vs %d", i, da, db)
		}
	}
}

func TestScriptedWindCyclesAndClamps(t *testing.T) {
	w := NewScriptedWind([]int{5, -5, 0})
	want := []int{1, -1, 0, 1, -1, 0}
	for i, exp := range want {
		if got := w.Next(); got != exp {
			t.Errorf("draw %d = %d, want %d", i, got, exp)
		}
	}
}

func TestScriptedWindEmptyIsCalm(t *testing.T) {
	w := NewScriptedWind(nil)
	for i := 0; i < 5; i++ {
		if got := w.Next(); got != 0 {
			t.Fatalf("draw %d = %d, want 0", i, got)
		}
	}
}
