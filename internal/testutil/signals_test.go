package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// First sample of a sine at phase 0 should be 0.
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// All values in [-1, 1].
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicSineReproducible(t *testing.T) {
	a := DeterministicSine(440, 44100, 0.5, 100)
	b := DeterministicSine(440, 44100, 0.5, 100)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestMultiSine(t *testing.T) {
	s := MultiSine([]float64{100, 250}, []float64{0.5, 0.25}, 8000, 256)
	if len(s) != 256 {
		t.Fatalf("len = %d, want 256", len(s))
	}
	for i, v := range s {
		if math.Abs(v) > 0.75+1e-12 {
			t.Fatalf("s[%d] = %v exceeds summed amplitude", i, v)
		}
	}

	single := MultiSine([]float64{100}, []float64{0.5}, 8000, 64)
	RequireSliceNearlyEqual(t, single, DeterministicSine(100, 8000, 0.5, 64), 1e-12)
}

func TestParabolicSpectrum(t *testing.T) {
	mag := ParabolicSpectrum(32,
		Peak{Center: 5.25, Height: 4, Width: 3},
		Peak{Center: 20, Height: 9, Width: 2},
	)
	if len(mag) != 32 {
		t.Fatalf("len = %d, want 32", len(mag))
	}
	if mag[20] != 9 {
		t.Fatalf("mag[20] = %v, want 9", mag[20])
	}
	if mag[0] != 0 || mag[31] != 0 {
		t.Fatalf("floor not zero: %v %v", mag[0], mag[31])
	}
	RequireNear(t, "mag[5]", mag[5], 4*(1-0.0625/9), 1e-12)
}
