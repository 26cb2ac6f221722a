package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tone/internal/testutil"
)

func TestDescribe(t *testing.T) {
	f := Describe([]float64{0, 1, 2, 1, 0}, 1000)

	testutil.RequireNear(t, "centroid", f.Centroid, 2000, 1e-9)
	testutil.RequireNear(t, "spread", f.Spread, 1000/math.Sqrt2, 1e-9)
	testutil.RequireNear(t, "rolloff", f.Rolloff, 3000, 1e-9)

	if f.Flatness != 0 {
		t.Fatalf("flatness with a zero bin = %v, want 0", f.Flatness)
	}
}

func TestDescribeDegenerate(t *testing.T) {
	tests := []struct {
		name string
		mag  []float64
	}{
		{name: "nil", mag: nil},
		{name: "single bin", mag: []float64{3}},
		{name: "silent", mag: make([]float64, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.mag, 10); got != (Features{}) {
				t.Fatalf("Describe = %+v, want zero", got)
			}
		})
	}
}

func TestFlatness(t *testing.T) {
	testutil.RequireNear(t, "flat", Flatness([]float64{0, 1, 1, 1, 1}), 1, 1e-12)
	testutil.RequireNear(t, "ignores DC", Flatness([]float64{100, 2, 2, 2}), 1, 1e-12)

	// Geometric mean of {1, 4} is 2, arithmetic mean 2.5.
	testutil.RequireNear(t, "two bins", Flatness([]float64{0, 1, 4}), 0.8, 1e-12)
}

func TestRolloffFraction(t *testing.T) {
	mag := []float64{1, 1, 1, 1}

	testutil.RequireNear(t, "half", Rolloff(mag, 10, 0.5), 10, 1e-12)
	testutil.RequireNear(t, "all", Rolloff(mag, 10, 1), 30, 1e-12)
}

func TestFlatnessSeparatesToneFromNoise(t *testing.T) {
	const n = 4096

	a, err := NewAnalyzer(n, WithSampleRate(48000))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	sine, err := a.Magnitude(testutil.DeterministicSine(1234.5, 48000, 0.5, n))
	if err != nil {
		t.Fatalf("Magnitude sine: %v", err)
	}
	noise, err := a.Magnitude(testutil.DeterministicNoise(7, 0.5, n))
	if err != nil {
		t.Fatalf("Magnitude noise: %v", err)
	}

	tonal := Describe(sine, a.BinWidth())
	noisy := Describe(noise, a.BinWidth())

	if tonal.Flatness > 0.1 {
		t.Fatalf("sine flatness = %v, want < 0.1", tonal.Flatness)
	}
	if noisy.Flatness < 0.6 {
		t.Fatalf("noise flatness = %v, want > 0.6", noisy.Flatness)
	}
	if math.Abs(tonal.Centroid-1234.5) > 200 {
		t.Fatalf("sine centroid = %v, want near 1234.5", tonal.Centroid)
	}
}
