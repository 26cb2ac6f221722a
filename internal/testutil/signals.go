package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// MultiSine sums sines of the given frequencies and amplitudes. Each partial
// starts at a distinct phase so the sum does not peak at sample zero.
func MultiSine(freqsHz, amplitudes []float64, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for k, f := range freqsHz {
		step := 2 * math.Pi * f / sampleRate
		phase := 0.7 * float64(k)
		for i := range out {
			out[i] += amplitudes[k] * math.Sin(step*float64(i)+phase)
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Peak is one parabolic hump of a synthetic spectrum.
type Peak struct {
	Center float64 // fractional bin of the vertex
	Height float64
	Width  float64 // half-width in bins at which the hump reaches zero
}

// ParabolicSpectrum returns n bins holding the upper envelope of the given
// parabolic humps over a floor of zero. Quadratic refinement recovers every
// Center exactly as long as the peak's three-bin neighbourhood lies inside
// its own hump.
func ParabolicSpectrum(n int, peaks ...Peak) []float64 {
	out := make([]float64, n)
	for i := range out {
		for _, p := range peaks {
			d := float64(i) - p.Center
			v := p.Height * (1 - d*d/(p.Width*p.Width))
			out[i] = math.Max(out[i], v)
		}
	}
	return out
}
