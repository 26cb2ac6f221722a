package spectrum

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultRolloff is the energy fraction used by [Describe] for [Features.Rolloff].
const DefaultRolloff = 0.85

// Features summarizes the shape of a one-sided magnitude spectrum.
type Features struct {
	Centroid float64 // Hz
	Spread   float64 // Hz, standard deviation around Centroid
	// Flatness is the geometric over the arithmetic mean of bins 1..N-1:
	// near 1 for noise, near 0 for a few dominant tones.
	Flatness float64
	Rolloff  float64 // Hz below which DefaultRolloff of the energy lies
}

// Describe computes the spectral shape of mag, whose bin i lies at
// i*binWidth Hz. An empty or silent spectrum yields zero features.
func Describe(mag []float64, binWidth float64) Features {
	if len(mag) < 2 {
		return Features{}
	}

	sum := vecmath.Sum(mag)
	if sum == 0 {
		return Features{}
	}

	var f Features
	f.Centroid = Centroid(mag, binWidth)

	var sq float64
	for i, v := range mag {
		d := float64(i)*binWidth - f.Centroid
		sq += d * d * v
	}
	f.Spread = math.Sqrt(sq / sum)

	f.Flatness = Flatness(mag)
	f.Rolloff = Rolloff(mag, binWidth, DefaultRolloff)

	return f
}

// Centroid returns the magnitude-weighted mean frequency of mag in Hz.
func Centroid(mag []float64, binWidth float64) float64 {
	sum := vecmath.Sum(mag)
	if len(mag) < 2 || sum == 0 {
		return 0
	}

	var weighted float64
	for i, v := range mag {
		weighted += float64(i) * v
	}
	return weighted / sum * binWidth
}

// Flatness returns the spectral flatness of mag in [0, 1], skipping DC.
// A zero bin makes the geometric mean, and so the flatness, zero.
func Flatness(mag []float64) float64 {
	if len(mag) < 2 {
		return 0
	}

	bins := mag[1:]
	mean := vecmath.Sum(bins) / float64(len(bins))
	if mean <= 0 {
		return 0
	}

	var sumLog float64
	for _, v := range bins {
		if v <= 0 {
			return 0
		}
		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/float64(len(bins))) / mean
}

// Rolloff returns the lowest bin frequency in Hz at or below which the given
// fraction of the spectral energy lies.
func Rolloff(mag []float64, binWidth, fraction float64) float64 {
	energy := vecmath.DotProduct(mag, mag)
	if len(mag) < 2 || energy == 0 {
		return 0
	}

	threshold := fraction * energy
	var cum float64
	for i, v := range mag {
		cum += v * v
		if cum >= threshold {
			return float64(i) * binWidth
		}
	}
	return float64(len(mag)-1) * binWidth
}
