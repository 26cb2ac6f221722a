package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// BinWidth returns the Hz spacing of one transform bin,
// sampleRate / fftSize. It returns 0 for a non-positive size.
func BinWidth(sampleRate float64, fftSize int) float64 {
	if fftSize <= 0 {
		return 0
	}
	return sampleRate / float64(fftSize)
}

// BinFrequency maps a (possibly fractional) bin position to Hz.
func BinFrequency(bin, deltaFreq float64) float64 {
	return bin * deltaFreq
}

// FrequencyBin maps a frequency in Hz to its fractional bin position.
// It returns NaN for a non-positive deltaFreq.
func FrequencyBin(freqHz, deltaFreq float64) float64 {
	if deltaFreq <= 0 {
		return math.NaN()
	}
	return freqHz / deltaFreq
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
