package tone

import "fmt"

// PeakOffset returns the fractional bin offset of the vertex of the parabola
// through (-1, m1), (0, m2) and (1, m3). For a triple whose centre is the
// largest value the offset lies in [-0.5, 0.5].
//
// A zero curvature term (m1 - 2*m2 + m3 == 0) is reported as
// [ErrDegenerateInterpolation].
func PeakOffset(m1, m2, m3 float64) (float64, error) {
	if !isFinite(m1) || !isFinite(m2) || !isFinite(m3) {
		return 0, fmt.Errorf("%w: magnitudes must be finite: %v %v %v", ErrInvalidArgument, m1, m2, m3)
	}

	den := m1 - 2*m2 + m3
	if den == 0 {
		return 0, fmt.Errorf("%w: m1-2*m2+m3 == 0 for %v %v %v", ErrDegenerateInterpolation, m1, m2, m3)
	}

	return 0.5 * (m1 - m3) / den, nil
}

// PeakMagnitude returns the height of the parabola through (-1, m1), (0, m2)
// and (1, m3) at the given offset, normally the one from [PeakOffset].
func PeakMagnitude(m1, m2, m3, offset float64) float64 {
	return m2 - 0.25*(m1-m3)*offset
}

// ResolvePeakFrequency refines the coarse peak frequency f2 using the
// magnitudes of the left neighbour (m1), the peak bin (m2) and the right
// neighbour (m3):
//
//	f = f2 + 0.5*(m1-m3)/(m1-2*m2+m3) * deltaFreq
func ResolvePeakFrequency(f2, m1, m2, m3, deltaFreq float64) (float64, error) {
	if err := validateDeltaFreq(deltaFreq); err != nil {
		return 0, err
	}
	if !isFinite(f2) {
		return 0, fmt.Errorf("%w: coarse frequency must be finite: %v", ErrInvalidArgument, f2)
	}

	offset, err := PeakOffset(m1, m2, m3)
	if err != nil {
		return 0, err
	}

	return f2 + offset*deltaFreq, nil
}

// ResolvePeakFrequencyUnchecked evaluates the [ResolvePeakFrequency] formula
// without validation. A degenerate triple yields NaN or ±Inf.
func ResolvePeakFrequencyUnchecked(f2, m1, m2, m3, deltaFreq float64) float64 {
	return f2 + 0.5*(m1-m3)/(m1-2*m2+m3)*deltaFreq
}

// ResolvePeakFrequencyAt refines bin idx of mag, using idx*deltaFreq as the
// coarse frequency and mag[idx-1], mag[idx], mag[idx+1] as the triple.
// idx must have both neighbours, otherwise [ErrOutOfRange] is returned.
func ResolvePeakFrequencyAt(mag []float64, idx int, deltaFreq float64) (float64, error) {
	if idx < 1 || idx > len(mag)-2 {
		return 0, fmt.Errorf("%w: peak index %d needs both neighbours in a spectrum of %d bins",
			ErrOutOfRange, idx, len(mag))
	}

	return ResolvePeakFrequency(float64(idx)*deltaFreq, mag[idx-1], mag[idx], mag[idx+1], deltaFreq)
}

// ResolvePeakFrequencyAtUnchecked is [ResolvePeakFrequencyAt] without
// validation. It panics if idx has no left or right neighbour.
func ResolvePeakFrequencyAtUnchecked(mag []float64, idx int, deltaFreq float64) float64 {
	return ResolvePeakFrequencyUnchecked(float64(idx)*deltaFreq, mag[idx-1], mag[idx], mag[idx+1], deltaFreq)
}
