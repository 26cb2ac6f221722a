package tone

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument reports a parameter outside its documented domain.
	ErrInvalidArgument = errors.New("tone: invalid argument")
	// ErrOutOfRange reports an index or region that does not fit the slice.
	ErrOutOfRange = errors.New("tone: out of range")
	// ErrDegenerateInterpolation reports a magnitude triple with zero
	// curvature (flat or linear), for which no parabola vertex exists.
	ErrDegenerateInterpolation = errors.New("tone: degenerate interpolation")
	// ErrInsufficientPeaks reports that fewer separated peaks were available
	// than requested. Only returned with [WithRequireAll].
	ErrInsufficientPeaks = errors.New("tone: insufficient peaks")
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateDeltaFreq(deltaFreq float64) error {
	if !isFinite(deltaFreq) || deltaFreq <= 0 {
		return fmt.Errorf("%w: deltaFreq must be finite and > 0: %v", ErrInvalidArgument, deltaFreq)
	}
	return nil
}

func validateWindowSize(windowSize float64) error {
	if !isFinite(windowSize) || windowSize < 1 {
		return fmt.Errorf("%w: window size must be finite and >= 1 bin: %v", ErrInvalidArgument, windowSize)
	}
	return nil
}
