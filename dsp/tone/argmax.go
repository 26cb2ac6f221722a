package tone

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// FindMaxIndex returns the index of the largest value in x.
//
// Ties resolve to the lowest index: the scan runs left to right and only
// moves on a strict improvement. NaN entries never win; an all-NaN slice
// yields 0. An empty slice is reported as [ErrInvalidArgument].
func FindMaxIndex(x []float64) (int, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("%w: max search over empty slice", ErrInvalidArgument)
	}
	return floats.MaxIdx(x), nil
}

// FindMaxIndexUnchecked is [FindMaxIndex] without validation.
// It panics if x is empty.
func FindMaxIndexUnchecked(x []float64) int {
	return floats.MaxIdx(x)
}
