package tone

import "fmt"

// ShiftLeft removes the dist elements starting at start by moving every
// element from start+dist onwards dist positions to the left. The vacated
// tail x[len(x)-dist:] is set to the zero value.
//
// dist == 0 leaves x untouched; start == 0 with dist == len(x) zeroes x.
// A region that does not fit (start < 0, dist < 0, start+dist > len(x)) is
// reported as [ErrOutOfRange].
func ShiftLeft[T any](x []T, start, dist int) error {
	if start < 0 || dist < 0 || start > len(x)-dist {
		return fmt.Errorf("%w: shift start=%d dist=%d over %d elements", ErrOutOfRange, start, dist, len(x))
	}

	ShiftLeftUnchecked(x, start, dist)

	return nil
}

// ShiftLeftUnchecked is [ShiftLeft] without validation. It panics when the
// region does not fit.
func ShiftLeftUnchecked[T any](x []T, start, dist int) {
	if dist == 0 {
		return
	}

	n := len(x)
	copy(x[start:], x[start+dist:])
	clear(x[n-dist:])
}
