package tone

import "math"

// Mask records which bins of a spectrum have been excluded from peak search.
// Suppressing a region costs O(width) and never moves spectrum data.
type Mask struct {
	suppressed []bool
	remaining  int
}

// NewMask returns a mask for a spectrum of n bins with nothing suppressed.
func NewMask(n int) *Mask {
	n = max(n, 0)
	return &Mask{
		suppressed: make([]bool, n),
		remaining:  n,
	}
}

// Len returns the number of bins covered by the mask.
func (m *Mask) Len() int {
	return len(m.suppressed)
}

// Remaining returns the number of bins not yet suppressed.
func (m *Mask) Remaining() int {
	return m.remaining
}

// Reset clears all suppressions.
func (m *Mask) Reset() {
	clear(m.suppressed)
	m.remaining = len(m.suppressed)
}

// Suppress excludes bins [lo, hi), clamped to the mask, and returns how many
// bins were newly suppressed.
func (m *Mask) Suppress(lo, hi int) int {
	lo = max(lo, 0)
	hi = min(hi, len(m.suppressed))

	n := 0
	for i := lo; i < hi; i++ {
		if !m.suppressed[i] {
			m.suppressed[i] = true
			n++
		}
	}
	m.remaining -= n

	return n
}

// IsSuppressed reports whether bin i is excluded. Bins outside the mask count
// as suppressed.
func (m *Mask) IsSuppressed(i int) bool {
	if i < 0 || i >= len(m.suppressed) {
		return true
	}
	return m.suppressed[i]
}

// MaxIndex returns the first index of the largest unsuppressed, non-NaN value
// of x within [lo, hi). ok is false when no such bin exists.
func (m *Mask) MaxIndex(x []float64, lo, hi int) (idx int, ok bool) {
	lo = max(lo, 0)
	hi = min(hi, len(x), len(m.suppressed))

	idx = -1
	best := math.Inf(-1)
	for i := lo; i < hi; i++ {
		if m.suppressed[i] {
			continue
		}
		v := x[i]
		if math.IsNaN(v) {
			continue
		}
		if idx < 0 || v > best {
			idx = i
			best = v
		}
	}

	return idx, idx >= 0
}
