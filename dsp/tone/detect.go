package tone

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/cwbudde/algo-tone/dsp/core"
)

// Tone is one detected spectral peak.
type Tone struct {
	Frequency float64 // refined frequency in Hz
	Magnitude float64 // linear or dB, see [Scale]
	Bin       int     // source bin in the caller's spectrum
}

// Detector finds the strongest separated tones of magnitude spectra sharing
// one bin width. It holds no per-call state and may be used concurrently on
// distinct spectra.
type Detector struct {
	deltaFreq  float64
	windowSize float64
	cfg        config
}

// NewDetector returns a detector for spectra with the given bin width in Hz.
// windowSize is the suppression width in bins and must be at least 1.
func NewDetector(deltaFreq, windowSize float64, opts ...Option) (*Detector, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateDeltaFreq(deltaFreq); err != nil {
		return nil, err
	}
	if err := validateWindowSize(windowSize); err != nil {
		return nil, err
	}

	return &Detector{
		deltaFreq:  deltaFreq,
		windowSize: windowSize,
		cfg:        cfg,
	}, nil
}

// DeltaFreq returns the bin width in Hz.
func (d *Detector) DeltaFreq() float64 { return d.deltaFreq }

// WindowSize returns the suppression width in bins.
func (d *Detector) WindowSize() float64 { return d.windowSize }

// Strategy returns the configured suppression strategy.
func (d *Detector) Strategy() Strategy { return d.cfg.strategy }

// Detect returns up to nPeaks tones of mag in decreasing magnitude order.
// With [WithInterpolatedMagnitude] the order follows the reported heights.
//
// Fewer tones are returned when the spectrum runs out of unsuppressed bins
// above the floor. With [StrategyShift] mag is consumed.
func (d *Detector) Detect(mag []float64, nPeaks int) ([]Tone, error) {
	if !d.cfg.unchecked {
		if err := d.validate(mag, nPeaks); err != nil {
			return nil, err
		}
	}
	if nPeaks <= 0 {
		return []Tone{}, nil
	}

	tones := make([]Tone, 0, nPeaks)
	switch d.cfg.strategy {
	case StrategyShift:
		tones = d.detectShift(mag, nPeaks, tones)
	default:
		tones = d.detectMask(mag, nPeaks, tones)
	}

	if d.cfg.interpMag {
		// A parabola height can exceed that of an earlier, taller bin.
		slices.SortStableFunc(tones, func(a, b Tone) int {
			return cmp.Compare(b.Magnitude, a.Magnitude)
		})
	}

	if d.cfg.requireAll && len(tones) < nPeaks {
		return tones, fmt.Errorf("%w: found %d of %d", ErrInsufficientPeaks, len(tones), nPeaks)
	}

	return tones, nil
}

// DetectInto writes len(out)/2 tones into out as [freq0, mag0, freq1, mag1, ...]
// and returns how many were found. Unused pairs are zeroed.
func (d *Detector) DetectInto(mag, out []float64) (int, error) {
	if !d.cfg.unchecked && len(out)%2 != 0 {
		return 0, fmt.Errorf("%w: output length must be even: %d", ErrInvalidArgument, len(out))
	}

	return d.detectInto(mag, out, len(out)/2)
}

// DetectTopTones fills out, which must hold exactly 2*nPeaks values, with
// the nPeaks strongest tones of mag laid out as [freq0, mag0, freq1, mag1, ...].
//
// Peaks are at least windowSize bins apart and are refined with
// [ResolvePeakFrequency] using bin width deltaFreq. The neighbourhood of each
// peak is removed from mag with [ShiftLeft], so mag is consumed; pass a copy
// to keep it. When fewer than nPeaks tones exist the remaining pairs are
// zeroed. The number of tones written is returned. opts can override the
// defaults, including the strategy.
func DetectTopTones(mag []float64, windowSize, deltaFreq float64, out []float64, nPeaks int, opts ...Option) (int, error) {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithStrategy(StrategyShift))
	all = append(all, opts...)

	d, err := NewDetector(deltaFreq, windowSize, all...)
	if err != nil {
		return 0, err
	}

	return d.detectInto(mag, out, nPeaks)
}

func (d *Detector) detectInto(mag, out []float64, nPeaks int) (int, error) {
	if !d.cfg.unchecked && len(out) != 2*nPeaks {
		return 0, fmt.Errorf("%w: output length %d, want 2*nPeaks = %d", ErrInvalidArgument, len(out), 2*nPeaks)
	}

	tones, err := d.Detect(mag, nPeaks)
	if err != nil && !errors.Is(err, ErrInsufficientPeaks) {
		return 0, err
	}

	for i, tn := range tones {
		out[2*i] = tn.Frequency
		out[2*i+1] = tn.Magnitude
	}
	clear(out[2*len(tones):])

	return len(tones), err
}

func (d *Detector) validate(mag []float64, nPeaks int) error {
	if nPeaks < 0 {
		return fmt.Errorf("%w: peak count must be >= 0: %d", ErrInvalidArgument, nPeaks)
	}
	if len(mag) < 3 {
		return fmt.Errorf("%w: spectrum needs at least 3 bins: %d", ErrInvalidArgument, len(mag))
	}
	if float64(len(mag)) <= math.Floor(d.windowSize) {
		return fmt.Errorf("%w: spectrum of %d bins must exceed window size %v",
			ErrInvalidArgument, len(mag), d.windowSize)
	}
	if d.cfg.strictLength && len(mag)%2 != 0 {
		return fmt.Errorf("%w: spectrum length must be even: %d", ErrInvalidArgument, len(mag))
	}
	return nil
}

// detectMask searches bins [1, n-2] and marks each peak's neighbourhood in a
// Mask. mag is only read.
func (d *Detector) detectMask(mag []float64, nPeaks int, tones []Tone) []Tone {
	n := len(mag)
	mask := NewMask(n)

	for len(tones) < nPeaks {
		bin, ok := mask.MaxIndex(mag, 1, n-1)
		if !ok || !(mag[bin] > d.cfg.floor) {
			break
		}

		tones = append(tones, d.measure(mag, bin))

		lo, hi := d.region(bin, n)
		mask.Suppress(lo, hi)
	}

	return tones
}

// detectShift consumes mag. bins tracks the physical bin of every live
// position and is shifted in lockstep, so positions [1, live-2] always hold
// exactly the unsuppressed bins of [1, n-2]. Refinement reads a snapshot,
// because a shifted neighbour is no longer the physical one.
func (d *Detector) detectShift(mag []float64, nPeaks int, tones []Tone) []Tone {
	n := len(mag)
	if n < 3 {
		return tones
	}

	orig := make([]float64, n)
	copy(orig, mag)

	bins := make([]int, n)
	for i := range bins {
		bins[i] = i
	}

	live := n
	for len(tones) < nPeaks && live >= 3 {
		pos := FindMaxIndexUnchecked(mag[1:live-1]) + 1
		if !(mag[pos] > d.cfg.floor) {
			break
		}

		bin := bins[pos]
		tones = append(tones, d.measure(orig, bin))

		lo, hi := d.region(bin, n)
		start := sort.SearchInts(bins[:live], lo)
		dist := sort.SearchInts(bins[:live], hi) - start

		ShiftLeftUnchecked(mag, start, dist)
		ShiftLeftUnchecked(bins, start, dist)
		live -= dist
	}

	return tones
}

// region returns the bins [lo, hi) suppressed after a peak at bin, clamped to
// the search range [1, n-1) so DC and the last bin keep their positions.
func (d *Detector) region(bin, n int) (lo, hi int) {
	switch d.cfg.anchor {
	case AnchorLeftEdge:
		lo = bin
		hi = bin + int(math.Floor(d.windowSize))
	default:
		r := int(math.Ceil(d.windowSize)) - 1
		lo = bin - r
		hi = bin + r + 1
	}

	return max(lo, 1), min(hi, n-1)
}

// measure refines bin against its physical neighbours in mag.
func (d *Detector) measure(mag []float64, bin int) Tone {
	m1, m2, m3 := mag[bin-1], mag[bin], mag[bin+1]

	offset, refine := 0.5*(m1-m3)/(m1-2*m2+m3), true
	if !d.cfg.unchecked {
		var err error
		offset, err = PeakOffset(m1, m2, m3)
		// Only a concave triple peaking at its centre has its vertex inside
		// the bin. Anything else, e.g. next to a suppressed taller neighbour,
		// keeps the coarse bin.
		refine = err == nil && m1-2*m2+m3 < 0 && m2 >= m1 && m2 >= m3
	}

	freq := float64(bin) * d.deltaFreq
	level := m2
	if refine {
		freq += offset * d.deltaFreq
		if d.cfg.interpMag {
			level = PeakMagnitude(m1, m2, m3, offset)
		}
	}

	if d.cfg.scale == ScaleDecibel {
		level = core.LinearToDB(level)
	}

	return Tone{Frequency: freq, Magnitude: level, Bin: bin}
}
