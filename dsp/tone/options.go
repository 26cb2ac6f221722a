package tone

import "math"

// Strategy selects how a detected peak's neighbourhood is excluded from the
// following searches.
type Strategy int

const (
	// StrategyMask marks suppressed bins in a [Mask]; the input spectrum is
	// not modified.
	StrategyMask Strategy = iota
	// StrategyShift removes the neighbourhood from the caller's spectrum with
	// [ShiftLeft], leaving a zero-padded tail. The spectrum is consumed.
	StrategyShift
)

// Anchor selects where the suppression window sits relative to the peak bin.
type Anchor int

const (
	// AnchorCentered suppresses every bin closer than the window size to the
	// peak, so no two reported bins are within the window size of each other.
	AnchorCentered Anchor = iota
	// AnchorLeftEdge suppresses floor(windowSize) bins starting at the peak.
	// Bins left of the peak stay eligible.
	AnchorLeftEdge
)

// Scale selects the unit of reported magnitudes.
type Scale int

const (
	// ScaleLinear reports magnitudes as found in the spectrum.
	ScaleLinear Scale = iota
	// ScaleDecibel reports 20*log10(magnitude).
	ScaleDecibel
)

// Option configures a [Detector].
type Option func(*config)

type config struct {
	strategy     Strategy
	anchor       Anchor
	scale        Scale
	floor        float64
	interpMag    bool
	requireAll   bool
	strictLength bool
	unchecked    bool
}

func defaultConfig() config {
	return config{
		strategy: StrategyMask,
		anchor:   AnchorCentered,
		scale:    ScaleLinear,
	}
}

// WithStrategy selects the suppression strategy.
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		if s == StrategyMask || s == StrategyShift {
			c.strategy = s
		}
	}
}

// WithAnchor selects the suppression window placement.
func WithAnchor(a Anchor) Option {
	return func(c *config) {
		if a == AnchorCentered || a == AnchorLeftEdge {
			c.anchor = a
		}
	}
}

// WithScale selects the magnitude unit.
func WithScale(s Scale) Option {
	return func(c *config) {
		if s == ScaleLinear || s == ScaleDecibel {
			c.scale = s
		}
	}
}

// WithDecibels reports magnitudes in dB.
func WithDecibels() Option {
	return WithScale(ScaleDecibel)
}

// WithFloor sets the magnitude a bin must exceed to count as a tone.
// The default is 0, so silent (zero) bins are never reported.
func WithFloor(v float64) Option {
	return func(c *config) {
		if !math.IsNaN(v) && !math.IsInf(v, 1) {
			c.floor = v
		}
	}
}

// WithInterpolatedMagnitude reports the vertex height of the fitted parabola
// instead of the raw peak bin magnitude.
func WithInterpolatedMagnitude() Option {
	return func(c *config) {
		c.interpMag = true
	}
}

// WithRequireAll makes detection fail with [ErrInsufficientPeaks] when fewer
// tones than requested are available. The tones found are still returned.
func WithRequireAll() Option {
	return func(c *config) {
		c.requireAll = true
	}
}

// WithStrictLength additionally requires an even spectrum length, the
// layout of a spectrum truncated to N/2 bins.
func WithStrictLength() Option {
	return func(c *config) {
		c.strictLength = true
	}
}

// WithUnchecked skips per-call argument validation and refines every peak
// with the raw formula, so a degenerate triple yields a non-finite
// frequency. Triples whose centre is not the largest, as next to a
// suppressed taller neighbour, are refined too and may land outside their
// bin. Callers must guarantee the documented preconditions.
func WithUnchecked() Option {
	return func(c *config) {
		c.unchecked = true
	}
}
