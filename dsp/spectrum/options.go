package spectrum

import (
	"math"

	"github.com/cwbudde/algo-tone/dsp/core"
	"github.com/cwbudde/algo-tone/dsp/window"
)

// Backend selects the FFT implementation.
type Backend int

const (
	// BackendAlgoFFT plans transforms with github.com/cwbudde/algo-fft.
	BackendAlgoFFT Backend = iota
	// BackendGoDSP uses github.com/mjibson/go-dsp/fft.
	BackendGoDSP
)

// String returns the backend name used on the command line.
func (b Backend) String() string {
	switch b {
	case BackendGoDSP:
		return "go-dsp"
	default:
		return "algo-fft"
	}
}

// Option configures an [Analyzer].
type Option func(*config)

type config struct {
	window     window.Type
	sampleRate float64
	backend    Backend
	amplitude  bool
}

func defaultConfig() config {
	return config{
		window:     window.TypeHann,
		sampleRate: core.DefaultProcessorConfig().SampleRate,
		backend:    BackendAlgoFFT,
		amplitude:  true,
	}
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// WithSampleRate sets the sample rate in Hz used for [Analyzer.BinWidth].
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 0) {
			c.sampleRate = sampleRate
		}
	}
}

// WithBackend selects the FFT implementation.
func WithBackend(b Backend) Option {
	return func(c *config) {
		if b == BackendAlgoFFT || b == BackendGoDSP {
			c.backend = b
		}
	}
}

// WithAmplitudeScaling enables or disables scaling bins so a bin-centred
// sine of amplitude A reads A. It is enabled by default; disabled, bins are
// raw |X[k]|.
func WithAmplitudeScaling(enabled bool) Option {
	return func(c *config) {
		c.amplitude = enabled
	}
}
