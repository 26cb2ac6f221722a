package core

// ProcessorConfig defines the analysis settings shared by generators,
// spectrum analyzers and scanners.
type ProcessorConfig struct {
	SampleRate float64
	FFTSize    int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults suited to tone analysis of
// full-band audio: 48 kHz and a 4096-point transform (~11.7 Hz bins).
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		FFTSize:    4096,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFFTSize sets the transform length in samples.
func WithFFTSize(fftSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if fftSize > 0 {
			cfg.FFTSize = fftSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// BinWidth returns the frequency resolution of the configured transform.
func (c ProcessorConfig) BinWidth() float64 {
	return BinWidth(c.SampleRate, c.FFTSize)
}
