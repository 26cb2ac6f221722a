package spectrum

import (
	"fmt"
	"sync"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-tone/dsp/window"
)

// Analyzer computes windowed one-sided magnitude spectra of fixed FFT size.
//
// An Analyzer is safe for concurrent use; every call draws its own FFT state
// from an internal pool.
type Analyzer struct {
	fftSize int
	cfg     config
	coeffs  []float64 // periodic window of fftSize samples
	scale   float64
	states  sync.Pool
}

type frameState struct {
	plan *algofft.Plan[complex128]
	buf  []float64
	in   []complex128
	out  []complex128
}

// NewAnalyzer returns an analyzer for frames of up to fftSize samples.
func NewAnalyzer(fftSize int, opts ...Option) (*Analyzer, error) {
	if fftSize < 4 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, fftSize)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	a := &Analyzer{
		fftSize: fftSize,
		cfg:     cfg,
		coeffs:  window.Generate(cfg.window, fftSize, window.WithPeriodic()),
	}
	a.scale = a.scaleFor(a.coeffs)

	// Plan once up front so configuration errors surface here.
	st, err := a.newState()
	if err != nil {
		return nil, err
	}
	a.states.Put(st)

	return a, nil
}

// FFTSize returns the transform length.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// Bins returns the number of one-sided bins, fftSize/2+1.
func (a *Analyzer) Bins() int { return a.fftSize/2 + 1 }

// SampleRate returns the configured sample rate in Hz.
func (a *Analyzer) SampleRate() float64 { return a.cfg.sampleRate }

// Window returns the analysis window type.
func (a *Analyzer) Window() window.Type { return a.cfg.window }

// Backend returns the FFT backend.
func (a *Analyzer) Backend() Backend { return a.cfg.backend }

// BinWidth returns the spacing of adjacent bins in Hz, sampleRate/fftSize.
func (a *Analyzer) BinWidth() float64 {
	return a.cfg.sampleRate / float64(a.fftSize)
}

// Magnitude returns the one-sided magnitude spectrum of frame.
func (a *Analyzer) Magnitude(frame []float64) ([]float64, error) {
	dst := make([]float64, a.Bins())
	if err := a.MagnitudeInto(dst, frame); err != nil {
		return nil, err
	}
	return dst, nil
}

// MagnitudeInto writes the one-sided magnitude spectrum of frame to dst,
// which must hold [Analyzer.Bins] values. Frames shorter than the FFT size
// are windowed over their own length and zero-padded.
func (a *Analyzer) MagnitudeInto(dst, frame []float64) error {
	if err := a.checkFrame(frame); err != nil {
		return err
	}
	if len(dst) != a.Bins() {
		return fmt.Errorf("%w: %d, want %d", ErrOutputLength, len(dst), a.Bins())
	}

	st, err := a.getState()
	if err != nil {
		return err
	}
	defer a.states.Put(st)

	scale := a.scale
	clear(st.buf)
	copy(st.buf, frame)
	if len(frame) == a.fftSize {
		vecmath.MulBlockInPlace(st.buf, a.coeffs)
	} else {
		coeffs := window.Generate(a.cfg.window, len(frame), window.WithPeriodic())
		vecmath.MulBlockInPlace(st.buf[:len(frame)], coeffs)
		scale = a.scaleFor(coeffs)
	}

	half := a.Bins()
	switch a.cfg.backend {
	case BackendGoDSP:
		magnitudeInto(dst, fft.FFTReal(st.buf)[:half])
	default:
		for i, v := range st.buf {
			st.in[i] = complex(v, 0)
		}
		if err := st.plan.Forward(st.out, st.in); err != nil {
			return fmt.Errorf("spectrum: forward fft: %w", err)
		}
		magnitudeInto(dst, st.out[:half])
	}

	if scale != 1 {
		vecmath.ScaleBlockInPlace(dst, scale)
		// DC and Nyquist have no mirrored negative-frequency half.
		dst[0] *= 0.5
		dst[half-1] *= 0.5
	}

	return nil
}

// Levels measures the amplitude of frame at each of freqs, which need not
// fall on bin centres, with the analyzer's window and scaling.
func (a *Analyzer) Levels(frame, freqs []float64) ([]float64, error) {
	if err := a.checkFrame(frame); err != nil {
		return nil, err
	}

	coeffs := a.coeffs
	if len(frame) != a.fftSize {
		coeffs = window.Generate(a.cfg.window, len(frame), window.WithPeriodic())
	}
	windowed := make([]float64, len(frame))
	vecmath.MulBlock(windowed, frame, coeffs)

	bank, err := NewGoertzelBank(freqs, a.cfg.sampleRate)
	if err != nil {
		return nil, err
	}
	bank.ProcessBlock(windowed)

	levels := bank.Magnitudes()
	scale := a.scaleFor(coeffs)
	if scale != 1 {
		vecmath.ScaleBlockInPlace(levels, scale)
	}

	return levels, nil
}

func (a *Analyzer) checkFrame(frame []float64) error {
	if len(frame) == 0 {
		return ErrEmptyFrame
	}
	if len(frame) > a.fftSize {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLong, len(frame), a.fftSize)
	}
	return nil
}

// scaleFor returns the factor mapping |X[k]| of a sine windowed by coeffs to
// its amplitude, 2/sum(coeffs), or 1 when amplitude scaling is off.
func (a *Analyzer) scaleFor(coeffs []float64) float64 {
	if !a.cfg.amplitude {
		return 1
	}

	sum := vecmath.Sum(coeffs)
	if sum == 0 {
		return 1
	}

	return 2 / sum
}

func (a *Analyzer) getState() (*frameState, error) {
	if st, ok := a.states.Get().(*frameState); ok {
		return st, nil
	}
	return a.newState()
}

func (a *Analyzer) newState() (*frameState, error) {
	st := &frameState{buf: make([]float64, a.fftSize)}
	if a.cfg.backend == BackendGoDSP {
		return st, nil
	}

	plan, err := algofft.NewPlan64(a.fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan %d: %w", a.fftSize, err)
	}
	st.plan = plan
	st.in = make([]complex128, a.fftSize)
	st.out = make([]complex128, a.fftSize)

	return st, nil
}
