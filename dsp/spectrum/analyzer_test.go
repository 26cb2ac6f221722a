package spectrum

import (
	"errors"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/cwbudde/algo-tone/dsp/tone"
	"github.com/cwbudde/algo-tone/dsp/window"
	"github.com/cwbudde/algo-tone/internal/testutil"
)

var backends = []Backend{BackendAlgoFFT, BackendGoDSP}

func TestNewAnalyzerRejectsInvalidSizes(t *testing.T) {
	for _, n := range []int{-4, 0, 2, 3, 6, 1000} {
		if _, err := NewAnalyzer(n); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewAnalyzer(%d) error = %v, want ErrInvalidSize", n, err)
		}
	}
}

func TestAnalyzerDefaults(t *testing.T) {
	a, err := NewAnalyzer(1024)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	if a.FFTSize() != 1024 || a.Bins() != 513 {
		t.Fatalf("size=%d bins=%d", a.FFTSize(), a.Bins())
	}
	if a.Window() != window.TypeHann || a.Backend() != BackendAlgoFFT {
		t.Fatalf("window=%v backend=%v", a.Window(), a.Backend())
	}
	testutil.RequireNear(t, "bin width", a.BinWidth(), 48000.0/1024, 1e-12)
}

func TestAnalyzerBinCentredSineReadsAmplitude(t *testing.T) {
	const (
		fftSize    = 1024
		sampleRate = 8192.0
		amplitude  = 0.5
	)

	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			a, err := NewAnalyzer(fftSize, WithSampleRate(sampleRate), WithBackend(backend))
			if err != nil {
				t.Fatalf("NewAnalyzer: %v", err)
			}

			freq := 100 * a.BinWidth()
			mag, err := a.Magnitude(testutil.DeterministicSine(freq, sampleRate, amplitude, fftSize))
			if err != nil {
				t.Fatalf("Magnitude: %v", err)
			}

			if len(mag) != fftSize/2+1 {
				t.Fatalf("len=%d, want %d", len(mag), fftSize/2+1)
			}
			testutil.RequireNear(t, "peak bin", mag[100], amplitude, 1e-9)
			// Hann leaks exactly half the amplitude into each neighbour.
			testutil.RequireNear(t, "left neighbour", mag[99], amplitude/2, 1e-9)
			testutil.RequireNear(t, "right neighbour", mag[101], amplitude/2, 1e-9)
		})
	}
}

func TestAnalyzerBackendsAgree(t *testing.T) {
	frame := testutil.DeterministicNoise(5, 1, 512)

	a, err := NewAnalyzer(512, WithWindow(window.TypeBlackman), WithBackend(BackendAlgoFFT))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	b, err := NewAnalyzer(512, WithWindow(window.TypeBlackman), WithBackend(BackendGoDSP))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	ma, err := a.Magnitude(frame)
	if err != nil {
		t.Fatalf("Magnitude: %v", err)
	}
	mb, err := b.Magnitude(frame)
	if err != nil {
		t.Fatalf("Magnitude: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, ma, mb, 1e-9)
}

func TestAnalyzerScaling(t *testing.T) {
	ones := make([]float64, 64)
	for i := range ones {
		ones[i] = 1
	}

	raw, err := NewAnalyzer(64, WithWindow(window.TypeRectangular), WithAmplitudeScaling(false))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	mag, err := raw.Magnitude(ones)
	if err != nil {
		t.Fatalf("Magnitude: %v", err)
	}
	testutil.RequireNear(t, "raw DC", mag[0], 64, 1e-9)

	scaled, err := NewAnalyzer(64, WithWindow(window.TypeRectangular))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	mag, err = scaled.Magnitude(ones)
	if err != nil {
		t.Fatalf("Magnitude: %v", err)
	}
	testutil.RequireNear(t, "scaled DC", mag[0], 1, 1e-12)
	for k := 1; k < len(mag); k++ {
		if mag[k] > 1e-9 {
			t.Fatalf("bin %d = %v, want 0", k, mag[k])
		}
	}
}

func TestAnalyzerShortFrameIsZeroPadded(t *testing.T) {
	const sampleRate = 1024.0

	a, err := NewAnalyzer(1024, WithSampleRate(sampleRate))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	// 50 cycles in 512 samples lands on bin 100 of the padded transform.
	frame := testutil.DeterministicSine(100, sampleRate, 0.25, 512)
	mag, err := a.Magnitude(frame)
	if err != nil {
		t.Fatalf("Magnitude: %v", err)
	}

	testutil.RequireNear(t, "peak bin", mag[100], 0.25, 1e-9)
}

func TestAnalyzerFrameErrors(t *testing.T) {
	a, err := NewAnalyzer(16)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	if _, err := a.Magnitude(nil); !errors.Is(err, ErrEmptyFrame) {
		t.Fatalf("empty frame error = %v", err)
	}
	if _, err := a.Magnitude(make([]float64, 17)); !errors.Is(err, ErrFrameTooLong) {
		t.Fatalf("long frame error = %v", err)
	}
	if err := a.MagnitudeInto(make([]float64, 8), make([]float64, 16)); !errors.Is(err, ErrOutputLength) {
		t.Fatalf("output length error = %v", err)
	}
	if _, err := a.Levels(nil, []float64{10}); !errors.Is(err, ErrEmptyFrame) {
		t.Fatalf("levels empty frame error = %v", err)
	}
	if _, err := a.Levels(make([]float64, 16), []float64{1e6}); err == nil {
		t.Fatal("levels above Nyquist should fail")
	}
}

func TestAnalyzerConcurrentUse(t *testing.T) {
	a, err := NewAnalyzer(256)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	frames := make([][]float64, 16)
	want := make([][]float64, len(frames))
	for i := range frames {
		frames[i] = testutil.DeterministicNoise(int64(i), 1, 256)
		want[i], err = a.Magnitude(frames[i])
		if err != nil {
			t.Fatalf("Magnitude: %v", err)
		}
	}

	var wg sync.WaitGroup
	failed := make(chan int, len(frames))
	for i := range frames {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := a.Magnitude(frames[i])
			if err != nil || !slices.Equal(got, want[i]) {
				failed <- i
			}
		}()
	}
	wg.Wait()
	close(failed)

	for i := range failed {
		t.Fatalf("frame %d differs under concurrent use", i)
	}
}

func TestAnalyzerWithDetectorRecoversTones(t *testing.T) {
	const (
		fftSize    = 4096
		sampleRate = 48000.0
	)
	freqs := []float64{440, 1000, 3150.3}
	amps := []float64{0.8, 0.5, 0.3}

	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			a, err := NewAnalyzer(fftSize, WithSampleRate(sampleRate), WithBackend(backend))
			if err != nil {
				t.Fatalf("NewAnalyzer: %v", err)
			}

			frame := testutil.MultiSine(freqs, amps, sampleRate, fftSize)
			mag, err := a.Magnitude(frame)
			if err != nil {
				t.Fatalf("Magnitude: %v", err)
			}

			d, err := tone.NewDetector(a.BinWidth(), 4)
			if err != nil {
				t.Fatalf("NewDetector: %v", err)
			}
			tones, err := d.Detect(mag, len(freqs))
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if len(tones) != len(freqs) {
				t.Fatalf("found %d tones, want %d", len(tones), len(freqs))
			}

			for i, tn := range tones {
				if math.Abs(tn.Frequency-freqs[i]) > 0.1*a.BinWidth() {
					t.Fatalf("tone %d at %.3f Hz, want %.3f Hz within 0.1 bin", i, tn.Frequency, freqs[i])
				}
			}

			levels, err := a.Levels(frame, freqs)
			if err != nil {
				t.Fatalf("Levels: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, levels, amps, 1e-3)
		})
	}
}
