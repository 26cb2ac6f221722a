package scan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-tone/dsp/spectrum"
	"github.com/cwbudde/algo-tone/dsp/tone"
)

var (
	// ErrNotConfigured is returned when a Scanner lacks its analyzer or detector.
	ErrNotConfigured = errors.New("scan: analyzer and detector are required")
	// ErrNoSamples is returned for an empty recording.
	ErrNoSamples = errors.New("scan: no samples")
)

// Frame holds the tones found in one analysis frame.
type Frame struct {
	Index int
	Start int     // first sample of the frame
	Time  float64 // Start in seconds
	Tones []tone.Tone
	// Features describes the frame's spectrum shape. Flatness near 0 marks a
	// tonal frame.
	Features spectrum.Features
	// Levels holds the amplitude re-measured at each tone frequency, when
	// the scanner is configured to measure.
	Levels []float64
}

// Scanner splits a recording into frames and detects tones in each.
type Scanner struct {
	Analyzer *spectrum.Analyzer
	Detector *tone.Detector
	// Peaks is the number of tones requested per frame. Zero means 1.
	Peaks int
	// Hop is the distance between frame starts in samples. Zero means the
	// FFT size, i.e. no overlap.
	Hop int
	// Workers bounds concurrent frames. Zero means GOMAXPROCS.
	Workers int
	// Measure re-measures every tone at its refined frequency.
	Measure bool
	// Progress, when set, is called after each finished frame. Calls are
	// serialized but may come from different goroutines.
	Progress func(done, total int)
}

// FrameCount returns the number of frames Scan produces for n samples.
// A recording shorter than the FFT size yields one zero-padded frame; a
// trailing partial frame is otherwise dropped.
func (s *Scanner) FrameCount(n int) int {
	if n <= 0 || s.Analyzer == nil {
		return 0
	}

	size := s.Analyzer.FFTSize()
	if n <= size {
		return 1
	}
	return 1 + (n-size)/s.hop()
}

// Scan analyses samples frame by frame. Frames are processed concurrently
// and returned in order. Scan stops at the first error or when ctx is done.
func (s *Scanner) Scan(ctx context.Context, samples []float64) ([]Frame, error) {
	if s.Analyzer == nil || s.Detector == nil {
		return nil, ErrNotConfigured
	}
	if s.Hop < 0 {
		return nil, fmt.Errorf("scan: hop must be >= 0: %d", s.Hop)
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	total := s.FrameCount(len(samples))
	frames := make([]Frame, total)

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())

	for i := range total {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			f, err := s.frame(samples, i)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			frames[i] = f

			if s.Progress != nil {
				mu.Lock()
				done++
				s.Progress(done, total)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return frames, nil
}

func (s *Scanner) frame(samples []float64, index int) (Frame, error) {
	start := index * s.hop()
	end := min(start+s.Analyzer.FFTSize(), len(samples))
	chunk := samples[start:end]

	mag, err := s.Analyzer.Magnitude(chunk)
	if err != nil {
		return Frame{}, err
	}

	// Detection may consume mag.
	features := spectrum.Describe(mag, s.Analyzer.BinWidth())

	tones, err := s.Detector.Detect(mag, s.peaks())
	if err != nil {
		return Frame{}, err
	}

	f := Frame{
		Index:    index,
		Start:    start,
		Time:     float64(start) / s.Analyzer.SampleRate(),
		Tones:    tones,
		Features: features,
	}

	if s.Measure && len(tones) > 0 {
		nyquist := s.Analyzer.SampleRate() / 2
		freqs := make([]float64, len(tones))
		for i, tn := range tones {
			if !math.IsNaN(tn.Frequency) {
				freqs[i] = math.Max(0, math.Min(nyquist, tn.Frequency))
			}
		}

		f.Levels, err = s.Analyzer.Levels(chunk, freqs)
		if err != nil {
			return Frame{}, err
		}
	}

	return f, nil
}

func (s *Scanner) hop() int {
	if s.Hop > 0 {
		return s.Hop
	}
	return s.Analyzer.FFTSize()
}

func (s *Scanner) peaks() int {
	if s.Peaks > 0 {
		return s.Peaks
	}
	return 1
}

func (s *Scanner) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}
