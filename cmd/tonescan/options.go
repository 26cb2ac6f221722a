package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ossrs/go-oryx-lib/errors"

	"github.com/cwbudde/algo-tone/dsp/spectrum"
	"github.com/cwbudde/algo-tone/dsp/tone"
	"github.com/cwbudde/algo-tone/dsp/window"
	"github.com/cwbudde/algo-tone/internal/scan"
)

type options struct {
	path string

	fftSize  int
	hop      int
	window   string
	backend  string
	peaks    int
	width    float64
	floor    float64
	db       bool
	interp   bool
	strategy string
	anchor   string
	measure  bool
	features bool
	workers  int
	progress bool
	windows  bool

	synth     string
	rate      int
	duration  float64
	bits      int
	normalize float64
	out       string
}

var strategies = map[string]tone.Strategy{
	"mask":  tone.StrategyMask,
	"shift": tone.StrategyShift,
}

var anchors = map[string]tone.Anchor{
	"centered":  tone.AnchorCentered,
	"left-edge": tone.AnchorLeftEdge,
}

var backends = map[string]spectrum.Backend{
	spectrum.BackendAlgoFFT.String(): spectrum.BackendAlgoFFT,
	spectrum.BackendGoDSP.String():   spectrum.BackendGoDSP,
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("tonescan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.IntVar(&opts.fftSize, "fft", 4096, "FFT size (power of two)")
	fs.IntVar(&opts.hop, "hop", 0, "hop between frames in samples (0 = FFT size)")
	fs.StringVar(&opts.window, "window", "hann", "analysis window")
	fs.StringVar(&opts.backend, "backend", spectrum.BackendAlgoFFT.String(), "FFT backend: algo-fft or go-dsp")
	fs.IntVar(&opts.peaks, "peaks", 3, "tones per frame")
	fs.Float64Var(&opts.width, "width", 3, "suppression width in bins (>= 1)")
	fs.Float64Var(&opts.floor, "floor", 0, "linear magnitude a tone must exceed")
	fs.BoolVar(&opts.db, "db", false, "report magnitudes in dB")
	fs.BoolVar(&opts.interp, "interp", false, "report the interpolated parabola vertex magnitude")
	fs.StringVar(&opts.strategy, "strategy", "mask", "suppression strategy: mask or shift")
	fs.StringVar(&opts.anchor, "anchor", "centered", "suppression placement: centered or left-edge")
	fs.BoolVar(&opts.measure, "measure", false, "re-measure each tone level at its refined frequency")
	fs.BoolVar(&opts.features, "features", false, "print spectral flatness and centroid per frame")
	fs.IntVar(&opts.workers, "workers", 0, "concurrent frames (0 = GOMAXPROCS)")
	fs.BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr")
	fs.BoolVar(&opts.windows, "windows", false, "list analysis windows and exit")

	fs.StringVar(&opts.synth, "synth", "", `write partials "freq:amp[:phase],..." to -out instead of scanning`)
	fs.IntVar(&opts.rate, "rate", 48000, "sample rate for -synth")
	fs.Float64Var(&opts.duration, "duration", 1, "duration in seconds for -synth")
	fs.IntVar(&opts.bits, "bits", 16, "bit depth for -synth: 8, 16, 24 or 32")
	fs.Float64Var(&opts.normalize, "normalize", 0, "scale -synth output to this peak (0 = off)")
	fs.StringVar(&opts.out, "out", "", "output WAV for -synth")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tonescan [flags] file.wav\n")
		fmt.Fprintf(stderr, "       tonescan -synth \"440:0.5,1000:0.25\" -out file.wav\n\n")
		fmt.Fprintf(stderr, "Lists the strongest tones of each analysis frame.\n\n")
		fmt.Fprintf(stderr, "Windows: %s\n\n", strings.Join(windowNames(), ", "))
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.windows {
		return opts, nil
	}

	if opts.synth != "" {
		if opts.out == "" {
			return nil, errors.New("-synth requires -out")
		}
		if fs.NArg() > 0 {
			return nil, errors.Errorf("-synth takes no input file, got %v", fs.Args())
		}
		return opts, nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.Errorf("expected one input file, got %v", fs.NArg())
	}
	opts.path = fs.Arg(0)

	return opts, nil
}

// scanner builds the analysis pipeline for a recording at sampleRate.
func (o *options) scanner(sampleRate float64) (*scan.Scanner, error) {
	win, err := window.Parse(o.window)
	if err != nil {
		return nil, err
	}

	backend, ok := backends[o.backend]
	if !ok {
		return nil, errors.Errorf("unknown backend %q", o.backend)
	}

	analyzer, err := spectrum.NewAnalyzer(o.fftSize,
		spectrum.WithWindow(win),
		spectrum.WithSampleRate(sampleRate),
		spectrum.WithBackend(backend),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "analyzer fft=%v", o.fftSize)
	}

	detOpts, err := o.detectorOptions()
	if err != nil {
		return nil, err
	}

	detector, err := tone.NewDetector(analyzer.BinWidth(), o.width, detOpts...)
	if err != nil {
		return nil, errors.Wrapf(err, "detector width=%v", o.width)
	}

	return &scan.Scanner{
		Analyzer: analyzer,
		Detector: detector,
		Peaks:    o.peaks,
		Hop:      o.hop,
		Workers:  o.workers,
		Measure:  o.measure,
	}, nil
}

func (o *options) detectorOptions() ([]tone.Option, error) {
	strategy, ok := strategies[o.strategy]
	if !ok {
		return nil, errors.Errorf("unknown strategy %q", o.strategy)
	}

	anchor, ok := anchors[o.anchor]
	if !ok {
		return nil, errors.Errorf("unknown anchor %q", o.anchor)
	}

	opts := []tone.Option{
		tone.WithStrategy(strategy),
		tone.WithAnchor(anchor),
		tone.WithFloor(o.floor),
	}
	if o.db {
		opts = append(opts, tone.WithDecibels())
	}
	if o.interp {
		opts = append(opts, tone.WithInterpolatedMagnitude())
	}

	return opts, nil
}

type windowEntry struct {
	name string
	typ  window.Type
}

var windowRegistry = []windowEntry{
	{"rectangular", window.TypeRectangular},
	{"hann", window.TypeHann},
	{"hamming", window.TypeHamming},
	{"blackman", window.TypeBlackman},
	{"blackman-harris", window.TypeBlackmanHarris4Term},
	{"flat-top", window.TypeFlatTop},
}

func windowNames() []string {
	names := make([]string, len(windowRegistry))
	for i, e := range windowRegistry {
		names[i] = e.name
	}
	return names
}
