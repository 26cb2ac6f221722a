// Command tonescan lists the strongest tones of a WAV recording, frame by
// frame, with sub-bin frequency refinement.
//
// Usage:
//
//	tonescan [flags] file.wav
//	tonescan -windows
//	tonescan -synth "440:0.5,1000:0.25" [-rate 48000] [-duration 1] -out test.wav
//
// Examples:
//
//	tonescan -peaks 3 recording.wav
//	tonescan -fft 8192 -hop 2048 -window blackman-harris -db recording.wav
//	tonescan -strategy shift -anchor left-edge -width 4 recording.wav
//	tonescan -synth "440:0.5,1000:0.25:1.5" -duration 2 -out two-tones.wav
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/cwbudde/algo-tone/dsp/core"
	"github.com/cwbudde/algo-tone/dsp/signal"
	"github.com/cwbudde/algo-tone/internal/scan"
)

func main() {
	// Stdout carries the table.
	logger.Switch(os.Stderr)

	ctx := logger.WithContext(context.Background())

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Cause(err) == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "tonescan: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := ossignal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	err = doMain(ctx, opts, os.Stdout)
	stop()

	if err != nil {
		logger.Ef(ctx, "run err %+v", err)
		os.Exit(1)
	}
}

func doMain(ctx context.Context, opts *options, stdout io.Writer) error {
	if opts.windows {
		return writeWindows(stdout)
	}
	if opts.synth != "" {
		return synthesize(ctx, opts)
	}

	audio, err := scan.ReadWAV(opts.path)
	if err != nil {
		return errors.Wrapf(err, "read %v", opts.path)
	}
	logger.Tf(ctx, "read %v rate=%v, bits=%v, channels=%v, duration=%.3fs",
		opts.path, audio.SampleRate, audio.BitDepth, audio.Channels, audio.Duration())

	scanner, err := opts.scanner(float64(audio.SampleRate))
	if err != nil {
		return errors.Wrapf(err, "setup")
	}

	total := scanner.FrameCount(len(audio.Samples))

	finish := func() {}
	if opts.progress {
		p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(os.Stderr))
		bar := p.AddBar(int64(total),
			mpb.PrependDecorators(
				decor.Name("Scanning: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
				decor.AverageETA(decor.ET_STYLE_GO),
			),
		)
		scanner.Progress = func(int, int) { bar.Increment() }
		finish = func() {
			if !bar.Completed() {
				bar.Abort(false)
			}
			p.Wait()
		}
	}

	start := time.Now()
	frames, err := scanner.Scan(ctx, audio.Samples)
	finish()
	if err != nil {
		return errors.Wrapf(err, "scan %v", opts.path)
	}
	logger.Tf(ctx, "scan ok, frames=%v, fft=%v, bin=%.3fHz, cost=%v",
		len(frames), scanner.Analyzer.FFTSize(), scanner.Analyzer.BinWidth(), time.Since(start))

	if short := countShort(frames, scanner.Peaks); short > 0 {
		logger.Wf(ctx, "%v of %v frames have fewer than %v tones", short, len(frames), scanner.Peaks)
	}

	if err := writeTable(stdout, frames, opts.measure, opts.features); err != nil {
		return errors.Wrapf(err, "write table")
	}

	return nil
}

// synthesize writes the partials of -synth to -out.
func synthesize(ctx context.Context, opts *options) error {
	partials, err := signal.ParsePartials(opts.synth)
	if err != nil {
		return errors.Wrapf(err, "parse synth %v", opts.synth)
	}

	n := int(opts.duration * float64(opts.rate))
	if n <= 0 {
		return errors.Errorf("duration %v at %vHz yields no samples", opts.duration, opts.rate)
	}

	gen := signal.NewGenerator(core.WithSampleRate(float64(opts.rate)))
	samples, err := gen.MultiTone(partials, n)
	if err != nil {
		return errors.Wrapf(err, "generate")
	}

	if opts.normalize > 0 {
		if samples, err = signal.Normalize(samples, opts.normalize); err != nil {
			return errors.Wrapf(err, "normalize")
		}
	}

	if err := scan.WriteWAV(opts.out, samples, opts.rate, opts.bits); err != nil {
		return errors.Wrapf(err, "write %v", opts.out)
	}
	logger.Tf(ctx, "write %v partials=%v, samples=%v, rate=%v, bits=%v",
		opts.out, len(partials), n, opts.rate, opts.bits)

	return nil
}
