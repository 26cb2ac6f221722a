package scan

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrUnsupportedFormat is returned for WAV data this package cannot convert.
var ErrUnsupportedFormat = errors.New("scan: unsupported wav format")

// Audio is a mono recording with samples in [-1, 1].
type Audio struct {
	Samples    []float64
	SampleRate float64
	// BitDepth and Channels describe the source file.
	BitDepth int
	Channels int
}

// Duration returns the length of the recording in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(len(a.Samples)) / a.SampleRate
}

// ReadWAV decodes the PCM WAV file at path, averaging all channels to mono.
func ReadWAV(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := DecodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// DecodeWAV decodes PCM WAV data of 8, 16, 24 or 32 bits.
func DecodeWAV(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid wav stream", ErrUnsupportedFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode pcm: %w", err)
	}

	depth := buf.SourceBitDepth
	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	var offset int
	switch depth {
	case 8:
		// 8-bit PCM is unsigned.
		offset = 128
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, depth)
	}

	full := float64(audio.IntMaxSignedValue(depth))
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := range samples {
		sum := 0
		for c := range channels {
			sum += buf.Data[i*channels+c] - offset
		}
		samples[i] = float64(sum) / float64(channels) / full
	}

	return &Audio{
		Samples:    samples,
		SampleRate: float64(buf.Format.SampleRate),
		BitDepth:   depth,
		Channels:   channels,
	}, nil
}

// WriteWAV writes samples as a mono PCM WAV file. Samples outside [-1, 1]
// are clipped and NaN is written as silence.
func WriteWAV(path string, samples []float64, sampleRate, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return EncodeWAV(f, samples, sampleRate, bitDepth)
}

// EncodeWAV writes samples as mono PCM WAV data to w.
func EncodeWAV(w io.WriteSeeker, samples []float64, sampleRate, bitDepth int) error {
	var offset int
	switch bitDepth {
	case 8:
		offset = 128
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, bitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, sampleRate)
	}

	full := float64(audio.IntMaxSignedValue(bitDepth))
	buf := &audio.IntBuffer{
		Data:           make([]int, len(samples)),
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: 1},
		SourceBitDepth: bitDepth,
	}
	for i, v := range samples {
		if math.IsNaN(v) {
			v = 0
		}
		v = math.Max(-1, math.Min(1, v))
		buf.Data[i] = int(math.Round(v*full)) + offset
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode pcm: %w", err)
	}
	return enc.Close()
}
