package spectrum

import "errors"

var (
	// ErrInvalidSize is returned for an FFT size that is not a power of two >= 4.
	ErrInvalidSize = errors.New("spectrum: fft size must be a power of two >= 4")
	// ErrEmptyFrame is returned for a frame without samples.
	ErrEmptyFrame = errors.New("spectrum: empty frame")
	// ErrFrameTooLong is returned for a frame longer than the FFT size.
	ErrFrameTooLong = errors.New("spectrum: frame longer than fft size")
	// ErrOutputLength is returned when a destination slice has the wrong length.
	ErrOutputLength = errors.New("spectrum: output length mismatch")
)
