// Package spectrum turns real-valued sample frames into one-sided magnitude
// spectra suitable for peak search.
//
// An [Analyzer] windows each frame, runs a forward FFT through a selectable
// backend and scales the result so a bin-centred sine reads its amplitude.
// [Goertzel] evaluates single frequencies that need not fall on a bin, which
// the Analyzer uses to re-measure refined tone frequencies. [Describe]
// summarizes a spectrum's shape; low flatness marks a tonal frame.
package spectrum
