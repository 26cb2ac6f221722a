// Package tone extracts the dominant tones of a magnitude spectrum.
//
// The package does not compute transforms. It consumes a one-sided
// magnitude spectrum together with its bin width (deltaFreq, in Hz) and
// returns (frequency, magnitude) estimates for the strongest, mutually
// separated peaks. Each coarse bin is refined to a sub-bin frequency by
// fitting a parabola through the peak bin and its two neighbours:
//
//	offset = 0.5 * (m1 - m3) / (m1 - 2*m2 + m3)
//	freq   = (bin + offset) * deltaFreq
//
// The building blocks are exported individually: [FindMaxIndex],
// [ResolvePeakFrequency], [ResolvePeakFrequencyAt] and [ShiftLeft]. Each has
// a validating form that reports contract violations as errors wrapping
// [ErrInvalidArgument], [ErrOutOfRange] or [ErrDegenerateInterpolation],
// and an Unchecked form for callers that already guarantee the contract.
//
// [Detector] runs the full search. Bin 0 (DC) and the last bin are never
// reported because refinement needs both neighbours. After each peak its
// neighbourhood is excluded from the next search, either through a
// suppression [Mask] (the default, input untouched) or by shifting the
// neighbourhood out of the caller's array with [ShiftLeft]
// ([StrategyShift], as used by [DetectTopTones]). Both strategies return the
// same tones.
//
// All functions are safe for concurrent use on distinct buffers.
package tone
