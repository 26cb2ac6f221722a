package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates the DFT of a block at one frequency.
//
// The frequency need not be a multiple of sampleRate/N, which makes it the
// tool for re-measuring a tone at its refined frequency. The analyzer is
// stateful: Power and Magnitude cover every sample processed since the last
// Reset.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates a new Goertzel analyzer for the target frequency.
//
// frequency must be between 0 and sampleRate/2.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}

	g := &Goertzel{sampleRate: sampleRate}
	if err := g.SetFrequency(frequency); err != nil {
		return nil, err
	}

	return g, nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

// Power returns |X(f)|^2 over the processed block.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X(f)| over the processed block.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// SetFrequency retunes the analyzer. The state is kept.
func (g *Goertzel) SetFrequency(frequency float64) error {
	if frequency < 0 || frequency > g.sampleRate/2 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	g.frequency = frequency
	g.coeff = 2 * math.Cos(2*math.Pi*frequency/g.sampleRate)

	return nil
}

// Frequency returns the current target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// GoertzelBank runs one [Goertzel] per frequency over the same input.
type GoertzelBank struct {
	analyzers []*Goertzel
}

// NewGoertzelBank creates analyzers for all frequencies.
func NewGoertzelBank(frequencies []float64, sampleRate float64) (*GoertzelBank, error) {
	analyzers := make([]*Goertzel, len(frequencies))
	for i, f := range frequencies {
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return nil, err
		}

		analyzers[i] = g
	}

	return &GoertzelBank{analyzers: analyzers}, nil
}

// ProcessBlock updates all analyzers with the same input block.
func (b *GoertzelBank) ProcessBlock(input []float64) {
	for _, g := range b.analyzers {
		g.ProcessBlock(input)
	}
}

// Magnitudes returns |X(f)| for every frequency, in input order.
func (b *GoertzelBank) Magnitudes() []float64 {
	m := make([]float64, len(b.analyzers))
	for i, g := range b.analyzers {
		m[i] = g.Magnitude()
	}

	return m
}

// Reset resets all analyzers.
func (b *GoertzelBank) Reset() {
	for _, g := range b.analyzers {
		g.Reset()
	}
}
