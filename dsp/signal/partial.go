package signal

import (
	"fmt"
	"strconv"
	"strings"
)

// Partial is one sinusoidal component of a multi-tone signal.
type Partial struct {
	Frequency float64 // Hz
	Amplitude float64
	Phase     float64 // radians
}

// ParsePartials parses a comma-separated list of "freq:amp" or
// "freq:amp:phase" entries, e.g. "440:0.5,1000:0.25". The amplitude
// defaults to 1 when only a frequency is given.
func ParsePartials(s string) ([]Partial, error) {
	var partials []Partial
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		fields := strings.Split(entry, ":")
		if len(fields) > 3 {
			return nil, fmt.Errorf("partial %q: too many fields", entry)
		}

		vals := [3]float64{0, 1, 0}
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("partial %q: %w", entry, err)
			}
			vals[i] = v
		}

		partials = append(partials, Partial{Frequency: vals[0], Amplitude: vals[1], Phase: vals[2]})
	}

	if len(partials) == 0 {
		return nil, fmt.Errorf("no partials in %q", s)
	}
	return partials, nil
}
