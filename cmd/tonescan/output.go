package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-tone/dsp/window"
	"github.com/cwbudde/algo-tone/internal/scan"
)

// writeTable prints one row per tone. Frames without tones print nothing.
func writeTable(w io.Writer, frames []scan.Frame, levels, features bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "TIME (s)\tRANK\tBIN\tFREQ (Hz)\tMAGNITUDE"
	if levels {
		header += "\tLEVEL"
	}
	if features {
		header += "\tFLATNESS\tCENTROID (Hz)"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}

	for _, f := range frames {
		for rank, tn := range f.Tones {
			_, err := fmt.Fprintf(tw, "%.4f\t%d\t%d\t%.3f\t%.6g",
				f.Time, rank+1, tn.Bin, tn.Frequency, tn.Magnitude)
			if err != nil {
				return err
			}

			if levels && rank < len(f.Levels) {
				if _, err := fmt.Fprintf(tw, "\t%.6g", f.Levels[rank]); err != nil {
					return err
				}
			}

			if features {
				_, err := fmt.Fprintf(tw, "\t%.4f\t%.1f", f.Features.Flatness, f.Features.Centroid)
				if err != nil {
					return err
				}
			}

			if _, err := fmt.Fprintln(tw); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

// countShort returns how many frames hold fewer than peaks tones.
func countShort(frames []scan.Frame, peaks int) int {
	var n int
	for _, f := range frames {
		if len(f.Tones) < peaks {
			n++
		}
	}
	return n
}

func writeWindows(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "NAME\tENBW (bins)\tSIDELOBE (dB)\tCOHERENT GAIN"); err != nil {
		return err
	}

	for _, e := range windowRegistry {
		info := window.Info(e.typ)
		_, err := fmt.Fprintf(tw, "%s\t%.4f\t%.1f\t%.4f\n",
			e.name, info.ENBW, info.HighestSidelobe, info.CoherentGain)
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}
