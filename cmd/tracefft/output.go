package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-trace/internal/config"
)

func write(w io.Writer, format string, results []traceResult) error {
	switch format {
	case config.FormatCSV:
		return writeCSV(w, results)
	case config.FormatJSON:
		return writeJSON(w, results)
	default:
		return writeTable(w, results)
	}
}

func writeTable(w io.Writer, results []traceResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(tw); err != nil {
				return err
			}
		}

		spec := res.spec
		if _, err := fmt.Fprintf(tw, "# %s  unit=%q factor=%g step=%g resolution=%g\n",
			res.path, spec.Unit, spec.Factor, spec.TimeStep, spec.Resolution()); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(tw, "Frequency\tMagnitude\tPhase [rad]\n---------\t---------\t-----------\n"); err != nil {
			return err
		}

		mag := spec.Magnitude()
		phase := spec.Phase()

		for k, f := range spec.Frequencies {
			if _, err := fmt.Fprintf(tw, "%.6g\t%.6g\t%.4f\n", f, mag[k], phase[k]); err != nil {
				return err
			}
		}

		if s := res.summary; s != nil {
			if _, err := fmt.Fprintf(tw, "# peak=%.6g at %.6g  centroid=%.6g  spread=%.6g  rolloff=%.6g  bandwidth=%.6g  flatness=%.4f\n",
				s.Peak, s.PeakFrequency, s.Centroid, s.Spread, s.Rolloff, s.Bandwidth, s.Flatness); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

func writeCSV(w io.Writer, results []traceResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"file", "frequency", "real", "imag", "magnitude"}); err != nil {
		return err
	}

	for _, res := range results {
		mag := res.spec.Magnitude()

		for k, f := range res.spec.Frequencies {
			bin := res.spec.Bins[k]
			record := []string{
				res.path,
				formatFloat(f),
				formatFloat(real(bin)),
				formatFloat(imag(bin)),
				formatFloat(mag[k]),
			}

			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()

	return cw.Error()
}

type binJSON struct {
	Frequency float64 `json:"frequency"`
	Real      float64 `json:"real"`
	Imag      float64 `json:"imag"`
	Magnitude float64 `json:"magnitude"`
}

type summaryJSON struct {
	Peak          float64 `json:"peak"`
	PeakFrequency float64 `json:"peak_frequency"`
	Centroid      float64 `json:"centroid"`
	Spread        float64 `json:"spread"`
	Rolloff       float64 `json:"rolloff"`
	Bandwidth     float64 `json:"bandwidth"`
	Flatness      float64 `json:"flatness"`
	Energy        float64 `json:"energy"`
}

type traceJSON struct {
	File       string       `json:"file"`
	Unit       string       `json:"unit"`
	Factor     float64      `json:"factor"`
	TimeStep   float64      `json:"time_step"`
	Resolution float64      `json:"resolution"`
	Bins       []binJSON    `json:"bins"`
	Summary    *summaryJSON `json:"summary,omitempty"`
	Warnings   []string     `json:"warnings,omitempty"`
}

func writeJSON(w io.Writer, results []traceResult) error {
	out := make([]traceJSON, 0, len(results))

	for _, res := range results {
		spec := res.spec
		mag := spec.Magnitude()

		tj := traceJSON{
			File:       res.path,
			Unit:       spec.Unit,
			Factor:     spec.Factor,
			TimeStep:   spec.TimeStep,
			Resolution: spec.Resolution(),
			Bins:       make([]binJSON, len(spec.Frequencies)),
		}

		for k, f := range spec.Frequencies {
			tj.Bins[k] = binJSON{Frequency: f, Real: real(spec.Bins[k]), Imag: imag(spec.Bins[k]), Magnitude: mag[k]}
		}

		for _, warn := range spec.Warnings {
			tj.Warnings = append(tj.Warnings, warn.Error())
		}

		if s := res.summary; s != nil {
			tj.Summary = &summaryJSON{
				Peak:          s.Peak,
				PeakFrequency: s.PeakFrequency,
				Centroid:      s.Centroid,
				Spread:        s.Spread,
				Rolloff:       s.Rolloff,
				Bandwidth:     s.Bandwidth,
				Flatness:      s.Flatness,
				Energy:        s.Energy,
			}
		}

		out = append(out, tj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
