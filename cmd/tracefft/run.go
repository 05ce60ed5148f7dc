package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-trace/data/reader"
	"github.com/cwbudde/algo-trace/dsp/spectrum"
	"github.com/cwbudde/algo-trace/internal/config"
	frequencystats "github.com/cwbudde/algo-trace/stats/frequency"
)

const traceExt = ".txt"

var errNoValidFiles = errors.New("no valid files were given")

type traceResult struct {
	path    string
	spec    spectrum.Spectrum
	summary *frequencystats.Summary
}

func run(w io.Writer, paths []string, cfg config.Config, logger zerolog.Logger) error {
	valid := traceFiles(paths, logger)
	if len(valid) == 0 {
		return errNoValidFiles
	}

	opts := []spectrum.Option{spectrum.WithLogger(logger)}
	if cfg.FirstInterval {
		opts = append(opts, spectrum.WithFirstIntervalSpacing())
	}

	analyzer := spectrum.NewAnalyzer(opts...)

	results := make([]traceResult, 0, len(valid))

	for _, path := range valid {
		res, err := process(path, cfg, analyzer)
		if err != nil {
			return fmt.Errorf("failed to process %s: %w", path, err)
		}

		logger.Debug().
			Str("file", path).
			Int("bins", res.spec.Len()).
			Float64("time_step", res.spec.TimeStep).
			Msg("transformed trace")

		results = append(results, res)
	}

	return write(w, cfg.Format, results)
}

// traceFiles keeps the paths with the trace extension and logs the rest.
func traceFiles(paths []string, logger zerolog.Logger) []string {
	valid := make([]string, 0, len(paths))

	for _, p := range paths {
		if !strings.EqualFold(filepath.Ext(p), traceExt) {
			logger.Warn().Str("file", p).Msg("invalid file skipped")
			continue
		}

		valid = append(valid, p)
	}

	return valid
}

func process(path string, cfg config.Config, analyzer *spectrum.Analyzer) (traceResult, error) {
	m, err := reader.Read(path, cfg.ReaderConfig())
	if err != nil {
		return traceResult{}, err
	}

	// Without transpose the file holds x and y as its first two data lines.
	x, y, err := m.Leading()
	if err != nil {
		return traceResult{}, err
	}

	spec, err := analyzer.Transform(x, y, cfg.Unit)
	if err != nil {
		return traceResult{}, err
	}

	res := traceResult{path: path, spec: spec.Limit(cfg.MaxFreq)}

	mag := res.spec.Magnitude()
	if err := requireFinite("magnitude", mag...); err != nil {
		return traceResult{}, err
	}

	if cfg.Summary {
		s, err := frequencystats.Summarize(res.spec.Frequencies, mag)
		if err != nil {
			return traceResult{}, err
		}

		if err := requireFinite("summary", s.Peak, s.PeakFrequency, s.Energy, s.Centroid,
			s.Spread, s.Rolloff, s.Bandwidth, s.Flatness); err != nil {
			return traceResult{}, err
		}

		res.summary = &s
	}

	return res, nil
}

// requireFinite rejects results that cannot be printed or encoded. Traces
// holding values near MaxFloat64, such as sanitized infinities, overflow here.
func requireFinite(what string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s overflows (%v), trace values are too large", spectrum.ErrInvalidInput, what, v)
		}
	}

	return nil
}
