package spectrum

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Spectrum is the non-negative-frequency half of a trace's DFT.
//
// Frequencies and Bins have length N/2+1 for an N-sample trace. Frequencies
// start at 0 and never decrease. TimeStep is the calibrated sample spacing the
// frequency axis was derived from and Factor the calibration applied to it.
// Warnings collects non-fatal issues such as a *CalibrationWarning.
type Spectrum struct {
	Frequencies []float64
	Bins        []complex128
	TimeStep    float64
	Factor      float64
	Unit        string
	Warnings    []error
}

// Len returns the number of bins.
func (s Spectrum) Len() int { return len(s.Bins) }

// Resolution returns the bin spacing 1/(TimeStep*N).
func (s Spectrum) Resolution() float64 {
	if len(s.Frequencies) < 2 {
		return 0
	}
	return s.Frequencies[1] - s.Frequencies[0]
}

// Magnitude returns |X[k]| for each bin.
func (s Spectrum) Magnitude() []float64 { return Magnitude(s.Bins) }

// Power returns |X[k]|^2 for each bin.
func (s Spectrum) Power() []float64 { return Power(s.Bins) }

// Phase returns arg(X[k]) for each bin.
func (s Spectrum) Phase() []float64 { return Phase(s.Bins) }

// Limit returns the bins whose frequency is <= maxFreq. A non-positive
// maxFreq returns s unchanged. The result shares storage with s.
func (s Spectrum) Limit(maxFreq float64) Spectrum {
	if maxFreq <= 0 {
		return s
	}
	k := sort.Search(len(s.Frequencies), func(i int) bool { return s.Frequencies[i] > maxFreq })
	out := s
	out.Frequencies = s.Frequencies[:k]
	out.Bins = s.Bins[:k]
	return out
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger that receives calibration warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithFirstIntervalSpacing derives the sample spacing from |x[1]-x[0]| alone
// and skips unit calibration. This reproduces the older frequency axis and
// differs from the default on non-uniformly sampled traces.
func WithFirstIntervalSpacing() Option {
	return func(a *Analyzer) {
		a.firstInterval = true
	}
}

// Analyzer turns traces into spectra. It holds no mutable state and is safe
// for concurrent use.
type Analyzer struct {
	logger        zerolog.Logger
	firstInterval bool
}

// NewAnalyzer returns an Analyzer logging through the global zerolog logger
// unless WithLogger is given.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{logger: log.Logger}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Transform computes the spectrum of y sampled at x with the default Analyzer.
func Transform(x, y []float64, unit string) (Spectrum, error) {
	return NewAnalyzer().Transform(x, y, unit)
}

// Transform computes the spectrum of y sampled at x.
//
// The sample spacing is |x[N-1]-x[0]|/(N-1) divided by the calibration factor
// of unit, and bin k sits at k/(spacing*N). An unknown unit, including "",
// falls back to DefaultFactor, logs a warning and records a
// *CalibrationWarning in Spectrum.Warnings. Values large enough to overflow a
// bin fail with ErrInvalidInput.
func (a *Analyzer) Transform(x, y []float64, unit string) (Spectrum, error) {
	n := len(y)
	if n < 2 {
		return Spectrum{}, invalidInput("need at least 2 samples, got %d", n)
	}
	if len(x) != n {
		return Spectrum{}, invalidInput("x has %d samples, y has %d", len(x), n)
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Spectrum{}, invalidInput("y[%d] is %v", i, v)
		}
	}

	step, factor, warnings, err := a.timeStep(x, unit)
	if err != nil {
		return Spectrum{}, err
	}

	bins, err := halfSpectrum(y)
	if err != nil {
		return Spectrum{}, err
	}
	for k, b := range bins {
		if cmplx.IsInf(b) || cmplx.IsNaN(b) {
			return Spectrum{}, invalidInput("bin %d overflows (%v)", k, b)
		}
	}

	df := 1 / (step * float64(n))
	freqs := make([]float64, len(bins))
	for k := range freqs {
		freqs[k] = float64(k) * df
	}

	return Spectrum{
		Frequencies: freqs,
		Bins:        bins,
		TimeStep:    step,
		Factor:      factor,
		Unit:        unit,
		Warnings:    warnings,
	}, nil
}

func (a *Analyzer) timeStep(x []float64, unit string) (step, factor float64, warnings []error, err error) {
	n := len(x)

	if a.firstInterval {
		factor = DefaultFactor
		step = math.Abs(x[1] - x[0])
	} else {
		var warn error
		factor, warn = Calibration(unit)
		if warn != nil {
			a.logger.Warn().
				Str("unit", unit).
				Float64("factor", factor).
				Msg("unit not specified/recognized, default calibration used")
			warnings = append(warnings, warn)
		}
		step = math.Abs(x[n-1]-x[0]) / float64(n-1) / factor
	}

	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0, 0, nil, invalidInput("degenerate time axis, sample spacing %v", step)
	}

	return step, factor, warnings, nil
}
