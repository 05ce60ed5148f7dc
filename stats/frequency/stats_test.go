package frequency

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-trace/dsp/spectrum"
	"github.com/cwbudde/algo-trace/internal/testutil"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}
	return math.Abs(a-b) <= tol
}

func TestSummarizeErrors(t *testing.T) {
	if _, err := Summarize(nil, nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty: err = %v", err)
	}

	if _, err := Summarize([]float64{0, 1}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("mismatch: err = %v", err)
	}
}

func TestSummarizeSingleBin(t *testing.T) {
	s, err := Summarize([]float64{0}, []float64{3})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if s.BinCount != 1 || s.PeakBin != 0 || s.Peak != 3 || s.PeakFrequency != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}

	if s.Energy != 9 || s.Bandwidth != 0 || s.Flatness != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestSummarizeTriangle(t *testing.T) {
	freqs := []float64{0, 0.5, 1, 1.5, 2}
	mag := []float64{0, 1, 2, 1, 0}

	s, err := Summarize(freqs, mag)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"PeakFrequency", s.PeakFrequency, 1},
		{"Peak", s.Peak, 2},
		{"Peak_dB", s.Peak_dB, 20 * math.Log10(2)},
		{"Energy", s.Energy, 6},
		{"Centroid", s.Centroid, 1},
		{"Spread", s.Spread, math.Sqrt(0.125)},
		{"Rolloff", s.Rolloff, 1.5},
		{"Flatness", s.Flatness, 0},
		{"Bandwidth", s.Bandwidth, 2 * (0.5 - 0.5*(math.Sqrt2-1))},
	}

	for _, c := range checks {
		if !almostEqual(c.got, c.want, tolerance) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestPeakBin(t *testing.T) {
	mag := []float64{10, 1, 3, 3, 2}

	if got := PeakBin(mag, true); got != 2 {
		t.Fatalf("PeakBin(skipDC) = %d, want 2", got)
	}

	if got := PeakBin(mag, false); got != 0 {
		t.Fatalf("PeakBin = %d, want 0", got)
	}

	if got := PeakBin([]float64{4}, true); got != 0 {
		t.Fatalf("PeakBin single = %d, want 0", got)
	}

	if got := PeakBin(nil, true); got != 0 {
		t.Fatalf("PeakBin empty = %d, want 0", got)
	}
}

func TestCentroidNonUniformAxis(t *testing.T) {
	got := Centroid([]float64{0, 1, 10}, []float64{0, 1, 1})
	if !almostEqual(got, 5.5, tolerance) {
		t.Fatalf("Centroid = %v, want 5.5", got)
	}

	if Centroid([]float64{0}, []float64{0, 1}) != 0 {
		t.Fatal("expected 0 for mismatched lengths")
	}
}

func TestFlatness(t *testing.T) {
	if got := Flatness([]float64{0, 2, 2, 2}); !almostEqual(got, 1, tolerance) {
		t.Fatalf("flat spectrum flatness = %v", got)
	}

	if got := Flatness([]float64{5, 1, 0, 1}); got != 0 {
		t.Fatalf("zero bin flatness = %v", got)
	}

	peaky := Flatness([]float64{0, 0.01, 10, 0.01})
	if peaky <= 0 || peaky >= 0.5 {
		t.Fatalf("peaky spectrum flatness = %v", peaky)
	}
}

func TestRolloff(t *testing.T) {
	freqs := []float64{0, 1, 2, 3}
	mag := []float64{1, 0, 0, 0}

	if got := Rolloff(freqs, mag, 0.85); got != 0 {
		t.Fatalf("Rolloff = %v, want 0", got)
	}

	if got := Rolloff(freqs, make([]float64, 4), 0.85); got != 0 {
		t.Fatalf("Rolloff of silence = %v, want 0", got)
	}
}

func TestSummarizeSinusoidTrace(t *testing.T) {
	const (
		n  = 512
		f0 = 0.8 // THz for a ps axis
	)

	x := testutil.UniformAxis(n, -2, 0.02)
	y := testutil.SampledSine(f0, 3, x)

	spec, err := spectrum.NewAnalyzer(spectrum.WithLogger(zerolog.Nop())).Transform(x, y, spectrum.UnitPicosecond)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	s, err := Summarize(spec.Frequencies, spec.Magnitude())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if binWidth := 1 / (x[n-1] - x[0]); math.Abs(s.PeakFrequency-f0) > binWidth {
		t.Fatalf("PeakFrequency = %v, want %v +/- %v", s.PeakFrequency, f0, binWidth)
	}

	if s.Bandwidth <= 0 || s.Bandwidth > 4*spec.Resolution() {
		t.Fatalf("Bandwidth = %v, resolution %v", s.Bandwidth, spec.Resolution())
	}
}
