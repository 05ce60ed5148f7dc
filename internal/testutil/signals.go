package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// UniformAxis returns n sample positions start, start+step, ...
func UniformAxis(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// SampledSine evaluates amplitude*sin(2*pi*freq*t) at every position of t.
func SampledSine(freq, amplitude float64, t []float64) []float64 {
	out := make([]float64, len(t))
	for i, ti := range t {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*ti)
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DirectDFT computes the first len(x)/2+1 DFT bins of x by summation.
// It is O(n^2) and only meant as a reference in tests.
func DirectDFT(x []float64) []complex128 {
	n := len(x)
	out := make([]complex128, n/2+1)
	for k := range out {
		var acc complex128
		for j, v := range x {
			angle := -2 * math.Pi * float64(k) * float64(j) / float64(n)
			acc += complex(v, 0) * cmplx.Exp(complex(0, angle))
		}
		out[k] = acc
	}
	return out
}

// TraceLine formats one tab-separated x/y line.
func TraceLine(x, y float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64) + "\t" + strconv.FormatFloat(y, 'g', -1, 64) + "\n"
}

// WriteTrace writes content to name inside a per-test temporary directory
// and returns the file path.
func WriteTrace(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
