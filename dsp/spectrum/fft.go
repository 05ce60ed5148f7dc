package spectrum

import (
	"fmt"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// halfSpectrum returns the first len(y)/2+1 DFT bins of y.
//
// Power-of-two lengths go through an algo-fft plan. Other lengths, and any
// length algo-fft refuses to plan, use gonum's mixed-radix real FFT. Both
// follow the unnormalized forward convention X[k] = sum x[n] e^{-2 pi i kn/N}.
func halfSpectrum(y []float64) ([]complex128, error) {
	n := len(y)
	if n == 0 {
		return nil, nil
	}

	if isPowerOfTwo(n) {
		bins, err := halfSpectrumPlan(y)
		if err == nil {
			return bins, nil
		}
	}

	return halfSpectrumGonum(y), nil
}

func halfSpectrumPlan(y []float64) ([]complex128, error) {
	n := len(y)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range y {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: fft forward: %w", err)
	}

	return out[:n/2+1], nil
}

func halfSpectrumGonum(y []float64) []complex128 {
	return fourier.NewFFT(len(y)).Coefficients(nil, y)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}
