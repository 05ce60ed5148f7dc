// Package frequency summarizes one-sided magnitude spectra.
//
// All functions take the frequency of every bin explicitly, so spectra with a
// calibrated (non-Hz) axis or irregular bins are handled the same way.
package frequency

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmpty is returned when the magnitude slice has no bins.
	ErrEmpty = errors.New("frequency: empty spectrum")
	// ErrLengthMismatch is returned when the frequency axis and the magnitudes
	// differ in length.
	ErrLengthMismatch = errors.New("frequency: frequency and magnitude lengths differ")
)

// DefaultRolloff is the energy fraction used by Summarize for Rolloff.
const DefaultRolloff = 0.85

// Summary holds statistics of a linear magnitude spectrum.
type Summary struct {
	BinCount      int
	Peak          float64 // largest magnitude, DC excluded when BinCount > 1
	PeakBin       int
	PeakFrequency float64
	Peak_dB       float64 //nolint:revive
	Energy        float64 // sum of squared magnitudes
	Centroid      float64
	Spread        float64 // standard deviation around Centroid
	Flatness      float64 // 0..1, DC excluded
	Rolloff       float64 // frequency below which 85% of the energy lies
	Bandwidth     float64 // 3 dB width around the peak
}

// Summarize computes all statistics of magnitude over the axis freqs.
func Summarize(freqs, magnitude []float64) (Summary, error) {
	if len(magnitude) == 0 {
		return Summary{}, ErrEmpty
	}
	if len(freqs) != len(magnitude) {
		return Summary{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(freqs), len(magnitude))
	}

	var s Summary
	s.BinCount = len(magnitude)
	s.PeakBin = PeakBin(magnitude, true)
	s.Peak = magnitude[s.PeakBin]
	s.PeakFrequency = freqs[s.PeakBin]
	s.Peak_dB = toDB(s.Peak)

	sum := 0.0
	for _, v := range magnitude {
		sum += v
		s.Energy += v * v
	}

	s.Centroid = centroid(freqs, magnitude, sum)
	s.Spread = spread(freqs, magnitude, s.Centroid, sum)
	s.Flatness = Flatness(magnitude)
	s.Rolloff = rolloff(freqs, magnitude, DefaultRolloff, s.Energy)
	s.Bandwidth = bandwidth(freqs, magnitude, s.PeakBin)

	return s, nil
}

// PeakBin returns the index of the largest magnitude. With skipDC set, bin 0
// is ignored unless it is the only bin. Ties resolve to the lowest index.
func PeakBin(magnitude []float64, skipDC bool) int {
	start := 0
	if skipDC && len(magnitude) > 1 {
		start = 1
	}
	if start >= len(magnitude) {
		return 0
	}

	peak := start
	for i := start + 1; i < len(magnitude); i++ {
		if magnitude[i] > magnitude[peak] {
			peak = i
		}
	}
	return peak
}

// Centroid returns the magnitude-weighted mean frequency.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(freqs, magnitude []float64) float64 {
	if len(freqs) != len(magnitude) {
		return 0
	}
	sum := 0.0
	for _, v := range magnitude {
		sum += v
	}
	return centroid(freqs, magnitude, sum)
}

func centroid(freqs, magnitude []float64, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range magnitude {
		weighted += freqs[i] * v
	}
	return weighted / sumMag
}

func spread(freqs, magnitude []float64, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range magnitude {
		d := freqs[i] - cent
		weighted += d * d * v
	}
	return math.Sqrt(weighted / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// DC bin (index 0) is excluded from the computation. If any considered bin
// is zero, 0 is returned.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	sumLin := 0.0
	sumLog := 0.0
	for i := 1; i < n; i++ {
		v := magnitude[i]
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	bins := float64(n - 1)
	return math.Exp(sumLog/bins) / (sumLin / bins)
}

// Rolloff returns the frequency below which the fraction percent (0..1) of
// the spectral energy lies.
func Rolloff(freqs, magnitude []float64, percent float64) float64 {
	if len(freqs) != len(magnitude) {
		return 0
	}
	energy := 0.0
	for _, v := range magnitude {
		energy += v * v
	}
	return rolloff(freqs, magnitude, percent, energy)
}

func rolloff(freqs, magnitude []float64, percent, totalEnergy float64) float64 {
	n := len(magnitude)
	if n == 0 || totalEnergy == 0 {
		return 0
	}
	threshold := percent * totalEnergy
	cum := 0.0
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return freqs[i]
		}
	}
	return freqs[n-1]
}

// Bandwidth returns the 3 dB width around the peak (DC excluded), with linear
// interpolation between bins on both flanks.
func Bandwidth(freqs, magnitude []float64) float64 {
	if len(freqs) != len(magnitude) || len(magnitude) < 2 {
		return 0
	}
	return bandwidth(freqs, magnitude, PeakBin(magnitude, true))
}

func bandwidth(freqs, magnitude []float64, peakBin int) float64 {
	n := len(magnitude)
	if n < 2 || magnitude[peakBin] == 0 {
		return 0
	}

	threshold := magnitude[peakBin] / math.Sqrt2

	lower := freqs[0]
	for i := peakBin; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lower = interp(freqs[i-1], freqs[i], magnitude[i-1], magnitude[i], threshold)
			break
		}
	}

	upper := freqs[n-1]
	for i := peakBin; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upper = interp(freqs[i], freqs[i+1], magnitude[i], magnitude[i+1], threshold)
			break
		}
	}

	if upper < lower {
		return 0
	}
	return upper - lower
}

// interp returns the frequency between fLow and fHigh where the magnitude
// crosses threshold.
func interp(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}

func toDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}
