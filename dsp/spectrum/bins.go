package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// split unpacks bins into pooled real and imaginary slices.
func split(in []complex128) (re, im []float64, buf *scratchBuf) {
	re, im, buf = getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// Magnitude returns |X[k]| for each bin.
//
// The kernel is SIMD-accelerated where the CPU allows it. Scratch buffers are
// pooled, so in steady state only the output slice is allocated. Bins whose
// squared modulus overflows still get their finite magnitude.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Magnitude(out, re, im)
	putScratch(buf)

	// The kernel squares without scaling; redo overflowed bins with hypot.
	for i, v := range out {
		if math.IsInf(v, 0) && !cmplx.IsInf(in[i]) {
			out[i] = cmplx.Abs(in[i])
		}
	}
	return out
}

// Power returns |X[k]|^2 for each bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Phase returns arg(X[k]) in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}
