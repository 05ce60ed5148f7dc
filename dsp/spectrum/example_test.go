package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-trace/dsp/spectrum"
)

func ExampleTransform() {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 0, -1}

	spec, err := spectrum.Transform(x, y, spectrum.UnitTime)
	if err != nil {
		fmt.Println(err)
		return
	}

	mag := spec.Magnitude()
	fmt.Println(spec.Frequencies)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// [0 0.25 0.5]
	// 0.0 2.0 0.0
}

func ExampleConversionFactor() {
	for _, unit := range []string{spectrum.UnitOD, spectrum.UnitMillimeter, "furlong"} {
		f, ok := spectrum.ConversionFactor(unit)
		fmt.Println(unit, f, ok)
	}
	// Output:
	// OD 0.2998 true
	// mm 0.1499 true
	// furlong 1 false
}
