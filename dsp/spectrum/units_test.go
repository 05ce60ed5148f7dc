package spectrum

import (
	"errors"
	"reflect"
	"testing"
)

func TestConversionFactor(t *testing.T) {
	tests := []struct {
		unit  string
		want  float64
		known bool
	}{
		{UnitOD, 0.2998, true},
		{UnitMillimeter, 0.1499, true},
		{UnitTime, 1.0, true},
		{UnitPicosecond, 1.0, true},
		{"", 1.0, false},
		{"od", 1.0, false},
		{"nm", 1.0, false},
	}

	for _, tc := range tests {
		got, ok := ConversionFactor(tc.unit)
		if got != tc.want || ok != tc.known {
			t.Errorf("ConversionFactor(%q) = %v, %v; want %v, %v", tc.unit, got, ok, tc.want, tc.known)
		}

		factor, warn := Calibration(tc.unit)
		if factor != tc.want {
			t.Errorf("Calibration(%q) factor = %v, want %v", tc.unit, factor, tc.want)
		}

		var cw *CalibrationWarning
		if tc.known != (warn == nil) || (!tc.known && !errors.As(warn, &cw)) {
			t.Errorf("Calibration(%q) warning = %v", tc.unit, warn)
		}
	}
}

func TestUnits(t *testing.T) {
	want := []string{"OD", "mm", "ps", "t"}
	if got := Units(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Units() = %v, want %v", got, want)
	}
}
