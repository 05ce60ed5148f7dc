package spectrum

import "sort"

// Units understood by the calibration table.
const (
	// UnitOD is optical delay in mm; 0.2998 mm of light path per ps.
	UnitOD = "OD"
	// UnitMillimeter is delay-stage travel in mm. The beam passes the stage
	// twice, so 0.1499 mm per ps.
	UnitMillimeter = "mm"
	// UnitTime and UnitPicosecond take x as time already.
	UnitTime       = "t"
	UnitPicosecond = "ps"
)

// DefaultFactor is applied to units missing from the table.
const DefaultFactor = 1.0

var conversionFactors = map[string]float64{
	UnitOD:         0.2998,
	UnitMillimeter: 0.1499,
	UnitTime:       1.0,
	UnitPicosecond: 1.0,
}

// ConversionFactor returns the calibration factor for unit and whether the
// unit is known. Lookup is exact and case-sensitive; unknown units report
// DefaultFactor.
func ConversionFactor(unit string) (float64, bool) {
	f, ok := conversionFactors[unit]
	if !ok {
		return DefaultFactor, false
	}
	return f, true
}

// Calibration is ConversionFactor with the miss reported as a
// *CalibrationWarning. The factor is always usable.
func Calibration(unit string) (float64, error) {
	f, ok := ConversionFactor(unit)
	if !ok {
		return f, &CalibrationWarning{Unit: unit}
	}
	return f, nil
}

// Units returns the known unit labels in sorted order.
func Units() []string {
	out := make([]string, 0, len(conversionFactors))
	for u := range conversionFactors {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}
