package spectrum

import (
	"errors"
	"fmt"
)

// ErrInvalidInput reports a trace that cannot be transformed: fewer than two
// samples, mismatched axes, non-finite values, a zero-length time axis or
// values whose transform overflows.
var ErrInvalidInput = errors.New("spectrum: invalid input")

// CalibrationWarning reports a unit missing from the calibration table. It
// is non-fatal: the transform proceeds with DefaultFactor.
type CalibrationWarning struct {
	Unit string
}

func (w *CalibrationWarning) Error() string {
	return fmt.Sprintf("spectrum: unit %q not specified/recognized, default calibration used", w.Unit)
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
