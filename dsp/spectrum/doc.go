// Package spectrum converts sampled time-domain traces into one-sided,
// physically scaled frequency spectra.
//
// [Transform] takes an x axis (time, or stage position in a calibrated unit)
// and an amplitude axis, and returns the non-negative-frequency half of the
// DFT together with its frequency axis. The sample spacing is taken as the
// average over the whole record and divided by a unit calibration factor
// before it is inverted into frequencies.
//
// The package also exposes the bin helpers used to present the result
// ([Magnitude], [Power], [Phase], [UnwrapPhase]).
package spectrum
