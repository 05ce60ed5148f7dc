// Package reader loads delimited numeric text traces into a matrix.
//
// The accepted format is the one produced by lab acquisition software and
// spreadsheet exports: one sample per line, fields separated by a delimiter
// (tab by default), with everything after a comment marker ("%" by default)
// ignored. Fields that are empty or not numeric become NaN and are then
// sanitized to zero, unless structured fields are requested, in which case
// values are passed through untouched together with column names.
//
// By default the result is transposed so that Data[0] is the first logical
// column (typically time) and Data[1] the second (typically amplitude).
package reader
