package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-trace/data/reader"
	"github.com/cwbudde/algo-trace/dsp/spectrum"
	"github.com/cwbudde/algo-trace/internal/config"
	"github.com/cwbudde/algo-trace/internal/testutil"
)

const referenceTrace = "% t\tV\n0\t0\n1\t1\n2\t0\n3\t-1\n"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func decodeTraces(t *testing.T, out string) []traceJSON {
	t.Helper()

	var traces []traceJSON
	require.NoError(t, json.Unmarshal([]byte(out), &traces))

	return traces
}

func TestTableOutput(t *testing.T) {
	path := testutil.WriteTrace(t, "ref.txt", referenceTrace)

	out, _, err := execute(t, "--unit", "t", path)
	require.NoError(t, err)

	assert.Contains(t, out, "# "+path)
	assert.Contains(t, out, "Frequency")
	assert.Contains(t, out, "-1.5708")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[4], "0.25 "), "line %q", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "0.5 "), "line %q", lines[5])
}

func TestJSONOutput(t *testing.T) {
	path := testutil.WriteTrace(t, "ref.txt", referenceTrace)

	out, stderr, err := execute(t, "--format", "json", "--unit", "ps", path)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "default calibration")

	traces := decodeTraces(t, out)
	require.Len(t, traces, 1)

	tr := traces[0]
	assert.Equal(t, path, tr.File)
	assert.Equal(t, 1.0, tr.Factor)
	assert.Equal(t, 1.0, tr.TimeStep)
	assert.Empty(t, tr.Warnings)
	require.Len(t, tr.Bins, 3)

	wantFreq := []float64{0, 0.25, 0.5}
	wantMag := []float64{0, 2, 0}

	for k, b := range tr.Bins {
		assert.InDelta(t, wantFreq[k], b.Frequency, 1e-15)
		assert.InDelta(t, wantMag[k], b.Magnitude, 1e-12)
	}
}

func TestUnknownUnitWarnsButSucceeds(t *testing.T) {
	path := testutil.WriteTrace(t, "ref.txt", referenceTrace)

	out, stderr, err := execute(t, "--format", "json", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "unit not specified/recognized, default calibration used")

	traces := decodeTraces(t, out)
	require.Len(t, traces, 1)
	require.Len(t, traces[0].Warnings, 1)
	assert.Equal(t, 1.0, traces[0].Factor)
}

func TestCSVOutputAndCalibration(t *testing.T) {
	path := testutil.WriteTrace(t, "stage.txt", referenceTrace)

	out, _, err := execute(t, "--format", "csv", "--unit", "mm", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "file,frequency,real,imag,magnitude", lines[0])

	fields := strings.Split(lines[2], ",")
	require.Len(t, fields, 5)
	assert.Equal(t, path, fields[0])

	freq, err := strconv.ParseFloat(fields[1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.1499/4, freq, 1e-12)
}

func TestSkipsNonTraceFiles(t *testing.T) {
	path := testutil.WriteTrace(t, "ref.txt", referenceTrace)
	other := testutil.WriteTrace(t, "notes.csv", referenceTrace)

	out, stderr, err := execute(t, "--unit", "t", other, path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "invalid file skipped")
	assert.Contains(t, out, path)
	assert.NotContains(t, out, other)

	_, _, err = execute(t, other)
	assert.True(t, errors.Is(err, errNoValidFiles))
}

func TestRejectsSingleColumn(t *testing.T) {
	path := testutil.WriteTrace(t, "mono.txt", "1\n2\n3\n")

	_, _, err := execute(t, path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, reader.ErrTooFewColumns))
	assert.Contains(t, err.Error(), "failed to process "+path)
}

func TestMissingFileCarriesContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")

	_, _, err := execute(t, path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, reader.ErrFileNotFound))
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), config.ReaderContext)
}

func TestMaxFreqAndSummary(t *testing.T) {
	x := testutil.UniformAxis(200, 0, 0.05)
	y := testutil.SampledSine(2, 1, x)

	var sb strings.Builder
	for i := range x {
		sb.WriteString(testutil.TraceLine(x[i], y[i]))
	}

	path := testutil.WriteTrace(t, "sine.txt", sb.String())

	out, _, err := execute(t, "--format", "json", "--unit", "t", "--max-freq", "5", "--summary", path)
	require.NoError(t, err)

	traces := decodeTraces(t, out)
	require.Len(t, traces, 1)

	tr := traces[0]
	for _, b := range tr.Bins {
		assert.LessOrEqual(t, b.Frequency, 5.0)
	}

	require.NotNil(t, tr.Summary)
	assert.InDelta(t, 2.0, tr.Summary.PeakFrequency, tr.Resolution)
}

func TestInvalidFormat(t *testing.T) {
	path := testutil.WriteTrace(t, "ref.txt", referenceTrace)

	_, _, err := execute(t, "--format", "xml", path)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}

func TestOverflowingTraceIsRejected(t *testing.T) {
	path := testutil.WriteTrace(t, "clipped.txt", "0\t1\n1\tinf\n2\t0\n3\t-1\n")

	for _, format := range []string{config.FormatJSON, config.FormatTable} {
		out, _, err := execute(t, "--format", format, "--unit", "t", "--summary", path)
		require.Error(t, err, format)
		assert.True(t, errors.Is(err, spectrum.ErrInvalidInput), "%s: %v", format, err)
		assert.Contains(t, err.Error(), "failed to process "+path)
		assert.Empty(t, out, format)
	}

	out, _, err := execute(t, "--format", "json", "--unit", "t", path)
	require.NoError(t, err)

	traces := decodeTraces(t, out)
	require.Len(t, traces, 1)

	for _, b := range traces[0].Bins {
		assert.False(t, math.IsInf(b.Magnitude, 0) || math.IsNaN(b.Magnitude), "bin %+v", b)
	}
}

func TestRowOrientedTrace(t *testing.T) {
	path := testutil.WriteTrace(t, "rows.txt", "% x then y\n0\t1\t2\t3\n0\t1\t0\t-1\n")

	out, _, err := execute(t, "--transpose=false", "--format", "json", "--unit", "t", path)
	require.NoError(t, err)

	traces := decodeTraces(t, out)
	require.Len(t, traces, 1)
	require.Len(t, traces[0].Bins, 3)
	assert.InDelta(t, 0.25, traces[0].Bins[1].Frequency, 1e-12)
	assert.InDelta(t, -2.0, traces[0].Bins[1].Imag, 1e-9)

	// Read column-wise, every x column is constant.
	_, _, err = execute(t, "--format", "json", "--unit", "t", path)
	assert.True(t, errors.Is(err, spectrum.ErrInvalidInput), "got %v", err)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	path := testutil.WriteTrace(t, "ref.txt", referenceTrace)

	t.Setenv("TRACEFFT_FORMAT", "csv")

	out, _, err := execute(t, "--unit", "t", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "file,frequency,"), "out %q", out)

	out, _, err = execute(t, "--format", "json", "--unit", "t", path)
	require.NoError(t, err)
	require.Len(t, decodeTraces(t, out), 1)
}
