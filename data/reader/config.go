package reader

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parser flag keys accepted in Config.ParserFlags.
const (
	FlagSkipHeader    = "skip_header"
	FlagSkipFooter    = "skip_footer"
	FlagMaxRows       = "max_rows"
	FlagUseCols       = "usecols"
	FlagFillingValues = "filling_values"
)

// Config controls how a trace file is parsed.
//
// The zero value disables comments, splits on whitespace runs and does not
// transpose; use DefaultConfig for the usual trace layout.
type Config struct {
	// CommentMarker starts a comment that runs to the end of the line.
	// Empty disables comment stripping.
	CommentMarker string
	// Delimiter separates fields. Empty splits on any run of whitespace.
	Delimiter string
	// Transpose makes the first axis index logical columns.
	Transpose bool
	// StructuredFields keeps NaN values, infers per-column kinds and reads
	// column names from the first data line unless Names is set.
	StructuredFields bool
	// Names assigns column names and implies StructuredFields.
	Names []string
	// Context identifies the caller in error messages.
	Context string
	// ParserFlags holds genfromtxt-style options such as skip_header.
	ParserFlags map[string]string
}

// DefaultConfig returns the trace defaults: "%" comments, tab delimiter,
// transposed output.
func DefaultConfig() Config {
	return Config{
		CommentMarker: "%",
		Delimiter:     "\t",
		Transpose:     true,
	}
}

func (c Config) structured() bool {
	return c.StructuredFields || len(c.Names) > 0
}

type parserFlags struct {
	skipHeader int
	skipFooter int
	maxRows    int
	useCols    []int
	filling    float64
}

func parseFlags(raw map[string]string) (parserFlags, error) {
	flags := parserFlags{maxRows: -1, filling: math.NaN()}

	// Sorted so the reported error is stable when several keys are bad.
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, key := range keys {
		val := strings.TrimSpace(raw[key])

		var err error

		switch key {
		case FlagSkipHeader:
			flags.skipHeader, err = nonNegativeInt(val)
		case FlagSkipFooter:
			flags.skipFooter, err = nonNegativeInt(val)
		case FlagMaxRows:
			flags.maxRows, err = nonNegativeInt(val)
		case FlagUseCols:
			flags.useCols, err = intList(val)
		case FlagFillingValues:
			flags.filling, err = strconv.ParseFloat(val, 64)
		default:
			return parserFlags{}, errors.Wrapf(ErrUnknownFlag, "%q", key)
		}

		if err != nil {
			return parserFlags{}, errors.Wrapf(ErrInvalidFlag, "%s=%q: %v", key, val, err)
		}
	}

	return flags, nil
}

func nonNegativeInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, errors.Errorf("must be >= 0, got %d", n)
	}

	return n, nil
}

func intList(s string) ([]int, error) {
	if s == "" {
		return nil, errors.New("empty column list")
	}

	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))

	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, nil
}
