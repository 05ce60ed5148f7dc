package reader

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const maxLineBytes = 16 << 20

// Read parses the trace file at path.
//
// A missing file yields a *FileNotFoundError carrying cfg.Context and path.
// Every other failure, including unreadable files and ragged rows, yields a
// *ParseError.
func Read(path string, cfg Config) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Matrix{}, &FileNotFoundError{Context: cfg.Context, Path: path, Err: err}
		}

		return Matrix{}, &ParseError{Context: cfg.Context, Path: path, Err: errors.Wrap(err, "open")}
	}
	defer f.Close()

	return newParser(path, cfg).parse(f)
}

// ReadFrom parses a trace from r. Errors carry an empty path.
func ReadFrom(r io.Reader, cfg Config) (Matrix, error) {
	return newParser("", cfg).parse(r)
}

type row struct {
	line   int
	tokens []string
}

type parser struct {
	path string
	cfg  Config
}

func newParser(path string, cfg Config) *parser {
	return &parser{path: path, cfg: cfg}
}

func (p *parser) fail(line int, err error) (Matrix, error) {
	return Matrix{}, &ParseError{Context: p.cfg.Context, Path: p.path, Line: line, Err: err}
}

func (p *parser) parse(r io.Reader) (Matrix, error) {
	flags, err := parseFlags(p.cfg.ParserFlags)
	if err != nil {
		return p.fail(0, err)
	}

	if flags.maxRows >= 0 && flags.skipFooter > 0 {
		return p.fail(0, errors.Wrap(ErrInvalidFlag, "max_rows and skip_footer are mutually exclusive"))
	}

	header, rows, err := p.scan(r, flags)
	if err != nil {
		return Matrix{}, err
	}

	if flags.skipFooter > 0 {
		if flags.skipFooter >= len(rows) {
			rows = nil
		} else {
			rows = rows[:len(rows)-flags.skipFooter]
		}
	}

	width := len(header)
	if header == nil && len(rows) > 0 {
		width = len(rows[0].tokens)
	}

	for _, rw := range rows {
		if len(rw.tokens) != width {
			return p.fail(rw.line, errors.Wrapf(ErrRaggedRows, "got %d columns instead of %d", len(rw.tokens), width))
		}
	}

	if width == 0 {
		return Matrix{Names: p.cfg.Names, Transposed: p.cfg.Transpose}, nil
	}

	cols, err := resolveColumns(flags.useCols, width)
	if err != nil {
		return p.fail(0, err)
	}

	var names []string

	if p.cfg.structured() {
		switch {
		case len(p.cfg.Names) > 0:
			if len(p.cfg.Names) != len(cols) {
				return p.fail(0, errors.Wrapf(ErrNameCount, "got %d names for %d columns", len(p.cfg.Names), len(cols)))
			}

			names = append([]string(nil), p.cfg.Names...)
		default:
			names = normalizeNames(pick(header, cols))
		}
	}

	values, kinds := convert(rows, cols, flags.filling)

	m := Matrix{Transposed: p.cfg.Transpose}

	if p.cfg.structured() {
		m.Names = names
		m.Kinds = kinds
		m.Records = make([][]string, len(rows))

		for i, rw := range rows {
			m.Records[i] = pick(rw.tokens, cols)
		}
	} else {
		sanitize(values)
	}

	if p.cfg.Transpose {
		m.Data = transpose(values, len(cols))
	} else {
		m.Data = values
	}

	return m, nil
}

// scan splits r into data rows. In structured mode without explicit names
// the first non-blank line after skip_header is returned as the header; a
// comment marker on that line is dropped rather than treated as a comment.
func (p *parser) scan(r io.Reader, flags parserFlags) ([]string, []row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	needHeader := p.cfg.structured() && len(p.cfg.Names) == 0

	var (
		header []string
		rows   []row
		lineNo int
	)

	for sc.Scan() {
		lineNo++
		if lineNo <= flags.skipHeader {
			continue
		}

		if needHeader {
			if header = splitHeader(sc.Text(), p.cfg); header != nil {
				needHeader = false
			}

			continue
		}

		tokens := splitLine(sc.Text(), p.cfg.CommentMarker, p.cfg.Delimiter)
		if tokens == nil {
			continue
		}

		if flags.maxRows >= 0 && len(rows) >= flags.maxRows {
			break
		}

		rows = append(rows, row{line: lineNo, tokens: tokens})
	}

	if err := sc.Err(); err != nil {
		_, perr := p.fail(lineNo+1, errors.Wrap(err, "read"))
		return nil, nil, perr
	}

	return header, rows, nil
}

// splitLine strips the comment, trims the line and splits it into trimmed
// tokens. It returns nil for lines that carry no data.
func splitLine(line, comment, delimiter string) []string {
	if comment != "" {
		if i := strings.Index(line, comment); i >= 0 {
			line = line[:i]
		}
	}

	line = strings.Trim(line, " \r\n")
	if line == "" {
		return nil
	}

	if delimiter == "" {
		return strings.Fields(line)
	}

	tokens := strings.Split(line, delimiter)
	for i, t := range tokens {
		tokens[i] = strings.TrimSpace(t)
	}

	return tokens
}

func splitHeader(line string, cfg Config) []string {
	if m := cfg.CommentMarker; m != "" {
		if i := strings.Index(line, m); i >= 0 {
			line = strings.ReplaceAll(line[i+len(m):], m, "")
		}
	}

	return splitLine(line, "", cfg.Delimiter)
}

func normalizeNames(raw []string) []string {
	out := make([]string, len(raw))
	for i, n := range raw {
		n = strings.Join(strings.Fields(n), "_")
		if n == "" {
			n = fmt.Sprintf("f%d", i)
		}

		out[i] = n
	}

	return out
}

func resolveColumns(useCols []int, width int) ([]int, error) {
	if len(useCols) == 0 {
		cols := make([]int, width)
		for i := range cols {
			cols[i] = i
		}

		return cols, nil
	}

	cols := make([]int, len(useCols))
	for i, c := range useCols {
		idx := c
		if idx < 0 {
			idx += width
		}

		if idx < 0 || idx >= width {
			return nil, errors.Wrapf(ErrInvalidFlag, "usecols: column %d out of range for %d columns", c, width)
		}

		cols[i] = idx
	}

	return cols, nil
}

func pick(tokens []string, cols []int) []string {
	if tokens == nil {
		return make([]string, len(cols))
	}

	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = tokens[c]
	}

	return out
}

// convert turns tokens into floats. Empty tokens take the filling value and
// unparsable ones become NaN; the latter mark their column as text.
func convert(rows []row, cols []int, filling float64) ([][]float64, []FieldKind) {
	kinds := make([]FieldKind, len(cols))
	values := make([][]float64, len(rows))

	for r, rw := range rows {
		vals := make([]float64, len(cols))

		for i, c := range cols {
			tok := rw.tokens[c]
			if tok == "" {
				vals[i] = filling
				continue
			}

			v, err := strconv.ParseFloat(tok, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				vals[i] = math.NaN()
				kinds[i] = KindText

				continue
			}

			vals[i] = v
		}

		values[r] = vals
	}

	return values, kinds
}

// sanitize replaces NaN with zero and infinities with the largest finite
// values of the same sign.
func sanitize(values [][]float64) {
	for _, row := range values {
		for i, v := range row {
			switch {
			case math.IsNaN(v):
				row[i] = 0
			case math.IsInf(v, 1):
				row[i] = math.MaxFloat64
			case math.IsInf(v, -1):
				row[i] = -math.MaxFloat64
			}
		}
	}
}

func transpose(values [][]float64, width int) [][]float64 {
	out := make([][]float64, width)
	for c := range out {
		col := make([]float64, len(values))
		for r, row := range values {
			col[r] = row[c]
		}

		out[c] = col
	}

	return out
}
