package reader

import "github.com/pkg/errors"

// FieldKind describes the inferred type of a structured column.
type FieldKind int

const (
	// KindFloat marks a column whose present values all parse as numbers.
	KindFloat FieldKind = iota
	// KindText marks a column holding at least one non-numeric token.
	KindText
)

func (k FieldKind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Matrix is a rectangular block of parsed values.
//
// When Transposed is set, Data[c][r] holds logical column c of row r;
// otherwise Data[r][c]. Names, Kinds and Records are only populated in
// structured mode. Records keeps the raw tokens row-major.
type Matrix struct {
	Data       [][]float64
	Names      []string
	Kinds      []FieldKind
	Records    [][]string
	Transposed bool
}

// Shape returns the lengths of the first and second axis of Data.
func (m Matrix) Shape() (int, int) {
	if len(m.Data) == 0 {
		return 0, 0
	}

	return len(m.Data), len(m.Data[0])
}

// NumColumns returns the number of logical columns regardless of orientation.
func (m Matrix) NumColumns() int {
	if m.Transposed {
		if len(m.Data) == 0 {
			return len(m.Names)
		}

		return len(m.Data)
	}

	if len(m.Data) == 0 {
		return len(m.Names)
	}

	return len(m.Data[0])
}

// NumRows returns the number of logical rows regardless of orientation.
func (m Matrix) NumRows() int {
	if m.Transposed {
		if len(m.Data) == 0 {
			return 0
		}

		return len(m.Data[0])
	}

	return len(m.Data)
}

// ColumnAt returns logical column i. The returned slice aliases Data when
// the matrix is transposed.
func (m Matrix) ColumnAt(i int) []float64 {
	if i < 0 || i >= m.NumColumns() {
		return nil
	}

	if m.Transposed {
		return m.Data[i]
	}

	out := make([]float64, len(m.Data))
	for r, row := range m.Data {
		out[r] = row[i]
	}

	return out
}

// Column returns the logical column with the given structured name.
func (m Matrix) Column(name string) ([]float64, bool) {
	for i, n := range m.Names {
		if n == name {
			return m.ColumnAt(i), true
		}
	}

	return nil, false
}

// Series returns the first two logical columns as x and y. It fails with
// ErrTooFewColumns when fewer than two columns are present.
func (m Matrix) Series() (x, y []float64, err error) {
	if m.NumColumns() < 2 {
		return nil, nil, errors.Wrapf(ErrTooFewColumns, "got %d", m.NumColumns())
	}

	return m.ColumnAt(0), m.ColumnAt(1), nil
}

// Leading returns Data[0] and Data[1]: the first two columns of a transposed
// matrix, or the first two rows otherwise. It fails with ErrTooFewColumns
// when the first axis holds fewer than two entries.
func (m Matrix) Leading() (x, y []float64, err error) {
	if len(m.Data) < 2 {
		return nil, nil, errors.Wrapf(ErrTooFewColumns, "got %d along the first axis", len(m.Data))
	}

	return m.Data[0], m.Data[1], nil
}

// NamedSeries returns the columns called xName and yName.
func (m Matrix) NamedSeries(xName, yName string) (x, y []float64, err error) {
	x, ok := m.Column(xName)
	if !ok {
		return nil, nil, errors.Wrapf(ErrColumnNotFound, "%q", xName)
	}

	y, ok = m.Column(yName)
	if !ok {
		return nil, nil, errors.Wrapf(ErrColumnNotFound, "%q", yName)
	}

	return x, y, nil
}
