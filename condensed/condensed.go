package condensed

import (
	"fmt"
	"slices"
)

// Matrix is an immutable condensed distance matrix over n items.
//
// The values slice holds distance(i,j) for every unordered pair i<j in
// triangular order (see LinearIndex). Every transformation returns a new
// Matrix; a Matrix is never mutated in place.
type Matrix struct {
	size   int
	labels []string // nil if items are addressed by position only
	values []float64
	lookup map[string]int // label -> 1-based position, first occurrence wins
}

// Option configures Matrix construction.
type Option func(*matrixOptions)

type matrixOptions struct {
	labels []string
}

// WithLabels attaches item labels. The slice length must equal the item count.
// Duplicate labels are permitted (they occur after resampling subsets); label
// lookup resolves to the first occurrence.
func WithLabels(labels []string) Option {
	return func(o *matrixOptions) {
		o.labels = labels
	}
}

// New creates a Matrix of the given size from condensed values.
// values must hold exactly size*(size-1)/2 entries.
func New(size int, values []float64, optFns ...Option) (*Matrix, error) {
	if size < 1 {
		return nil, fmt.Errorf("size must be positive, got %d", size)
	}

	var opts matrixOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	want := size * (size - 1) / 2
	if len(values) != want {
		return nil, &ErrShapeMismatch{
			What:     "values length must equal n*(n-1)/2",
			Expected: want,
			Actual:   len(values),
		}
	}
	if opts.labels != nil && len(opts.labels) != size {
		return nil, &ErrShapeMismatch{
			What:     "labels length must equal item count",
			Expected: size,
			Actual:   len(opts.labels),
		}
	}

	return newMatrix(size, slices.Clone(values), slices.Clone(opts.labels)), nil
}

// newMatrix assembles a Matrix taking ownership of values and labels.
func newMatrix(size int, values []float64, labels []string) *Matrix {
	m := &Matrix{
		size:   size,
		labels: labels,
		values: values,
	}
	if labels != nil {
		m.lookup = make(map[string]int, len(labels))
		for i, l := range labels {
			if _, ok := m.lookup[l]; !ok {
				m.lookup[l] = i + 1
			}
		}
	}
	return m
}

// FromSquare creates a Matrix from a full square distance layout.
// Only the upper triangle is read; symmetry is assumed, not checked.
func FromSquare(square [][]float64, optFns ...Option) (*Matrix, error) {
	n := len(square)
	if n < 1 {
		return nil, fmt.Errorf("square layout must have at least one row")
	}

	values := make([]float64, n*(n-1)/2)
	for i := 1; i <= n; i++ {
		row := square[i-1]
		if len(row) != n {
			return nil, &ErrShapeMismatch{
				What:     "square row length must equal row count",
				Expected: n,
				Actual:   len(row),
			}
		}
		for j := i + 1; j <= n; j++ {
			pos, err := LinearIndex(n, i, j)
			if err != nil {
				return nil, err
			}
			values[pos] = row[j-1]
		}
	}

	m, err := New(n, values, optFns...)
	if err != nil {
		return nil, err
	}
	// New already cloned; hand over the freshly built slice instead.
	m.values = values
	return m, nil
}

// Size returns the item count.
func (m *Matrix) Size() int { return m.size }

// Labeled reports whether the matrix carries item labels.
func (m *Matrix) Labeled() bool { return m.labels != nil }

// Labels returns a copy of the item labels, or nil for an unlabeled matrix.
func (m *Matrix) Labels() []string { return slices.Clone(m.labels) }

// Values returns a copy of the condensed values in triangular order.
func (m *Matrix) Values() []float64 { return slices.Clone(m.values) }

// Len returns the number of stored pairwise values, n*(n-1)/2.
func (m *Matrix) Len() int { return len(m.values) }

// At returns the distance between 1-based positions i and j.
// At(i,i) is 0 without a store lookup.
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 1 || i > m.size {
		return 0, &ErrIndexOutOfRange{Index: i, Size: m.size}
	}
	if j < 1 || j > m.size {
		return 0, &ErrIndexOutOfRange{Index: j, Size: m.size}
	}
	if i == j {
		return 0, nil
	}
	pos, err := LinearIndex(m.size, min(i, j), max(i, j))
	if err != nil {
		return 0, err
	}
	return m.values[pos], nil
}

// Square materializes the full square layout with zeros on the diagonal.
func (m *Matrix) Square() [][]float64 {
	out := make([][]float64, m.size)
	for i := range out {
		out[i] = make([]float64, m.size)
	}
	for i := 1; i <= m.size; i++ {
		for j := i + 1; j <= m.size; j++ {
			pos, _ := LinearIndex(m.size, i, j)
			out[i-1][j-1] = m.values[pos]
			out[j-1][i-1] = m.values[pos]
		}
	}
	return out
}

// Label returns the label of the 1-based position i, or its decimal
// representation for an unlabeled matrix.
func (m *Matrix) Label(i int) string {
	if m.labels != nil && i >= 1 && i <= len(m.labels) {
		return m.labels[i-1]
	}
	return fmt.Sprintf("%d", i)
}

// LinearIndex maps an unordered pair of 1-based positions i<j to its 0-based
// slot in the condensed values slice of an n-item matrix:
//
//	n*(i-1) - i*(i-1)/2 + (j-i) - 1
//
// It is a pure function; callers must order the pair themselves.
func LinearIndex(n, i, j int) (int, error) {
	if i < 1 || i > n {
		return 0, &ErrIndexOutOfRange{Index: i, Size: n}
	}
	if j < 1 || j > n {
		return 0, &ErrIndexOutOfRange{Index: j, Size: n}
	}
	if i >= j {
		return 0, fmt.Errorf("linear index requires i < j, got (%d, %d)", i, j)
	}
	return n*(i-1) - i*(i-1)/2 + (j - i) - 1, nil
}
