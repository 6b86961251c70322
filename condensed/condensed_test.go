package condensed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearIndex(t *testing.T) {
	tests := []struct {
		name     string
		n, i, j  int
		expected int
	}{
		{"FirstPair", 4, 1, 2, 0},
		{"FirstRowEnd", 4, 1, 4, 2},
		{"SecondRow", 4, 2, 3, 3},
		{"LastPair", 4, 3, 4, 5},
		{"TwoItems", 2, 1, 2, 0},
		{"LargeFirst", 100, 1, 100, 98},
		{"LargeLast", 100, 99, 100, 4949},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LinearIndex(tt.n, tt.i, tt.j)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLinearIndexCoversAllSlots(t *testing.T) {
	// Every unordered pair maps to a distinct slot and the slots are exactly
	// 0..n*(n-1)/2-1 in canonical order.
	const n = 17
	next := 0
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			pos, err := LinearIndex(n, i, j)
			require.NoError(t, err)
			assert.Equal(t, next, pos, "pair (%d,%d)", i, j)
			next++
		}
	}
	assert.Equal(t, n*(n-1)/2, next)
}

func TestLinearIndexErrors(t *testing.T) {
	tests := []struct {
		name    string
		n, i, j int
	}{
		{"IBelowRange", 4, 0, 2},
		{"JAboveRange", 4, 1, 5},
		{"Diagonal", 4, 2, 2},
		{"Swapped", 4, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LinearIndex(tt.n, tt.i, tt.j)
			assert.Error(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	m, err := New(4, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 4, m.Size())
	assert.Equal(t, 6, m.Len())
	assert.False(t, m.Labeled())
	assert.Nil(t, m.Labels())
}

func TestNewShapeError(t *testing.T) {
	_, err := New(4, []float64{1, 2, 3})

	var shape *ErrShapeMismatch
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, 6, shape.Expected)
	assert.Equal(t, 3, shape.Actual)
}

func TestNewLabelLengthMismatch(t *testing.T) {
	_, err := New(3, []float64{1, 2, 3}, WithLabels([]string{"a", "b"}))

	var shape *ErrShapeMismatch
	require.ErrorAs(t, err, &shape)
}

func TestNewCopiesValues(t *testing.T) {
	values := []float64{1, 2, 3}
	m, err := New(3, values)
	require.NoError(t, err)

	values[0] = 99
	d, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)
}

func TestFromSquareRoundTrip(t *testing.T) {
	square := [][]float64{
		{0, 1, 2, 3},
		{1, 0, 4, 5},
		{2, 4, 0, 6},
		{3, 5, 6, 0},
	}

	m, err := FromSquare(square)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Values())
	assert.Equal(t, square, m.Square())
}

func TestFromSquareRaggedRows(t *testing.T) {
	_, err := FromSquare([][]float64{{0, 1}, {1}})

	var shape *ErrShapeMismatch
	require.ErrorAs(t, err, &shape)
}

func TestAt(t *testing.T) {
	m, err := New(4, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	tests := []struct {
		name     string
		i, j     int
		expected float64
	}{
		{"Pair12", 1, 2, 1},
		{"Pair34", 3, 4, 6},
		{"Symmetric", 4, 3, 6},
		{"Self", 2, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.At(tt.i, tt.j)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err = m.At(0, 1)
	assert.Error(t, err)
	_, err = m.At(1, 5)
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	labeled, err := New(3, []float64{1, 2, 3}, WithLabels([]string{"a", "b", "c"}))
	require.NoError(t, err)
	assert.Equal(t, "b", labeled.Label(2))

	unlabeled, err := New(3, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "2", unlabeled.Label(2))
}

func TestDuplicateLabelsResolveToFirst(t *testing.T) {
	m, err := New(3, []float64{1, 2, 3}, WithLabels([]string{"a", "b", "a"}))
	require.NoError(t, err)

	idx, err := Resolve(m, ByLabels("a"))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, idx)
}
