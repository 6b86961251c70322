package condensed

import (
	"errors"
	"fmt"
)

var (
	// ErrNoLabels is returned when a label selector is used on an unlabeled matrix.
	ErrNoLabels = errors.New("matrix has no labels")

	// ErrEmptySelector is returned when a selector resolves to zero positions
	// in a context that requires at least one.
	ErrEmptySelector = errors.New("selector resolves to no positions")
)

// ErrShapeMismatch indicates a structural size mismatch between related inputs,
// e.g. a values slice that does not hold exactly n*(n-1)/2 entries or a boolean
// mask whose length differs from the item count.
type ErrShapeMismatch struct {
	What     string
	Expected int
	Actual   int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("%s: expected %d, got %d", e.What, e.Expected, e.Actual)
}

// ErrLabelNotFound indicates a label that is not present in the matrix.
type ErrLabelNotFound struct {
	Label string
}

func (e *ErrLabelNotFound) Error() string {
	return fmt.Sprintf("%s out of range", e.Label)
}

// ErrIndexOutOfRange indicates a 1-based position outside [1, Size].
type ErrIndexOutOfRange struct {
	Index int
	Size  int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index out of range: %d (size %d)", e.Index, e.Size)
}
