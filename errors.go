package distmat

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDistanceFunc is returned when Build is called without a distance function.
	ErrNilDistanceFunc = errors.New("distance function must not be nil")

	// ErrNoRows is returned when Build is called with an empty observation matrix.
	ErrNoRows = errors.New("rows must not be empty")

	// ErrNilPivotFunc is returned when BuildFromTable is called without a pivot collaborator.
	ErrNilPivotFunc = errors.New("pivot function must not be nil")
)

// ErrRowLengthMismatch indicates observation rows of unequal length.
type ErrRowLengthMismatch struct {
	Row      int // 1-based row index
	Expected int
	Actual   int
}

func (e *ErrRowLengthMismatch) Error() string {
	return fmt.Sprintf("row %d length mismatch: expected %d, got %d", e.Row, e.Expected, e.Actual)
}

// ErrDistance wraps a failure of the caller-supplied distance function.
// The original error is accessible via errors.Unwrap.
type ErrDistance struct {
	Row1  int // 1-based
	Row2  int // 1-based
	cause error
}

func (e *ErrDistance) Error() string {
	return fmt.Sprintf("distance function failed for rows (%d, %d): %v", e.Row1, e.Row2, e.cause)
}

func (e *ErrDistance) Unwrap() error { return e.cause }
