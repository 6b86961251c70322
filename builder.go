package distmat

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/distmat/condensed"
	"github.com/hupe1980/distmat/pairwise"
)

// DistanceFunc is a caller-supplied pairwise distance function.
// Any error it returns propagates unmodified to the Build caller and aborts
// the build. Extra fixed arguments are closure-captured by the caller.
type DistanceFunc func(a, b []float64) (float64, error)

// Metric adapts an infallible pairwise function such as pairwise.Euclidean.
func Metric(fn pairwise.Func) DistanceFunc {
	return func(a, b []float64) (float64, error) {
		return fn(a, b), nil
	}
}

// PivotFunc reshapes long-format tabular data into a row-indexed observation
// matrix with row labels. It is an upstream collaborator consumed at the
// boundary only; distmat ships no implementation.
type PivotFunc func(table any, rowKey, colKey, valueKey string, fill float64) (rows [][]float64, labels []string, err error)

// CapabilityCheck fails fast with a descriptive error when a required
// capability is unavailable in the host environment.
type CapabilityCheck func(capabilities ...string) error

// CapabilityPivot names the capability checked before a pivot operation.
const CapabilityPivot = "pivot"

// Build computes a condensed distance matrix from a row-indexed observation
// matrix and a pairwise distance function.
//
// Every unordered row pair (i<j) is evaluated in canonical triangular order.
// The function's output is stored as-is; symmetry and non-negativity are not
// validated. With WithParallelism(n) the pair evaluations run across n
// workers; the assembled result is identical to the serial one.
func Build(ctx context.Context, rows [][]float64, fn DistanceFunc, optFns ...Option) (*condensed.Matrix, error) {
	opts := newOptions(optFns)

	start := time.Now()
	m, pairs, err := build(ctx, rows, fn, &opts)
	opts.metrics.RecordBuild(pairs, time.Since(start), err)
	opts.logger.LogBuild(ctx, len(rows), pairs, err)
	return m, err
}

func build(ctx context.Context, rows [][]float64, fn DistanceFunc, opts *options) (*condensed.Matrix, int, error) {
	if fn == nil {
		return nil, 0, ErrNilDistanceFunc
	}
	n := len(rows)
	if n == 0 {
		return nil, 0, ErrNoRows
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, 0, &ErrRowLengthMismatch{Row: i + 1, Expected: width, Actual: len(row)}
		}
	}
	if opts.labels != nil && len(opts.labels) != n {
		return nil, 0, &condensed.ErrShapeMismatch{
			What:     "labels length must equal row count",
			Expected: n,
			Actual:   len(opts.labels),
		}
	}

	pairs := n * (n - 1) / 2
	values := make([]float64, pairs)

	if opts.parallelism > 1 {
		if err := buildParallel(ctx, rows, fn, values, opts.parallelism); err != nil {
			return nil, pairs, err
		}
	} else {
		if err := buildSerial(ctx, rows, fn, values); err != nil {
			return nil, pairs, err
		}
	}

	var matrixOpts []condensed.Option
	if opts.labels != nil {
		matrixOpts = append(matrixOpts, condensed.WithLabels(opts.labels))
	}
	m, err := condensed.New(n, values, matrixOpts...)
	return m, pairs, err
}

func buildSerial(ctx context.Context, rows [][]float64, fn DistanceFunc, values []float64) error {
	n := len(rows)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := buildRow(rows, fn, values, i); err != nil {
			return err
		}
	}
	return nil
}

// buildParallel distributes the pair evaluations row-wise. Each worker writes
// a disjoint range of the values slice, so no synchronization is needed.
func buildParallel(ctx context.Context, rows [][]float64, fn DistanceFunc, values []float64, parallelism int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	n := len(rows)
	for i := 1; i <= n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return buildRow(rows, fn, values, i)
		})
	}
	return g.Wait()
}

// buildRow fills the triangular slots for all pairs (i, j) with j > i.
func buildRow(rows [][]float64, fn DistanceFunc, values []float64, i int) error {
	n := len(rows)
	for j := i + 1; j <= n; j++ {
		d, err := fn(rows[i-1], rows[j-1])
		if err != nil {
			return &ErrDistance{Row1: i, Row2: j, cause: err}
		}
		pos, err := condensed.LinearIndex(n, i, j)
		if err != nil {
			return err
		}
		values[pos] = d
	}
	return nil
}

// BuildFromTable pivots long-format tabular data through the supplied
// collaborator and builds a condensed matrix from the result. When a
// capability check is configured (WithCapabilityCheck), it runs before the
// pivot and its error aborts the build.
func BuildFromTable(ctx context.Context, pivot PivotFunc, table any, rowKey, colKey, valueKey string, fill float64, fn DistanceFunc, optFns ...Option) (*condensed.Matrix, error) {
	opts := newOptions(optFns)

	if pivot == nil {
		return nil, ErrNilPivotFunc
	}
	if opts.check != nil {
		if err := opts.check(CapabilityPivot); err != nil {
			return nil, fmt.Errorf("capability check failed: %w", err)
		}
	}

	rows, labels, err := pivot(table, rowKey, colKey, valueKey, fill)
	opts.logger.LogPivot(ctx, rowKey, colKey, valueKey, err)
	if err != nil {
		return nil, fmt.Errorf("pivot: %w", err)
	}

	if labels != nil {
		optFns = append(optFns, WithLabels(labels))
	}
	return Build(ctx, rows, fn, optFns...)
}
