// Package pairwise provides stock distance functions over float64 rows for
// feeding the condensed matrix builder. Callers with domain-specific
// dissimilarities supply their own function instead.
package pairwise

import (
	"fmt"
	"math"
)

// Func is a pairwise distance function over two equal-length rows.
// It must return a non-negative real; the builder performs no validation.
type Func func(a, b []float64) float64

// Euclidean calculates the L2 distance between two rows.
// Assumes rows are the same length (caller's responsibility).
func Euclidean(a, b []float64) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// SquaredEuclidean calculates the squared L2 distance between two rows.
// Assumes rows are the same length (caller's responsibility).
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Manhattan calculates the L1 (city block) distance between two rows.
func Manhattan(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// Chebyshev calculates the L∞ (maximum coordinate) distance between two rows.
func Chebyshev(a, b []float64) float64 {
	var maxDiff float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

// Metric represents a stock distance metric.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSquaredEuclidean
	MetricManhattan
	MetricChebyshev
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricSquaredEuclidean:
		return "SquaredEuclidean"
	case MetricManhattan:
		return "Manhattan"
	case MetricChebyshev:
		return "Chebyshev"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricSquaredEuclidean:
		return SquaredEuclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricChebyshev:
		return Chebyshev, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
