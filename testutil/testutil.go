// Package testutil provides deterministic helpers for tests and benchmarks.
package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/distmat/condensed"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// RandomRows generates num random rows of the given dimension.
func (r *RNG) RandomRows(num, dim int) [][]float64 {
	rows := make([][]float64, num)
	for i := range rows {
		rows[i] = make([]float64, dim)
		r.FillUniform(rows[i])
	}
	return rows
}

// EuclideanCondensed builds a condensed matrix of Euclidean distances between
// the given coordinate rows. Panics on invalid input; test helper only.
func EuclideanCondensed(rows [][]float64, labels ...string) *condensed.Matrix {
	n := len(rows)
	square := make([][]float64, n)
	for i := range square {
		square[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var sum float64
			for d := range rows[i] {
				diff := rows[i][d] - rows[j][d]
				sum += diff * diff
			}
			square[i][j] = math.Sqrt(sum)
			square[j][i] = square[i][j]
		}
	}

	var opts []condensed.Option
	if len(labels) > 0 {
		opts = append(opts, condensed.WithLabels(labels))
	}
	m, err := condensed.FromSquare(square, opts...)
	if err != nil {
		panic(fmt.Sprintf("testutil: %v", err))
	}
	return m
}

// Centroid returns the arithmetic mean of the given coordinate rows.
func Centroid(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	out := make([]float64, len(rows[0]))
	for _, row := range rows {
		for d, v := range row {
			out[d] += v
		}
	}
	for d := range out {
		out[d] /= float64(len(rows))
	}
	return out
}

// EuclideanDistance returns the L2 distance between two coordinate rows.
func EuclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
