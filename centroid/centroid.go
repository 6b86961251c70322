package centroid

import (
	"fmt"
	"math"

	"github.com/hupe1980/distmat/condensed"
	"github.com/hupe1980/distmat/grouping"
)

// Pair is one (A, B) subset pair for BetweenMany.
type Pair struct {
	A condensed.Selector
	B condensed.Selector
}

// Record is the distance from one item to one group centroid.
// Distance is NaN when the configuration is not Euclidean-embeddable and the
// Squared option is off.
type Record[G comparable] struct {
	Item     string
	Group    G
	Distance float64
}

// Between computes the distance between the centroids of two item subsets.
//
// With nA=|A| and nB=|B| (duplicates counted) and S_AA, S_BB, S_AB the sums
// of squared pairwise distances within A, within B and across A×B:
//
//	raw = S_AB/(nA*nB) - S_AA/nA² - S_BB/nB²
//
// By default the square root of raw is returned; a negative raw yields NaN
// plus one EmbeddingWarning. Under Squared() raw is returned signed.
func Between(m *condensed.Matrix, a, b condensed.Selector, optFns ...Option) (float64, error) {
	out, err := BetweenMany(m, []Pair{{A: a, B: b}}, optFns...)
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// BetweenMany computes Between for every pair elementwise.
// The embedding warning, if any pair is negative, is emitted at most once.
func BetweenMany(m *condensed.Matrix, pairs []Pair, optFns ...Option) ([]float64, error) {
	opts := newOptions(optFns)

	var warn emitter
	out := make([]float64, len(pairs))
	for i, p := range pairs {
		ia, err := condensed.Resolve(m, p.A)
		if err != nil {
			return nil, err
		}
		ib, err := condensed.Resolve(m, p.B)
		if err != nil {
			return nil, err
		}
		raw, err := betweenRaw(m, ia, ib)
		if err != nil {
			return nil, err
		}
		out[i] = finalize(raw, &opts, &warn)
	}
	warn.flush(&opts)
	return out, nil
}

// ToCentroids computes the distance from every item to every group centroid.
//
// The output covers the full cross product of items and distinct groups
// (first-occurrence order), with Item varying fastest within each Group
// block. Per-group sizes and within-group sums are computed once and reused
// across the whole cross product.
func ToCentroids[G comparable](m *condensed.Matrix, groups []G, optFns ...Option) ([]Record[G], error) {
	opts := newOptions(optFns)

	n := m.Size()
	if len(groups) != n {
		return nil, &condensed.ErrShapeMismatch{
			What:     "grouping length must equal item count",
			Expected: n,
			Actual:   len(groups),
		}
	}

	levels := grouping.Levels(groups)
	sums, err := groupSums(m, groups, levels)
	if err != nil {
		return nil, err
	}

	var warn emitter
	out := make([]Record[G], 0, n*len(levels))
	for _, g := range levels {
		gs := sums[g]
		for k := 1; k <= n; k++ {
			var cross float64
			for _, j := range gs.idx {
				d, err := m.At(k, j)
				if err != nil {
					return nil, err
				}
				cross += d * d
			}
			ng := float64(gs.size)
			raw := cross/ng - gs.within/(ng*ng)
			out = append(out, Record[G]{
				Item:     m.Label(k),
				Group:    g,
				Distance: finalize(raw, &opts, &warn),
			})
		}
	}
	warn.flush(&opts)
	return out, nil
}

// Multi computes the condensed matrix of pairwise centroid distances across
// all distinct groups. The resulting matrix has one item per group, labeled
// by the group identifiers in first-occurrence order.
func Multi[G comparable](m *condensed.Matrix, groups []G, optFns ...Option) (*condensed.Matrix, error) {
	opts := newOptions(optFns)

	n := m.Size()
	if len(groups) != n {
		return nil, &condensed.ErrShapeMismatch{
			What:     "grouping length must equal item count",
			Expected: n,
			Actual:   len(groups),
		}
	}

	levels := grouping.Levels(groups)
	sums, err := groupSums(m, groups, levels)
	if err != nil {
		return nil, err
	}

	g := len(levels)
	if g < 2 {
		return nil, fmt.Errorf("multi-group centroid matrix requires at least 2 groups, got %d", g)
	}

	var warn emitter
	values := make([]float64, g*(g-1)/2)
	labels := make([]string, g)
	for i, level := range levels {
		labels[i] = fmt.Sprintf("%v", level)
	}

	for i := 1; i <= g; i++ {
		for j := i + 1; j <= g; j++ {
			pos, err := condensed.LinearIndex(g, i, j)
			if err != nil {
				return nil, err
			}
			ga, gb := sums[levels[i-1]], sums[levels[j-1]]
			raw, err := betweenSums(m, ga, gb)
			if err != nil {
				return nil, err
			}
			values[pos] = finalize(raw, &opts, &warn)
		}
	}
	warn.flush(&opts)

	return condensed.New(g, values, condensed.WithLabels(labels))
}

// finalize applies the squared/sqrt/NaN policy to a raw squared distance.
func finalize(raw float64, opts *options, warn *emitter) float64 {
	if opts.squared {
		return raw
	}
	if raw < 0 {
		warn.hit()
		return math.NaN()
	}
	return math.Sqrt(raw)
}

// sums of one group: member positions, size and within-group squared sum.
type sumSet struct {
	idx    []int
	size   int
	within float64
}

// groupSums memoizes per-group member positions, sizes and within-group
// squared sums, keyed by group identifier.
func groupSums[G comparable](m *condensed.Matrix, groups []G, levels []G) (map[G]*sumSet, error) {
	sums := make(map[G]*sumSet, len(levels))
	for _, g := range levels {
		sums[g] = &sumSet{}
	}
	for i, g := range groups {
		s := sums[g]
		s.idx = append(s.idx, i+1)
		s.size++
	}
	for _, s := range sums {
		within, err := sumSquaredPairs(m, s.idx)
		if err != nil {
			return nil, err
		}
		s.within = within
	}
	return sums, nil
}

func betweenRaw(m *condensed.Matrix, ia, ib []int) (float64, error) {
	if len(ia) == 0 || len(ib) == 0 {
		return 0, condensed.ErrEmptySelector
	}

	saa, err := sumSquaredPairs(m, ia)
	if err != nil {
		return 0, err
	}
	sbb, err := sumSquaredPairs(m, ib)
	if err != nil {
		return 0, err
	}
	sab, err := sumSquaredCross(m, ia, ib)
	if err != nil {
		return 0, err
	}

	na, nb := float64(len(ia)), float64(len(ib))
	return sab/(na*nb) - saa/(na*na) - sbb/(nb*nb), nil
}

// betweenSums is betweenRaw over memoized group sums; only the cross term
// remains to be computed.
func betweenSums(m *condensed.Matrix, a, b *sumSet) (float64, error) {
	sab, err := sumSquaredCross(m, a.idx, b.idx)
	if err != nil {
		return 0, err
	}
	na, nb := float64(a.size), float64(b.size)
	return sab/(na*nb) - a.within/(na*na) - b.within/(nb*nb), nil
}

// sumSquaredPairs sums squared distances over all unordered pairs of idx.
// Pairs of equal positions contribute 0.
func sumSquaredPairs(m *condensed.Matrix, idx []int) (float64, error) {
	var sum float64
	for i := 0; i < len(idx); i++ {
		for j := i + 1; j < len(idx); j++ {
			d, err := m.At(idx[i], idx[j])
			if err != nil {
				return 0, err
			}
			sum += d * d
		}
	}
	return sum, nil
}

// sumSquaredCross sums squared distances over the full ia×ib cross product.
// Overlapping positions contribute 0 via the self-distance rule.
func sumSquaredCross(m *condensed.Matrix, ia, ib []int) (float64, error) {
	var sum float64
	for _, p := range ia {
		for _, q := range ib {
			d, err := m.At(p, q)
			if err != nil {
				return 0, err
			}
			sum += d * d
		}
	}
	return sum, nil
}
