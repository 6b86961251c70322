package grouping

import (
	"fmt"

	"github.com/hupe1980/distmat/condensed"
)

// PairComparison is one annotated unordered item pair.
//
// Group1/Group2 are ordered by the stable group order (first occurrence), not
// by item order, and Label is generated from that same order.
type PairComparison[G comparable] struct {
	Item1    string
	Item2    string
	Group1   G
	Group2   G
	Label    string
	Distance float64
}

// Levels returns the distinct groups in order of first occurrence.
func Levels[G comparable](groups []G) []G {
	seen := make(map[G]struct{}, len(groups))
	var levels []G
	for _, g := range groups {
		if _, ok := seen[g]; !ok {
			seen[g] = struct{}{}
			levels = append(levels, g)
		}
	}
	return levels
}

// Annotate enumerates all n*(n-1)/2 unordered item pairs of m in canonical
// order (i ascending, then j ascending) and labels each as within or between
// groups, attaching the stored pairwise distance.
//
// groups[k] is the group of item position k+1; its length must equal the item
// count.
func Annotate[G comparable](m *condensed.Matrix, groups []G) ([]PairComparison[G], error) {
	n := m.Size()
	if len(groups) != n {
		return nil, &condensed.ErrShapeMismatch{
			What:     "grouping length must equal item count",
			Expected: n,
			Actual:   len(groups),
		}
	}

	rank := make(map[G]int, len(groups))
	for _, g := range Levels(groups) {
		rank[g] = len(rank)
	}

	out := make([]PairComparison[G], 0, n*(n-1)/2)
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			d, err := m.At(i, j)
			if err != nil {
				return nil, err
			}

			lo, hi := groups[i-1], groups[j-1]
			if rank[lo] > rank[hi] {
				lo, hi = hi, lo
			}

			label := fmt.Sprintf("Within %v", lo)
			if lo != hi {
				label = fmt.Sprintf("Between %v and %v", lo, hi)
			}

			out = append(out, PairComparison[G]{
				Item1:    m.Label(i),
				Item2:    m.Label(j),
				Group1:   lo,
				Group2:   hi,
				Label:    label,
				Distance: d,
			})
		}
	}
	return out, nil
}
