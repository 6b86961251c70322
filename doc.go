// Package distmat manipulates pairwise distance data in condensed
// (triangular) form and derives centroid distances from it without ever
// materializing coordinates.
//
// # Quick Start
//
//	rows := [][]float64{{-1, 0}, {0, 1}, {0, -1}, {1, 0}}
//	m, _ := distmat.Build(ctx, rows, distmat.Metric(pairwise.Euclidean),
//	    distmat.WithLabels([]string{"a", "b", "c", "d"}))
//
//	d, _ := condensed.Get(m, condensed.ByLabels("a"), condensed.ByLabels("d"))
//	sub, _ := condensed.Subset(m, condensed.ByPositions(2, 1))
//
//	groups := []string{"x", "x", "y", "y"}
//	pairs, _ := grouping.Annotate(m, groups)
//	dist, _ := centroid.Between(m,
//	    condensed.ByMask([]bool{true, true, false, false}),
//	    condensed.ByMask([]bool{false, false, true, true}))
//
// # Layout
//
// The condensed package holds the matrix type, indexing and subsetting;
// grouping annotates item pairs by group membership; centroid implements the
// squared-distance algebra for centroid distances; pairwise supplies stock
// distance functions; snapshot and blobstore persist matrices as compressed
// binary blobs locally or in object storage.
//
// # Non-Euclidean inputs
//
// Derived squared centroid distances can be algebraically negative when the
// dissimilarities are not Euclidean-embeddable. The centroid package returns
// NaN for such entries and emits one diagnostic warning per call; see
// centroid.Squared for the raw signed alternative.
package distmat
