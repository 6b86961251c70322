// Package condensed implements a condensed (triangular) distance matrix.
//
// A condensed matrix stores all pairwise distances among n items as a flat
// slice of n*(n-1)/2 values, keeping only the upper triangle. Self distances
// are implicitly zero and symmetry is structural, so neither is stored.
//
// Items are addressed by label, by 1-based position, by boolean mask, or by
// roaring bitmap; all selector forms normalize to 1-based positions before
// any computation.
package condensed
