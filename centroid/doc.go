// Package centroid derives centroid distances from a condensed distance
// matrix without ever materializing coordinates.
//
// All quantities are computed from sums of squared pairwise distances alone,
// via the Apostol-Mnatsakanian identity for sums of squared distances in
// m-space. Because real-world dissimilarities are not always embeddable in a
// Euclidean space, the derived squared distance can be algebraically negative;
// under the default configuration such entries become NaN and a single
// EmbeddingWarning per call is emitted through the diagnostic side channel,
// while the Squared option returns the raw signed values untouched.
package centroid
