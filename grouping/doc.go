// Package grouping annotates the item pairs of a condensed distance matrix
// with group membership.
//
// Group identifiers are arbitrary comparable values. Their stable total order
// is the order of first occurrence in the assignment slice; all output labels
// and group column ordering derive from it, so results are deterministic
// regardless of which item of a pair appears first.
package grouping
