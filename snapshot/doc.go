// Package snapshot serializes condensed distance matrices to a compact
// binary format for storage and exchange.
//
// A snapshot is a small header (magic, version, compression, item count)
// followed by one compressed payload block holding the optional labels and
// the triangular values, and a CRC32 trailer for corruption detection.
// The Manager saves and loads named snapshots through any blobstore.Store.
package snapshot
