// Package blobstore abstracts storage for snapshot blobs.
//
// Snapshots are immutable whole blobs written once and read sequentially, so
// the interface is deliberately stream-oriented. Implementations exist for
// the local filesystem, in-memory testing, S3 and MinIO.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Blob is a read-only handle to a stored blob.
type Blob interface {
	io.ReadCloser
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Store is an abstraction for accessing immutable snapshot blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob atomically, replacing any existing blob of that name.
	Put(ctx context.Context, name string, r io.Reader) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the blob names matching the prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
