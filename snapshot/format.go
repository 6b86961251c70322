package snapshot

import (
	"errors"
	"fmt"
)

const (
	// magicNumber identifies distmat snapshot files (ASCII: "DMT0").
	magicNumber = 0x444D5430
	// version is the current snapshot format version (v1.0.0).
	version = 0x00010000

	headerSize  = 16
	trailerSize = 4 // CRC32
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported version")
	ErrTruncated      = errors.New("snapshot truncated")
)

// fileHeader is the 16-byte header at the start of every snapshot.
type fileHeader struct {
	Magic       uint32
	Version     uint32
	Compression uint8
	Labeled     uint8
	Padding     [2]byte
	Size        uint32 // item count
}

// ChecksumMismatchError is returned when checksum verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// IsChecksumMismatch returns true if err is a checksum mismatch error.
func IsChecksumMismatch(err error) bool {
	var cm *ChecksumMismatchError
	return errors.As(err, &cm)
}
