package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the payload compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses Zstandard block compression (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZSTD:
		return "ZSTD"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// blockHeaderSize is the framing prepended to every payload block:
// [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 means the block is stored uncompressed.
const blockHeaderSize = 8

// compressBlock compresses a payload block using the specified algorithm.
// Incompressible data (ratio > 0.9) is stored raw within the same framing.
func compressBlock(data []byte, compression Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch compression {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressBlockLZ4(data)
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("unknown compression: %d", compression)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		// Store uncompressed with header
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

func compressBlockLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

// decompressBlock reverses compressBlock.
func decompressBlock(block []byte, compression Compression) ([]byte, error) {
	if len(block) < blockHeaderSize {
		return nil, ErrTruncated
	}
	uncompressedSize := binary.LittleEndian.Uint32(block[0:])
	compressedSize := binary.LittleEndian.Uint32(block[4:])
	data := block[blockHeaderSize:]

	if compressedSize == 0 {
		if uint32(len(data)) != uncompressedSize {
			return nil, ErrTruncated
		}
		return data, nil
	}
	if uint32(len(data)) != compressedSize {
		return nil, ErrTruncated
	}

	switch compression {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("lz4 block size mismatch")
		}
		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(data, make([]byte, 0, uncompressedSize))
		zstdDecoderPool.Put(dec)
		return out, err
	default:
		return nil, fmt.Errorf("compressed block with compression %d", compression)
	}
}
