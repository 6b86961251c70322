package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/hupe1980/distmat/condensed"
)

// Write serializes m to w with the given compression.
//
// Layout: fileHeader, one framed payload block (labels then triangular
// values), CRC32 trailer over header and block.
func Write(w io.Writer, m *condensed.Matrix, compression Compression) error {
	payload := encodePayload(m)
	block, err := compressBlock(payload, compression)
	if err != nil {
		return err
	}

	header := fileHeader{
		Magic:       magicNumber,
		Version:     version,
		Compression: uint8(compression),
		Size:        uint32(m.Size()),
	}
	if m.Labeled() {
		header.Labeled = 1
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(block) + trailerSize)
	if err := binary.Write(&buf, binary.LittleEndian, &header); err != nil {
		return err
	}
	buf.Write(block)

	checksum := crc32.ChecksumIEEE(buf.Bytes())
	if err := binary.Write(&buf, binary.LittleEndian, checksum); err != nil {
		return err
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// Read deserializes a matrix written by Write, verifying the checksum.
func Read(r io.Reader) (*condensed.Matrix, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw) < headerSize+blockHeaderSize+trailerSize {
		return nil, ErrTruncated
	}

	body, trailer := raw[:len(raw)-trailerSize], raw[len(raw)-trailerSize:]
	expected := binary.LittleEndian.Uint32(trailer)
	if actual := crc32.ChecksumIEEE(body); actual != expected {
		return nil, &ChecksumMismatchError{Expected: expected, Actual: actual}
	}

	var header fileHeader
	if err := binary.Read(bytes.NewReader(body[:headerSize]), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.Magic != magicNumber {
		return nil, ErrInvalidMagic
	}
	if header.Version != version {
		return nil, ErrInvalidVersion
	}

	payload, err := decompressBlock(body[headerSize:], Compression(header.Compression))
	if err != nil {
		return nil, err
	}
	return decodePayload(payload, int(header.Size), header.Labeled == 1)
}

// encodePayload lays out labels (u16 length-prefixed) followed by the
// triangular values as little-endian float64 bits.
func encodePayload(m *condensed.Matrix) []byte {
	labels := m.Labels()
	values := m.Values()

	size := 8 * len(values)
	for _, l := range labels {
		size += 2 + len(l)
	}

	payload := make([]byte, 0, size)
	for _, l := range labels {
		payload = binary.LittleEndian.AppendUint16(payload, uint16(len(l)))
		payload = append(payload, l...)
	}
	for _, v := range values {
		payload = binary.LittleEndian.AppendUint64(payload, math.Float64bits(v))
	}
	return payload
}

func decodePayload(payload []byte, size int, labeled bool) (*condensed.Matrix, error) {
	var labels []string
	if labeled {
		labels = make([]string, size)
		for i := range labels {
			if len(payload) < 2 {
				return nil, ErrTruncated
			}
			n := int(binary.LittleEndian.Uint16(payload))
			payload = payload[2:]
			if len(payload) < n {
				return nil, ErrTruncated
			}
			labels[i] = string(payload[:n])
			payload = payload[n:]
		}
	}

	want := size * (size - 1) / 2
	if len(payload) != 8*want {
		return nil, fmt.Errorf("%w: expected %d value bytes, got %d", ErrTruncated, 8*want, len(payload))
	}
	values := make([]float64, want)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[8*i:]))
	}

	var opts []condensed.Option
	if labeled {
		opts = append(opts, condensed.WithLabels(labels))
	}
	return condensed.New(size, values, opts...)
}
