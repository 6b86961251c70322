package condensed

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Selector addresses a subset of matrix items. The concrete forms are
// ByLabels, ByPositions, ByMask, ByBitmap and All; every form normalizes to a
// slice of validated 1-based positions via Resolve.
type Selector interface {
	resolve(m *Matrix) ([]int, error)
}

// Resolve normalizes a selector to 1-based positions into m.
// Order and multiplicity follow the selector, not the matrix.
func Resolve(m *Matrix, sel Selector) ([]int, error) {
	return sel.resolve(m)
}

// ByLabels selects items by label, in the given order.
// Labels absent from the matrix fail with ErrLabelNotFound.
func ByLabels(labels ...string) Selector { return labelSelector(labels) }

type labelSelector []string

func (s labelSelector) resolve(m *Matrix) ([]int, error) {
	if m.lookup == nil {
		return nil, ErrNoLabels
	}
	positions := make([]int, len(s))
	for i, label := range s {
		pos, ok := m.lookup[label]
		if !ok {
			return nil, &ErrLabelNotFound{Label: label}
		}
		positions[i] = pos
	}
	return positions, nil
}

// ByPositions selects items by 1-based position, in the given order.
// Duplicates are permitted; positions outside [1, Size] fail with
// ErrIndexOutOfRange.
func ByPositions(positions ...int) Selector { return positionSelector(positions) }

type positionSelector []int

func (s positionSelector) resolve(m *Matrix) ([]int, error) {
	positions := make([]int, len(s))
	for i, pos := range s {
		if pos < 1 || pos > m.size {
			return nil, &ErrIndexOutOfRange{Index: pos, Size: m.size}
		}
		positions[i] = pos
	}
	return positions, nil
}

// ByMask selects the positions where mask is true.
// The mask length must equal the item count.
func ByMask(mask []bool) Selector { return maskSelector(mask) }

type maskSelector []bool

func (s maskSelector) resolve(m *Matrix) ([]int, error) {
	if len(s) != m.size {
		return nil, &ErrShapeMismatch{
			What:     "mask length must equal item count",
			Expected: m.size,
			Actual:   len(s),
		}
	}
	var positions []int
	for i, ok := range s {
		if ok {
			positions = append(positions, i+1)
		}
	}
	return positions, nil
}

// ByBitmap selects the 1-based positions set in the bitmap, ascending.
// Set bits outside [1, Size] fail with ErrIndexOutOfRange.
func ByBitmap(bm *roaring.Bitmap) Selector { return bitmapSelector{bm: bm} }

type bitmapSelector struct {
	bm *roaring.Bitmap
}

func (s bitmapSelector) resolve(m *Matrix) ([]int, error) {
	positions := make([]int, 0, s.bm.GetCardinality())
	it := s.bm.Iterator()
	for it.HasNext() {
		pos := int(it.Next())
		if pos < 1 || pos > m.size {
			return nil, &ErrIndexOutOfRange{Index: pos, Size: m.size}
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

// All selects every item in matrix order.
func All() Selector { return allSelector{} }

type allSelector struct{}

func (allSelector) resolve(m *Matrix) ([]int, error) {
	positions := make([]int, m.size)
	for i := range positions {
		positions[i] = i + 1
	}
	return positions, nil
}
