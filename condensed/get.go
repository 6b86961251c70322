package condensed

// Get returns the distances for the pairs formed by two selectors.
//
// Both selectors are resolved to positions; the shorter sequence is then
// broadcast (cycled) to the length of the longer one, which requires the
// shorter length to divide the longer evenly. For each resulting pair (a,b)
// the distance is 0 when a==b and the stored triangular value otherwise.
func Get(m *Matrix, a, b Selector) ([]float64, error) {
	ia, err := Resolve(m, a)
	if err != nil {
		return nil, err
	}
	ib, err := Resolve(m, b)
	if err != nil {
		return nil, err
	}
	return getPositions(m, ia, ib)
}

func getPositions(m *Matrix, ia, ib []int) ([]float64, error) {
	la, lb := len(ia), len(ib)
	if la == 0 && lb == 0 {
		return nil, nil
	}

	longer := max(la, lb)
	shorter := min(la, lb)
	if shorter == 0 || longer%shorter != 0 {
		return nil, &ErrShapeMismatch{
			What:     "selector lengths must broadcast evenly",
			Expected: longer,
			Actual:   shorter,
		}
	}

	out := make([]float64, longer)
	for k := range out {
		p, q := ia[k%la], ib[k%lb]
		if p == q {
			continue // self distance is 0
		}
		pos, err := LinearIndex(m.size, min(p, q), max(p, q))
		if err != nil {
			return nil, err
		}
		out[k] = m.values[pos]
	}
	return out, nil
}

// Subset extracts a new Matrix following the selector's order.
//
// Duplicates in the selector are permitted (resampling); the distance of a
// position paired with itself is 0. Labels, when present, are carried over in
// selector order. Passing positions 1..n in order is a pure reorder/copy.
func Subset(m *Matrix, sel Selector) (*Matrix, error) {
	idx, err := Resolve(m, sel)
	if err != nil {
		return nil, err
	}
	k := len(idx)
	if k == 0 {
		return nil, ErrEmptySelector
	}

	values := make([]float64, k*(k-1)/2)
	for i := 1; i <= k; i++ {
		for j := i + 1; j <= k; j++ {
			pos, err := LinearIndex(k, i, j)
			if err != nil {
				return nil, err
			}
			p, q := idx[i-1], idx[j-1]
			if p == q {
				continue
			}
			src, err := LinearIndex(m.size, min(p, q), max(p, q))
			if err != nil {
				return nil, err
			}
			values[pos] = m.values[src]
		}
	}

	var labels []string
	if m.labels != nil {
		labels = make([]string, k)
		for i, p := range idx {
			labels[i] = m.labels[p-1]
		}
	}
	return newMatrix(k, values, labels), nil
}
