package bitorder

import "sort"

// Mapping is a possibly partial function from logical wire index to
// character position in a measured bitstring. A complete mapping is a
// bijection onto [0, width).
type Mapping map[int]int

// Identity returns the mapping wire i -> position i for i in [0, width).
func Identity(width int) Mapping {
	m := make(Mapping, width)
	for i := range width {
		m[i] = i
	}
	return m
}

// Missing returns the wires in [0, width) without a mapped position.
func (m Mapping) Missing(width int) []int {
	var missing []int
	for i := range width {
		if _, ok := m[i]; !ok {
			missing = append(missing, i)
		}
	}
	return missing
}

// Complete reports whether every wire in [0, width) has a mapped position.
func (m Mapping) Complete(width int) bool {
	return len(m.Missing(width)) == 0
}

// WithIdentityFallback fills every unmapped wire in [0, width) with the
// identity position and returns the filled wires. The receiver is not
// mutated.
func (m Mapping) WithIdentityFallback(width int) (Mapping, []int) {
	out := make(Mapping, width)
	for k, v := range m {
		out[k] = v
	}
	filled := m.Missing(width)
	for _, w := range filled {
		out[w] = w
	}
	return out, filled
}

// Decoded is the result of decoding one measured bitstring.
type Decoded struct {
	// Index is the reconstructed logical index, LSB = wire 0.
	Index uint64

	// Missing names the wires whose bit defaulted to 0 because their
	// position was unmapped or out of range for the bitstring.
	Missing []int
}

// Complete reports whether every requested bit was read from the bitstring.
func (d Decoded) Complete() bool { return len(d.Missing) == 0 }

// Decode reconstructs a logical index of activeBits bits from a measured
// bitstring. Bit i is read from position m[i]; if the position is unmapped
// or out of range the bit defaults to 0 and wire i is reported in Missing.
func Decode(bitstring string, m Mapping, activeBits int) Decoded {
	var d Decoded
	for i := range activeBits {
		pos, ok := m[i]
		if !ok || pos < 0 || pos >= len(bitstring) {
			d.Missing = append(d.Missing, i)
			continue
		}
		if bitstring[pos] == '1' {
			d.Index |= 1 << i
		}
	}
	return d
}

// Marginals returns, for each character position, the total probability of
// reading 1 at that position. All keys must share one length; entries of a
// different length are skipped.
func Marginals(probs map[string]float64) []float64 {
	if len(probs) == 0 {
		return nil
	}
	var length int
	for s := range probs {
		length = len(s)
		break
	}
	marg := make([]float64, length)
	for s, p := range probs {
		if len(s) != length {
			continue
		}
		for pos := range length {
			if s[pos] == '1' {
				marg[pos] += p
			}
		}
	}
	return marg
}

// ArgmaxPosition returns the position with the largest marginal, breaking
// ties toward the lowest position. Returns -1 for an empty slice.
func ArgmaxPosition(marginals []float64) int {
	best := -1
	for pos, p := range marginals {
		if best < 0 || p > marginals[best] {
			best = pos
		}
	}
	return best
}

// Positions returns the mapped positions in ascending wire order, for
// logging and persistence.
func (m Mapping) Positions() []int {
	wires := make([]int, 0, len(m))
	for w := range m {
		wires = append(wires, w)
	}
	sort.Ints(wires)
	out := make([]int, len(wires))
	for i, w := range wires {
		out[i] = m[w]
	}
	return out
}
