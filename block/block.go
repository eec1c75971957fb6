// Package block maps global record ids onto fixed-width address blocks.
//
// The execution platform enforces a hard circuit-depth ceiling, so only one
// block's worth of logical qubits is ever placed in superposition per
// circuit. A block id plus a local in-block index reconstruct the global id:
//
//	global = (blockID << bits) | local
package block

import "fmt"

// ErrInvalidBlockBits indicates a block width below one bit.
type ErrInvalidBlockBits struct {
	Bits int
}

func (e *ErrInvalidBlockBits) Error() string {
	return fmt.Sprintf("block_bits must be at least 1: %d", e.Bits)
}

// Size returns the number of records per block, 2^bits.
func Size(bits int) (uint64, error) {
	if bits < 1 {
		return 0, &ErrInvalidBlockBits{Bits: bits}
	}
	return 1 << bits, nil
}

// Encode splits a global record id into (blockID, local).
// Round-trips exactly with Decode for every non-negative id.
func Encode(global uint64, bits int) (blockID, local uint64, err error) {
	if bits < 1 {
		return 0, 0, &ErrInvalidBlockBits{Bits: bits}
	}
	mask := uint64(1)<<bits - 1
	return global >> bits, global & mask, nil
}

// Decode reconstructs a global record id from (blockID, local).
// The caller maintains the invariant local < 2^bits.
func Decode(blockID, local uint64, bits int) (uint64, error) {
	if bits < 1 {
		return 0, &ErrInvalidBlockBits{Bits: bits}
	}
	return blockID<<bits | local, nil
}
