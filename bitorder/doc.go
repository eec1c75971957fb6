// Package bitorder maps logical wire indices to character positions in
// measured bitstrings.
//
// Hardware backends do not guarantee that wire i lands at position i of the
// returned bitstring. The mapping is discovered empirically: for each
// measured wire an isolated single-excitation probe runs on the backend and
// the position with the largest marginal probability of reading 1 wins.
// Wires whose probe failed are omitted, leaving a partial mapping.
//
// Decoding tolerates partial mappings: unmapped bits default to 0 and the
// affected wires are reported in Decoded.Missing so callers can decide how
// to treat the gap.
package bitorder
