// Package circuit provides the program model for the native gate set.
//
// The target platform executes exactly two primitives: a universal
// single-qubit rotation (three Euler angles) and a symmetric two-wire
// controlled-phase gate. Everything else in this repository is synthesized
// from these two operations.
//
// Wires are typed handles minted by a Register. A register partitions the
// wire space into three classes:
//
//   - Active: the logical search register, ids [0, n)
//   - Measured: the fixed prefix that is always measured, ids [0, W), W >= n
//   - Ancilla: borrowed scratch wires, allocated at or above W
//
// Cross-class misuse (measuring an ancilla, an ancilla block overlapping the
// measured prefix) is rejected at construction time instead of relying on
// numeric conventions.
//
// Programs are append-only sequences of gate applications followed by
// measurement declarations. Once the first measurement is declared the
// program is sealed and further appends fail.
package circuit
