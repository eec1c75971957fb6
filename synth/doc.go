// Package synth decomposes multi-qubit operators into the native gate set.
//
// The platform executes only the universal single-qubit rotation and the
// symmetric controlled-phase gate, so controlled-NOT, Toffoli and
// multi-controlled phase flips are synthesized here. All combinators return
// fresh circuit.Ops sequences; callers concatenate them into a program.
//
// Ancilla discipline: CMZ borrows scratch wires for the duration of the
// synthesized sequence and uncomputes them back to |0> before it ends.
// This is what allows the very next CMZ call to reuse the same ancilla
// wires without reinitialization.
package synth
