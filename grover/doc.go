// Package grover assembles blocked Grover search programs in the native
// gate set.
//
// One program places a single block's worth of logical qubits in uniform
// superposition, iterates oracle and diffusion a caller-chosen number of
// times and measures the fixed prefix. The caller supplies the iteration
// count and block width; neither is chosen here.
package grover
