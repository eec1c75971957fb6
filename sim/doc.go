// Package sim provides an exact statevector simulator for the native gate
// set (universal single-qubit rotation + controlled-phase).
//
// The simulator backs the unitary-level tests of the synthesis packages and
// implements backend.Backend, so full scans can run without a cloud
// connection. Probabilities are exact; no shot sampling is performed.
package sim
