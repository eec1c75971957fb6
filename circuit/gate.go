package circuit

import "math"

// OpKind discriminates the two native primitives.
type OpKind uint8

const (
	// OpRotation is the universal single-qubit rotation U(theta, phi, lambda).
	OpRotation OpKind = iota
	// OpControlledPhase is the symmetric two-wire controlled-phase gate.
	OpControlledPhase
)

// Op is a single gate application. Angles are meaningful for rotations only;
// Control is meaningful for controlled-phase gates only.
type Op struct {
	Kind    OpKind
	Target  Wire
	Control Wire

	Theta  float64
	Phi    float64
	Lambda float64
}

// Ops is a value-semantics operation sequence. Combinators return fresh Ops
// slices that callers concatenate; there is no shared builder state.
type Ops []Op

// Concat concatenates operation sequences into a new slice.
func Concat(seqs ...Ops) Ops {
	var n int
	for _, s := range seqs {
		n += len(s)
	}
	out := make(Ops, 0, n)
	for _, s := range seqs {
		out = append(out, s...)
	}
	return out
}

// Rotate applies the universal rotation U(theta, phi, lambda) to a wire.
// Angles are unrestricted reals, implicitly mod 2*pi.
func Rotate(w Wire, theta, phi, lambda float64) Op {
	return Op{Kind: OpRotation, Target: w, Theta: theta, Phi: phi, Lambda: lambda}
}

// RZ is the phase rotation diag(1, e^{i*lambda}) = U(0, 0, lambda).
func RZ(w Wire, lambda float64) Op {
	return Rotate(w, 0, 0, lambda)
}

// X is the bit flip, U(pi, 0, pi).
func X(w Wire) Op {
	return Rotate(w, math.Pi, 0, math.Pi)
}

// Z is the phase flip, RZ(pi).
func Z(w Wire) Op {
	return RZ(w, math.Pi)
}

// H is the Hadamard gate, U(pi/2, 0, pi), up to global phase.
func H(w Wire) Op {
	return Rotate(w, math.Pi/2, 0, math.Pi)
}

// T is the pi/8 gate, RZ(pi/4).
func T(w Wire) Op {
	return RZ(w, math.Pi/4)
}

// Tdg is the adjoint of T, RZ(-pi/4).
func Tdg(w Wire) Op {
	return RZ(w, -math.Pi/4)
}

// CZ is the native symmetric controlled-phase gate.
func CZ(a, b Wire) Op {
	return Op{Kind: OpControlledPhase, Control: a, Target: b}
}
