package synth

import (
	"fmt"

	"github.com/hupe1980/grovego/circuit"
)

// ErrInsufficientAncillas indicates a CMZ call with fewer borrowed wires
// than the control count requires.
type ErrInsufficientAncillas struct {
	Need int
	Got  int
}

func (e *ErrInsufficientAncillas) Error() string {
	return fmt.Sprintf("not enough ancillas for cmz: need %d, got %d", e.Need, e.Got)
}

// CNOT synthesizes a controlled-NOT from the native set:
//
//	H(target); CZ(control, target); H(target)
//
// This is the only way two-qubit entangling control appears above the
// native layer.
func CNOT(control, target circuit.Wire) circuit.Ops {
	return circuit.Ops{
		circuit.H(target),
		circuit.CZ(control, target),
		circuit.H(target),
	}
}

// Toffoli synthesizes a controlled-controlled-NOT on target t with controls
// a and b, using the standard 6-CNOT decomposition over CNOT, T and T†.
// The gate ordering is part of the contract; tests verify the full CCX
// truth table via unitary simulation.
func Toffoli(a, b, t circuit.Wire) circuit.Ops {
	return circuit.Concat(
		circuit.Ops{circuit.H(t)},
		CNOT(b, t),
		circuit.Ops{circuit.Tdg(t)},
		CNOT(a, t),
		circuit.Ops{circuit.T(t)},
		CNOT(b, t),
		circuit.Ops{circuit.Tdg(t)},
		CNOT(a, t),
		circuit.Ops{circuit.T(b), circuit.T(t), circuit.H(t)},
		CNOT(a, b),
		circuit.Ops{circuit.T(a), circuit.Tdg(b)},
		CNOT(a, b),
	)
}

// CMZ synthesizes a phase flip on target controlled by every wire in
// controls.
//
//   - 0 controls: Z(target)
//   - 1 control: CZ(control, target)
//   - m >= 2 controls: an AND-ladder of Toffolis over m-1 ancillas computes
//     the conjunction, a single CZ flips the target phase, and the ladder is
//     uncomputed in exact reverse order so every ancilla is returned to |0>.
//
// The ancillas must be in |0> on entry; they are guaranteed to be back in
// |0> when the sequence ends.
func CMZ(controls []circuit.Wire, target circuit.Wire, ancillas []circuit.Wire) (circuit.Ops, error) {
	m := len(controls)
	switch m {
	case 0:
		return circuit.Ops{circuit.Z(target)}, nil
	case 1:
		return circuit.Ops{circuit.CZ(controls[0], target)}, nil
	}

	need := m - 1
	if len(ancillas) < need {
		return nil, &ErrInsufficientAncillas{Need: need, Got: len(ancillas)}
	}

	compute := Toffoli(controls[0], controls[1], ancillas[0])
	for i := 2; i < m; i++ {
		compute = circuit.Concat(compute, Toffoli(ancillas[i-2], controls[i], ancillas[i-1]))
	}

	uncompute := make(circuit.Ops, 0, len(compute))
	for i := m - 1; i >= 2; i-- {
		uncompute = circuit.Concat(uncompute, Toffoli(ancillas[i-2], controls[i], ancillas[i-1]))
	}
	uncompute = circuit.Concat(uncompute, Toffoli(controls[0], controls[1], ancillas[0]))

	return circuit.Concat(
		compute,
		circuit.Ops{circuit.CZ(ancillas[need-1], target)},
		uncompute,
	), nil
}
