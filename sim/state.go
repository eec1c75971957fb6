package sim

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/hupe1980/grovego/circuit"
)

// StateVector holds the full 2^n amplitude vector of an n-qubit system,
// initialized to |0...0>.
type StateVector struct {
	amps      []complex128
	numQubits int
}

// NewStateVector creates a statevector of numQubits qubits in |0...0>.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{amps: amps, numQubits: numQubits}
}

// NumQubits returns the number of simulated qubits.
func (s *StateVector) NumQubits() int { return s.numQubits }

// Amplitude returns the amplitude of basis state i.
func (s *StateVector) Amplitude(i int) complex128 { return s.amps[i] }

// Clone returns an independent copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.amps))
	copy(amps, s.amps)
	return &StateVector{amps: amps, numQubits: s.numQubits}
}

// PrepareBasis resets the state to the computational basis state i.
func (s *StateVector) PrepareBasis(i int) {
	for j := range s.amps {
		s.amps[j] = 0
	}
	s.amps[i] = 1
}

// ApplyRotation applies U(theta, phi, lambda) to qubit q:
//
//	[ cos(t/2)            -e^{i*lambda} sin(t/2)       ]
//	[ e^{i*phi} sin(t/2)   e^{i*(phi+lambda)} cos(t/2) ]
func (s *StateVector) ApplyRotation(q int, theta, phi, lambda float64) {
	cos := complex(math.Cos(theta/2), 0)
	sin := complex(math.Sin(theta/2), 0)

	a := cos
	b := -cmplx.Exp(complex(0, lambda)) * sin
	c := cmplx.Exp(complex(0, phi)) * sin
	d := cmplx.Exp(complex(0, phi+lambda)) * cos

	bit := 1 << q
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			ai, aj := s.amps[i], s.amps[j]
			s.amps[i] = a*ai + b*aj
			s.amps[j] = c*ai + d*aj
		}
	}
}

// ApplyCZ applies the symmetric controlled-phase gate to qubits p and q.
func (s *StateVector) ApplyCZ(p, q int) {
	mask := (1 << p) | (1 << q)
	for i := range s.amps {
		if i&mask == mask {
			s.amps[i] = -s.amps[i]
		}
	}
}

// ApplyOp applies a single native operation.
func (s *StateVector) ApplyOp(op circuit.Op) {
	switch op.Kind {
	case circuit.OpRotation:
		s.ApplyRotation(op.Target.ID(), op.Theta, op.Phi, op.Lambda)
	case circuit.OpControlledPhase:
		s.ApplyCZ(op.Control.ID(), op.Target.ID())
	}
}

// ApplyOps applies an operation sequence in order.
func (s *StateVector) ApplyOps(ops circuit.Ops) {
	for _, op := range ops {
		s.ApplyOp(op)
	}
}

// Probabilities returns |amp|^2 for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.amps))
	for i, a := range s.amps {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// MarginalOne returns the probability that qubit q reads 1.
func (s *StateVector) MarginalOne(q int) float64 {
	bit := 1 << q
	var p float64
	for i, a := range s.amps {
		if i&bit != 0 {
			p += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	return p
}

// ProbabilityAllZero returns the probability that every qubit in wires reads 0.
func (s *StateVector) ProbabilityAllZero(wires []int) float64 {
	var mask int
	for _, w := range wires {
		mask |= 1 << w
	}
	var p float64
	for i, a := range s.amps {
		if i&mask == 0 {
			p += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	return p
}

// RunProgram simulates a program from |0...0> and returns the exact readout
// distribution over its measurement declarations. Bitstring character
// position equals the output channel index, so position 0 is channel 0.
func RunProgram(p *circuit.Program) (map[string]float64, error) {
	width := p.Width()
	if width == 0 {
		return nil, fmt.Errorf("program touches no wires")
	}

	state := NewStateVector(width)
	state.ApplyOps(p.Ops())

	measures := p.Measurements()
	if len(measures) == 0 {
		return nil, fmt.Errorf("program declares no measurements")
	}

	strLen := 0
	for _, m := range measures {
		if m.Channel+1 > strLen {
			strLen = m.Channel + 1
		}
	}

	const eps = 1e-12
	probs := make(map[string]float64)
	for i, a := range state.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		if p < eps {
			continue
		}
		buf := make([]byte, strLen)
		for j := range buf {
			buf[j] = '0'
		}
		for _, m := range measures {
			if i&(1<<m.Wire.ID()) != 0 {
				buf[m.Channel] = '1'
			}
		}
		probs[string(buf)] += p
	}
	return probs, nil
}
