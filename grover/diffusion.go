package grover

import (
	"github.com/hupe1980/grovego/circuit"
	"github.com/hupe1980/grovego/synth"
)

// Diffusion returns the inversion-about-the-mean step:
//
//	H^n X^n C^{n-1}Z X^n H^n
//
// over the active register, borrowing ancillas from the register for the
// multi-controlled phase flip.
func Diffusion(reg *circuit.Register) (circuit.Ops, error) {
	active := reg.Active()
	n := len(active)

	if n == 1 {
		w := active[0]
		return circuit.Ops{
			circuit.H(w),
			circuit.X(w),
			circuit.Z(w),
			circuit.X(w),
			circuit.H(w),
		}, nil
	}

	var pre, post circuit.Ops
	for _, w := range active {
		pre = append(pre, circuit.H(w))
	}
	for _, w := range active {
		pre = append(pre, circuit.X(w))
	}
	for _, w := range active {
		post = append(post, circuit.X(w))
	}
	for _, w := range active {
		post = append(post, circuit.H(w))
	}

	controls := active[:n-1]
	phaseTarget := active[n-1]
	need := max(0, len(controls)-1)
	ancillas := reg.Ancillas()
	if len(ancillas) > need {
		ancillas = ancillas[:need]
	}

	flip, err := synth.CMZ(controls, phaseTarget, ancillas)
	if err != nil {
		return nil, err
	}

	return circuit.Concat(pre, flip, post), nil
}
