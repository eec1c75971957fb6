package grover

import (
	"github.com/hupe1980/grovego/circuit"
	"github.com/hupe1980/grovego/synth"
)

// conditioning returns the X gates that map basis state t of the active
// register to |1...1>. Applying the same gates again undoes the mapping.
func conditioning(active []circuit.Wire, t uint64) circuit.Ops {
	var ops circuit.Ops
	for i, w := range active {
		if (t>>i)&1 == 0 {
			ops = append(ops, circuit.X(w))
		}
	}
	return ops
}

// Oracle returns the operation sequence that multiplies the amplitude of
// every basis state in targets by -1 and leaves all others unchanged.
//
// Callers must pre-deduplicate targets: the phase flip is involutive, so a
// duplicated target silently cancels itself. An empty target list yields an
// empty sequence (a no-op oracle, not an error).
func Oracle(reg *circuit.Register, targets []uint64) (circuit.Ops, error) {
	active := reg.Active()
	n := len(active)

	if n == 1 {
		var ops circuit.Ops
		for _, t := range targets {
			if t&1 == 0 {
				ops = append(ops,
					circuit.X(active[0]),
					circuit.Z(active[0]),
					circuit.X(active[0]),
				)
			} else {
				ops = append(ops, circuit.Z(active[0]))
			}
		}
		return ops, nil
	}

	controls := active[:n-1]
	phaseTarget := active[n-1]
	need := max(0, len(controls)-1)
	ancillas := reg.Ancillas()
	if len(ancillas) > need {
		ancillas = ancillas[:need]
	}

	var ops circuit.Ops
	for _, t := range targets {
		cond := conditioning(active, t)

		flip, err := synth.CMZ(controls, phaseTarget, ancillas)
		if err != nil {
			return nil, err
		}

		ops = circuit.Concat(ops, cond, flip, cond)
	}
	return ops, nil
}
