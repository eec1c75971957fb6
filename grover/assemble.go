package grover

import (
	"fmt"
	"math"

	"github.com/hupe1980/grovego/circuit"
)

// Params configures one assembled search program.
type Params struct {
	// ActiveBits is the logical search register width (block width).
	ActiveBits int

	// MeasuredWidth is the fixed prefix that is always measured.
	// Must be at least ActiveBits.
	MeasuredWidth int

	// Targets are the marked local basis states, pre-deduplicated.
	Targets []uint64

	// Iterations is the number of oracle+diffusion rounds. Zero is valid
	// and yields the bare uniform superposition.
	Iterations int

	// AncillaStart is the first physical wire of the scratch block.
	// Zero means "at the measured width".
	AncillaStart int
}

// ErrInvalidIterations indicates a negative iteration count.
type ErrInvalidIterations struct {
	Iterations int
}

func (e *ErrInvalidIterations) Error() string {
	return fmt.Sprintf("iterations must not be negative: %d", e.Iterations)
}

// Build assembles one complete Grover program: uniform superposition over
// the active register, Iterations rounds of oracle followed by diffusion,
// and measurement declarations for every wire of the measured prefix.
// Ancilla wires are never measured.
func Build(p Params) (*circuit.Program, error) {
	if p.Iterations < 0 {
		return nil, &ErrInvalidIterations{Iterations: p.Iterations}
	}

	var regOpts []func(*circuit.RegisterOptions)
	if p.AncillaStart > 0 {
		start := p.AncillaStart
		regOpts = append(regOpts, func(o *circuit.RegisterOptions) {
			o.AncillaStart = start
		})
	}

	reg, err := circuit.NewRegister(p.ActiveBits, p.MeasuredWidth, regOpts...)
	if err != nil {
		return nil, err
	}

	prog := circuit.NewProgram()

	var prep circuit.Ops
	for _, w := range reg.Active() {
		prep = append(prep, circuit.H(w))
	}
	if err := prog.Append(prep...); err != nil {
		return nil, err
	}

	for range p.Iterations {
		oracle, err := Oracle(reg, p.Targets)
		if err != nil {
			return nil, err
		}
		diffusion, err := Diffusion(reg)
		if err != nil {
			return nil, err
		}
		if err := prog.Append(circuit.Concat(oracle, diffusion)...); err != nil {
			return nil, err
		}
	}

	if err := prog.MeasurePrefix(reg); err != nil {
		return nil, err
	}
	return prog, nil
}

// RecommendedIterations returns floor(pi/4 * sqrt(N/M)), the canonical
// iteration count for N states with M marked. It is advisory only; Build
// never applies it implicitly.
func RecommendedIterations(n, m uint64) int {
	if m < 1 {
		m = 1
	}
	return int(math.Floor(math.Pi / 4.0 * math.Sqrt(float64(n)/float64(m))))
}
