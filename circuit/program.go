package circuit

import (
	"errors"
	"fmt"
)

// ErrSealed is returned when appending gates to a program that already
// declares measurements.
var ErrSealed = errors.New("program is sealed once measurement is declared")

// ErrMeasuredAncilla indicates an attempt to measure a borrowed scratch wire.
type ErrMeasuredAncilla struct {
	Wire Wire
}

func (e *ErrMeasuredAncilla) Error() string {
	return fmt.Sprintf("ancilla wires are never measured: %s", e.Wire)
}

// ErrDuplicateChannel indicates two measurements writing the same output
// channel.
type ErrDuplicateChannel struct {
	Channel int
}

func (e *ErrDuplicateChannel) Error() string {
	return fmt.Sprintf("output channel already declared: %d", e.Channel)
}

// Measurement declares that a wire is read out into an output channel.
// By convention the channel index equals the wire index.
type Measurement struct {
	Wire    Wire
	Channel int
}

// Program is an append-only ordered sequence of gate applications followed
// by measurement declarations. It is handed to an execution backend as an
// atomic unit and discarded afterwards.
type Program struct {
	ops      Ops
	measures []Measurement
	channels map[int]struct{}
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{channels: make(map[int]struct{})}
}

// Append appends gate applications. It fails with ErrSealed once a
// measurement has been declared.
func (p *Program) Append(ops ...Op) error {
	if len(p.measures) > 0 {
		return ErrSealed
	}
	p.ops = append(p.ops, ops...)
	return nil
}

// Measure declares a measurement of w into the given output channel and
// seals the program against further gate appends. Ancilla wires are
// rejected.
func (p *Program) Measure(w Wire, channel int) error {
	if w.Class() == ClassAncilla {
		return &ErrMeasuredAncilla{Wire: w}
	}
	if _, ok := p.channels[channel]; ok {
		return &ErrDuplicateChannel{Channel: channel}
	}
	p.channels[channel] = struct{}{}
	p.measures = append(p.measures, Measurement{Wire: w, Channel: channel})
	return nil
}

// MeasurePrefix declares measurements for the full measured prefix of the
// register, channel index equal to wire index. Ancilla wires are never
// measured.
func (p *Program) MeasurePrefix(reg *Register) error {
	for _, w := range reg.Measured() {
		if err := p.Measure(w, w.ID()); err != nil {
			return err
		}
	}
	return nil
}

// Ops returns the gate sequence. The returned slice must not be mutated.
func (p *Program) Ops() Ops { return p.ops }

// Measurements returns the declared measurements in declaration order.
func (p *Program) Measurements() []Measurement { return p.measures }

// Sealed reports whether measurements have been declared.
func (p *Program) Sealed() bool { return len(p.measures) > 0 }

// GateCount returns the number of gate applications.
func (p *Program) GateCount() int { return len(p.ops) }

// Width returns the number of physical wires the program touches,
// i.e. the highest wire index plus one.
func (p *Program) Width() int {
	maxID := -1
	for _, op := range p.ops {
		if op.Target.ID() > maxID {
			maxID = op.Target.ID()
		}
		if op.Kind == OpControlledPhase && op.Control.ID() > maxID {
			maxID = op.Control.ID()
		}
	}
	for _, m := range p.measures {
		if m.Wire.ID() > maxID {
			maxID = m.Wire.ID()
		}
	}
	return maxID + 1
}
