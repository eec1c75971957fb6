package circuit

import "fmt"

// Class identifies the role of a wire within a register.
type Class uint8

const (
	// ClassActive marks a wire of the logical search register.
	ClassActive Class = iota
	// ClassMeasured marks a wire of the fixed measured prefix.
	ClassMeasured
	// ClassAncilla marks a borrowed scratch wire.
	ClassAncilla
)

// String returns a human-readable class name.
func (c Class) String() string {
	switch c {
	case ClassActive:
		return "active"
	case ClassMeasured:
		return "measured"
	case ClassAncilla:
		return "ancilla"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Wire is a typed handle to a physical qubit. Wires are minted by a
// Register; the zero value is the active wire 0.
type Wire struct {
	class Class
	id    int
}

// Class returns the wire class.
func (w Wire) Class() Class { return w.class }

// ID returns the physical wire index.
func (w Wire) ID() int { return w.id }

// String returns a string representation of the wire.
func (w Wire) String() string {
	return fmt.Sprintf("%s(%d)", w.class, w.id)
}

// ErrActiveWidth indicates that the active register does not fit into the
// measured prefix.
type ErrActiveWidth struct {
	ActiveBits    int
	MeasuredWidth int
}

func (e *ErrActiveWidth) Error() string {
	return fmt.Sprintf("active_nbits must not exceed measured width: %d > %d", e.ActiveBits, e.MeasuredWidth)
}

// ErrAncillaOverlap indicates an ancilla block that collides with the
// measured prefix.
type ErrAncillaOverlap struct {
	AncillaStart  int
	MeasuredWidth int
}

func (e *ErrAncillaOverlap) Error() string {
	return fmt.Sprintf("ancilla block must start at or above measured width: %d < %d", e.AncillaStart, e.MeasuredWidth)
}

// ErrInvalidActiveBits indicates a non-positive active register width.
type ErrInvalidActiveBits struct {
	ActiveBits int
}

func (e *ErrInvalidActiveBits) Error() string {
	return fmt.Sprintf("active_nbits must be at least 1: %d", e.ActiveBits)
}

// RegisterOptions configures wire allocation.
type RegisterOptions struct {
	// AncillaStart is the first physical index of the ancilla block.
	// Defaults to the measured width.
	AncillaStart int

	// AncillaCount is the number of ancilla wires to allocate.
	// Defaults to max(0, activeBits-2), the requirement of a phase flip
	// controlled on the full active register.
	AncillaCount int
}

// Register allocates typed wires for one circuit instance.
type Register struct {
	activeBits    int
	measuredWidth int
	ancillaStart  int
	ancillaCount  int
}

// NewRegister creates a register with activeBits logical search wires inside
// a measured prefix of measuredWidth wires.
func NewRegister(activeBits, measuredWidth int, optFns ...func(*RegisterOptions)) (*Register, error) {
	if activeBits < 1 {
		return nil, &ErrInvalidActiveBits{ActiveBits: activeBits}
	}
	if activeBits > measuredWidth {
		return nil, &ErrActiveWidth{ActiveBits: activeBits, MeasuredWidth: measuredWidth}
	}

	opts := RegisterOptions{
		AncillaStart: measuredWidth,
		AncillaCount: max(0, activeBits-2),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.AncillaStart < measuredWidth {
		return nil, &ErrAncillaOverlap{AncillaStart: opts.AncillaStart, MeasuredWidth: measuredWidth}
	}

	return &Register{
		activeBits:    activeBits,
		measuredWidth: measuredWidth,
		ancillaStart:  opts.AncillaStart,
		ancillaCount:  opts.AncillaCount,
	}, nil
}

// ActiveBits returns the logical search register width.
func (r *Register) ActiveBits() int { return r.activeBits }

// MeasuredWidth returns the width of the measured prefix.
func (r *Register) MeasuredWidth() int { return r.measuredWidth }

// AncillaStart returns the first physical index of the ancilla block.
func (r *Register) AncillaStart() int { return r.ancillaStart }

// Width returns the total number of physical wires spanned by the register.
func (r *Register) Width() int {
	if r.ancillaCount > 0 {
		return r.ancillaStart + r.ancillaCount
	}
	return r.measuredWidth
}

// Active returns the logical search wires, LSB first.
func (r *Register) Active() []Wire {
	wires := make([]Wire, r.activeBits)
	for i := range wires {
		wires[i] = Wire{class: ClassActive, id: i}
	}
	return wires
}

// Measured returns the wires of the measured prefix.
func (r *Register) Measured() []Wire {
	wires := make([]Wire, r.measuredWidth)
	for i := range wires {
		wires[i] = Wire{class: ClassMeasured, id: i}
	}
	return wires
}

// Ancillas returns the borrowed scratch wires.
func (r *Register) Ancillas() []Wire {
	wires := make([]Wire, r.ancillaCount)
	for i := range wires {
		wires[i] = Wire{class: ClassAncilla, id: r.ancillaStart + i}
	}
	return wires
}
