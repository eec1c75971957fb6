package grovego

import (
	"errors"
	"fmt"

	"github.com/hupe1980/grovego/block"
	"github.com/hupe1980/grovego/circuit"
	"github.com/hupe1980/grovego/grover"
	"github.com/hupe1980/grovego/synth"
)

// ErrConfiguration unifies all construction-time precondition violations:
// an active register wider than the measured prefix, too few ancillas for a
// multi-controlled phase flip, a block width below one bit. These are
// raised synchronously at construction, never mid-build.
var ErrConfiguration = errors.New("invalid configuration")

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var aw *circuit.ErrActiveWidth
	if errors.As(err, &aw) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var ab *circuit.ErrInvalidActiveBits
	if errors.As(err, &ab) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var ao *circuit.ErrAncillaOverlap
	if errors.As(err, &ao) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var ia *synth.ErrInsufficientAncillas
	if errors.As(err, &ia) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var bb *block.ErrInvalidBlockBits
	if errors.As(err, &bb) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var it *grover.ErrInvalidIterations
	if errors.As(err, &it) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return err
}
