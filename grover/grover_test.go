package grover

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/grovego/circuit"
	"github.com/hupe1980/grovego/sim"
)

const eps = 1e-9

func TestOracleSignFlip(t *testing.T) {
	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			reg, err := circuit.NewRegister(n, n)
			require.NoError(t, err)

			dim := uint64(1) << n
			for target := uint64(0); target < dim; target++ {
				ops, err := Oracle(reg, []uint64{target})
				require.NoError(t, err)

				// Only the target's amplitude changes sign.
				for in := uint64(0); in < dim; in++ {
					s := sim.NewStateVector(reg.Width())
					s.PrepareBasis(int(in))
					s.ApplyOps(ops)

					want := 1.0
					if in == target {
						want = -1
					}
					assert.InDelta(t, want, real(s.Amplitude(int(in))), eps,
						"n=%d target=%d input=%d", n, target, in)
				}
			}
		})
	}
}

func TestOracleMultipleTargets(t *testing.T) {
	reg, err := circuit.NewRegister(3, 3)
	require.NoError(t, err)

	targets := []uint64{2, 5}
	ops, err := Oracle(reg, targets)
	require.NoError(t, err)

	marked := map[uint64]bool{2: true, 5: true}
	for in := uint64(0); in < 8; in++ {
		s := sim.NewStateVector(reg.Width())
		s.PrepareBasis(int(in))
		s.ApplyOps(ops)

		want := 1.0
		if marked[in] {
			want = -1
		}
		assert.InDelta(t, want, real(s.Amplitude(int(in))), eps, "input=%d", in)
	}
}

func TestOracleEmptyTargets(t *testing.T) {
	reg, err := circuit.NewRegister(3, 3)
	require.NoError(t, err)

	ops, err := Oracle(reg, nil)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestDiffusionAmplifies(t *testing.T) {
	// n=2 with one target reaches certainty after a single iteration.
	reg, err := circuit.NewRegister(2, 2)
	require.NoError(t, err)

	const target = 3

	oracle, err := Oracle(reg, []uint64{target})
	require.NoError(t, err)
	diffusion, err := Diffusion(reg)
	require.NoError(t, err)

	s := sim.NewStateVector(reg.Width())
	for _, w := range reg.Active() {
		s.ApplyOp(circuit.H(w))
	}
	s.ApplyOps(oracle)
	s.ApplyOps(diffusion)

	probs := s.Probabilities()
	assert.InDelta(t, 1, probs[target], eps)
}

func TestBuild(t *testing.T) {
	prog, err := Build(Params{
		ActiveBits:    4,
		MeasuredWidth: 10,
		Targets:       []uint64{5},
		Iterations:    1,
	})
	require.NoError(t, err)
	require.True(t, prog.Sealed())
	assert.Len(t, prog.Measurements(), 10)

	probs, err := sim.RunProgram(prog)
	require.NoError(t, err)

	// One iteration over 16 states lifts the target amplitude to 11/16.
	want := (11.0 / 16.0) * (11.0 / 16.0)
	top := "1010000000" // 5 across wires 0..3, LSB first
	assert.InDelta(t, want, probs[top], eps)

	for bs, p := range probs {
		if bs != top {
			assert.Less(t, p, probs[top], "outcome %s", bs)
		}
	}
}

func TestBuildZeroIterations(t *testing.T) {
	prog, err := Build(Params{
		ActiveBits:    2,
		MeasuredWidth: 4,
		Targets:       []uint64{1},
		Iterations:    0,
	})
	require.NoError(t, err)

	probs, err := sim.RunProgram(prog)
	require.NoError(t, err)

	// Bare uniform superposition over the active register.
	require.Len(t, probs, 4)
	for _, p := range probs {
		assert.InDelta(t, 0.25, p, eps)
	}
}

func TestBuildErrors(t *testing.T) {
	t.Run("negative iterations", func(t *testing.T) {
		_, err := Build(Params{ActiveBits: 2, MeasuredWidth: 4, Iterations: -1})
		var e *ErrInvalidIterations
		require.ErrorAs(t, err, &e)
		assert.Equal(t, -1, e.Iterations)
	})

	t.Run("active wider than measured", func(t *testing.T) {
		_, err := Build(Params{ActiveBits: 5, MeasuredWidth: 4})
		var e *circuit.ErrActiveWidth
		require.ErrorAs(t, err, &e)
	})
}

func TestRecommendedIterations(t *testing.T) {
	assert.Equal(t, 1, RecommendedIterations(4, 1))
	assert.Equal(t, 3, RecommendedIterations(16, 1))
	assert.Equal(t, 2, RecommendedIterations(16, 2))

	// Zero marked states is clamped rather than dividing by zero.
	assert.Equal(t, 3, RecommendedIterations(16, 0))
}
