package bitorder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/grovego/backend"
	"github.com/hupe1980/grovego/circuit"
)

// ProbeProgram builds the single-excitation probe for one wire: X on the
// probed wire, measurement of the full measured prefix. The probed wire's
// bitstring position is wherever the excitation shows up.
func ProbeProgram(measuredWidth, wire int) (*circuit.Program, error) {
	if wire < 0 || wire >= measuredWidth {
		return nil, fmt.Errorf("probe wire out of range: %d not in [0, %d)", wire, measuredWidth)
	}
	reg, err := circuit.NewRegister(measuredWidth, measuredWidth)
	if err != nil {
		return nil, err
	}

	prog := circuit.NewProgram()
	if err := prog.Append(circuit.X(reg.Active()[wire])); err != nil {
		return nil, err
	}
	if err := prog.MeasurePrefix(reg); err != nil {
		return nil, err
	}
	return prog, nil
}

// TopOutcome is the most probable bitstring of one probe run, kept for
// diagnostics.
type TopOutcome struct {
	Bitstring string  `json:"bitstring"`
	Prob      float64 `json:"prob"`
}

// ProbeReport is the outcome of a full bit-order calibration pass.
type ProbeReport struct {
	MeasuredWidth int `json:"measured_width"`
	Shots         int `json:"shots"`

	// Mapping holds wire -> position for every wire whose probe
	// succeeded; failed wires are omitted, leaving a partial mapping.
	Mapping Mapping `json:"mapping"`

	// Marginals holds the per-position one-probability per probed wire.
	Marginals map[int][]float64 `json:"marginals"`

	// Top holds the most probable bitstring per probed wire.
	Top map[int]TopOutcome `json:"top"`

	// Failed maps wires to the error string of their probe run.
	Failed map[int]string `json:"failed,omitempty"`
}

// ProberOptions configures calibration runs.
type ProberOptions struct {
	// Shots per probe circuit. Default 2000.
	Shots int

	// Wires restricts probing to the given wires. Nil probes every wire
	// of the measured prefix.
	Wires []int

	// Options are passed through to the backend.
	Options backend.Options

	// Logger records per-wire probe outcomes. Nil discards.
	Logger *slog.Logger
}

// Prober discovers the wire-to-position permutation empirically.
type Prober struct {
	poller *backend.Poller
	opts   ProberOptions
}

// NewProber creates a prober driving probe jobs through the given poller.
func NewProber(poller *backend.Poller, optFns ...func(*ProberOptions)) *Prober {
	opts := ProberOptions{Shots: 2000}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Prober{poller: poller, opts: opts}
}

// Infer runs one probe circuit per wire and assigns each wire the position
// with the largest marginal probability of reading 1. Probe failures do not
// abort the pass; the affected wires are simply absent from the mapping and
// listed in Failed.
func (p *Prober) Infer(ctx context.Context, b backend.Backend, measuredWidth int) (*ProbeReport, error) {
	wires := p.opts.Wires
	if wires == nil {
		wires = make([]int, measuredWidth)
		for i := range wires {
			wires[i] = i
		}
	}

	report := &ProbeReport{
		MeasuredWidth: measuredWidth,
		Shots:         p.opts.Shots,
		Mapping:       make(Mapping),
		Marginals:     make(map[int][]float64),
		Top:           make(map[int]TopOutcome),
		Failed:        make(map[int]string),
	}

	for _, wire := range wires {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prog, err := ProbeProgram(measuredWidth, wire)
		if err != nil {
			return nil, err
		}

		probs, err := p.poller.Probs(ctx, b, prog, p.opts.Shots, p.opts.Options)
		if err != nil {
			report.Failed[wire] = err.Error()
			if p.opts.Logger != nil {
				p.opts.Logger.WarnContext(ctx, "probe failed", "wire", wire, "error", err)
			}
			continue
		}

		var top TopOutcome
		for s, prob := range probs {
			if prob > top.Prob {
				top = TopOutcome{Bitstring: s, Prob: prob}
			}
		}
		report.Top[wire] = top

		marg := Marginals(probs)
		report.Marginals[wire] = marg
		if pos := ArgmaxPosition(marg); pos >= 0 {
			report.Mapping[wire] = pos
			if p.opts.Logger != nil {
				p.opts.Logger.DebugContext(ctx, "probe mapped", "wire", wire, "position", pos)
			}
		}
	}

	if len(report.Failed) == 0 {
		report.Failed = nil
	}
	return report, nil
}
