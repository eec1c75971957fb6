package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/grovego/circuit"
	"golang.org/x/time/rate"
)

// ErrPollTimeout is returned when a job does not reach a terminal state
// within the configured window.
var ErrPollTimeout = errors.New("poll timeout")

// ErrJobFailed is returned when a job terminates without results.
type ErrJobFailed struct {
	JobID  string
	Status Status
}

func (e *ErrJobFailed) Error() string {
	return fmt.Sprintf("job %s ended with status=%s", e.JobID, e.Status)
}

// PollerOptions configures the polling loop.
type PollerOptions struct {
	// Clock supplies wall time. Defaults to the system clock.
	Clock Clock

	// Interval is the delay between status polls. Default 2s.
	Interval time.Duration

	// Timeout bounds the whole submit+poll cycle. Default 10m.
	Timeout time.Duration

	// Limiter rate-limits submissions and status polls against the
	// backend. Nil disables limiting.
	Limiter *rate.Limiter
}

// Poller drives a job through {submitted, polling, terminal} and extracts
// the readout distribution. It never panics past its own boundary: every
// submission failure, status-poll failure, terminal failure and timeout is
// returned as an error value.
type Poller struct {
	clock    Clock
	interval time.Duration
	timeout  time.Duration
	limiter  *rate.Limiter
}

// NewPoller creates a poller.
func NewPoller(optFns ...func(*PollerOptions)) *Poller {
	opts := PollerOptions{
		Clock:    SystemClock(),
		Interval: 2 * time.Second,
		Timeout:  10 * time.Minute,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Poller{
		clock:    opts.Clock,
		interval: opts.Interval,
		timeout:  opts.Timeout,
		limiter:  opts.Limiter,
	}
}

func (p *Poller) wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

// Run submits the programs and polls until the job terminates, returning
// the full per-program result.
func (p *Poller) Run(ctx context.Context, b Backend, progs []*circuit.Program, shots int, opts Options) (Result, error) {
	deadline := p.clock.Now().Add(p.timeout)

	// Submitted.
	if err := p.wait(ctx); err != nil {
		return Result{}, fmt.Errorf("submit: %w", err)
	}
	job, err := b.Run(ctx, progs, shots, opts)
	if err != nil {
		return Result{}, fmt.Errorf("submit: %w", err)
	}

	// Polling.
	for {
		if err := p.wait(ctx); err != nil {
			return Result{}, fmt.Errorf("poll: %w", err)
		}
		status, err := job.Status(ctx)
		if err != nil {
			// Compilation and mapping failures surface here on some
			// platforms.
			return Result{}, fmt.Errorf("job status: %w", err)
		}

		// Terminal.
		switch status {
		case StatusFinished:
			res, err := job.Result(ctx)
			if err != nil {
				return Result{}, fmt.Errorf("job result: %w", err)
			}
			return res, nil
		case StatusFailed, StatusCanceled:
			return Result{}, &ErrJobFailed{JobID: job.ID(), Status: status}
		}

		if !p.clock.Now().Before(deadline) {
			return Result{}, ErrPollTimeout
		}

		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-p.clock.After(p.interval):
		}
	}
}

// Probs runs a single program and returns its readout distribution, the
// common case of one circuit per record.
func (p *Poller) Probs(ctx context.Context, b Backend, prog *circuit.Program, shots int, opts Options) (map[string]float64, error) {
	res, err := p.Run(ctx, b, []*circuit.Program{prog}, shots, opts)
	if err != nil {
		return nil, err
	}
	if len(res.Probs) == 0 {
		return nil, errors.New("empty result")
	}
	return res.Probs[0], nil
}
