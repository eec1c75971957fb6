package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/grovego/backend"
	"github.com/hupe1980/grovego/circuit"
)

// BackendOptions configures the simulator backend.
type BackendOptions struct {
	// Name is the reported backend name. Default "sim".
	Name string

	// QueuePolls is the number of status polls a job answers with
	// "running" before finishing. Useful for exercising polling loops.
	// Default 0: jobs finish immediately.
	QueuePolls int
}

// Backend is an exact-simulation implementation of backend.Backend.
// Distributions are computed from the statevector; the shot count is
// accepted for interface compatibility but no sampling noise is added.
type Backend struct {
	name       string
	queuePolls int
	jobSeq     atomic.Uint64
}

// NewBackend creates a simulator backend.
func NewBackend(optFns ...func(*BackendOptions)) *Backend {
	opts := BackendOptions{Name: "sim"}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Backend{name: opts.Name, queuePolls: opts.QueuePolls}
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return b.name }

// Run implements backend.Backend. Programs are simulated eagerly; malformed
// programs are reported as submission failures.
func (b *Backend) Run(ctx context.Context, progs []*circuit.Program, shots int, _ backend.Options) (backend.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(progs) == 0 {
		return nil, errors.New("no programs submitted")
	}
	if shots < 1 {
		return nil, fmt.Errorf("shots must be at least 1: %d", shots)
	}

	res := backend.Result{Probs: make([]map[string]float64, len(progs))}
	for i, prog := range progs {
		probs, err := RunProgram(prog)
		if err != nil {
			return nil, fmt.Errorf("program %d: %w", i, err)
		}
		res.Probs[i] = probs
	}

	return &job{
		id:        fmt.Sprintf("%s-%d", b.name, b.jobSeq.Add(1)),
		result:    res,
		remaining: b.queuePolls,
	}, nil
}

type job struct {
	id     string
	result backend.Result

	mu        sync.Mutex
	remaining int
}

func (j *job) ID() string { return j.id }

func (j *job) Status(ctx context.Context) (backend.Status, error) {
	if err := ctx.Err(); err != nil {
		return backend.StatusUnknown, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.remaining > 0 {
		j.remaining--
		return backend.StatusRunning, nil
	}
	return backend.StatusFinished, nil
}

func (j *job) Result(ctx context.Context) (backend.Result, error) {
	if err := ctx.Err(); err != nil {
		return backend.Result{}, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.remaining > 0 {
		return backend.Result{}, errors.New("job not finished")
	}
	return j.result, nil
}
