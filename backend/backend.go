package backend

import (
	"context"
	"fmt"

	"github.com/hupe1980/grovego/circuit"
)

// Status is the lifecycle state of a submitted job.
type Status uint8

const (
	// StatusUnknown is reported when the backend cannot classify the job.
	StatusUnknown Status = iota
	// StatusQueued means the job is accepted but not yet running.
	StatusQueued
	// StatusRunning means the job is executing.
	StatusRunning
	// StatusFinished means results are available.
	StatusFinished
	// StatusFailed means the job ended without results.
	StatusFailed
	// StatusCanceled means the job was canceled before completion.
	StatusCanceled
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	case StatusFailed:
		return "failed"
	case StatusCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusFailed || s == StatusCanceled
}

// Options carries best-effort execution toggles. Hardware platforms bind
// readout compensation and mapping optimization to specific physical
// layouts; disabling them avoids submission-time rejections on circuits the
// platform did not calibrate for.
type Options struct {
	DisableCompensation    bool
	DisableErrorMitigation bool
	DisableOptimization    bool
	DisableCalibration     bool
}

// MinimalOptions disables every optional platform transformation.
func MinimalOptions() Options {
	return Options{
		DisableCompensation:    true,
		DisableErrorMitigation: true,
		DisableOptimization:    true,
		DisableCalibration:     true,
	}
}

// Result holds per-program readout distributions: one bitstring ->
// probability map per submitted program, probabilities summing to at most 1.
type Result struct {
	Probs []map[string]float64
}

// Job is a handle to a submitted batch.
type Job interface {
	// ID identifies the job on the backend.
	ID() string

	// Status reports the current lifecycle state. Implementations must
	// report backend-side compilation or mapping failures as an error
	// here rather than panicking.
	Status(ctx context.Context) (Status, error)

	// Result returns the readout distributions of a finished job.
	Result(ctx context.Context) (Result, error)
}

// Backend executes batches of native-gate programs.
type Backend interface {
	// Name identifies the backend (e.g. a hardware target name).
	Name() string

	// Run submits the programs for execution with the given shot count.
	Run(ctx context.Context, progs []*circuit.Program, shots int, opts Options) (Job, error)
}
