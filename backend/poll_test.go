package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/grovego/circuit"
)

// fakeClock advances instantly: After moves the clock forward and fires
// immediately, so polling loops run without real sleeps.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

type fakeJob struct {
	id       string
	statuses []Status
	result   Result
	polls    int
}

func (j *fakeJob) ID() string { return j.id }

func (j *fakeJob) Status(context.Context) (Status, error) {
	if j.polls >= len(j.statuses) {
		return j.statuses[len(j.statuses)-1], nil
	}
	s := j.statuses[j.polls]
	j.polls++
	return s, nil
}

func (j *fakeJob) Result(context.Context) (Result, error) {
	return j.result, nil
}

type fakeBackend struct {
	job       Job
	submitErr error
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Run(context.Context, []*circuit.Program, int, Options) (Job, error) {
	if b.submitErr != nil {
		return nil, b.submitErr
	}
	return b.job, nil
}

func newTestPoller(clock Clock) *Poller {
	return NewPoller(func(o *PollerOptions) {
		o.Clock = clock
		o.Interval = time.Second
		o.Timeout = time.Minute
	})
}

func TestPollerRunFinishes(t *testing.T) {
	clock := &fakeClock{}
	want := Result{Probs: []map[string]float64{{"01": 1}}}

	job := &fakeJob{
		id:       "job-1",
		statuses: []Status{StatusQueued, StatusRunning, StatusFinished},
		result:   want,
	}
	b := &fakeBackend{job: job}

	res, err := newTestPoller(clock).Run(context.Background(), b, nil, 100, Options{})
	require.NoError(t, err)
	assert.Equal(t, want, res)
	assert.Equal(t, 3, job.polls)
}

func TestPollerRunJobFailed(t *testing.T) {
	job := &fakeJob{
		id:       "job-2",
		statuses: []Status{StatusRunning, StatusFailed},
	}
	b := &fakeBackend{job: job}

	_, err := newTestPoller(&fakeClock{}).Run(context.Background(), b, nil, 100, Options{})

	var e *ErrJobFailed
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "job-2", e.JobID)
	assert.Equal(t, StatusFailed, e.Status)
}

func TestPollerRunTimeout(t *testing.T) {
	job := &fakeJob{
		id:       "job-3",
		statuses: []Status{StatusRunning},
	}
	b := &fakeBackend{job: job}

	_, err := newTestPoller(&fakeClock{}).Run(context.Background(), b, nil, 100, Options{})
	require.ErrorIs(t, err, ErrPollTimeout)
}

func TestPollerRunSubmitError(t *testing.T) {
	b := &fakeBackend{submitErr: errors.New("queue full")}

	_, err := newTestPoller(&fakeClock{}).Run(context.Background(), b, nil, 100, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submit")
}

func TestPollerRunContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := &fakeJob{id: "job-4", statuses: []Status{StatusRunning}}
	b := &fakeBackend{job: job}

	// Real clock so the canceled context wins the select.
	p := NewPoller(func(o *PollerOptions) {
		o.Interval = time.Hour
		o.Timeout = 2 * time.Hour
	})
	_, err := p.Run(ctx, b, nil, 100, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPollerProbs(t *testing.T) {
	job := &fakeJob{
		id:       "job-5",
		statuses: []Status{StatusFinished},
		result:   Result{Probs: []map[string]float64{{"11": 0.5, "00": 0.5}}},
	}
	b := &fakeBackend{job: job}

	probs, err := newTestPoller(&fakeClock{}).Probs(context.Background(), b, nil, 100, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, probs["11"], 1e-9)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "finished", StatusFinished.String())
	assert.Equal(t, "queued", StatusQueued.String())

	assert.True(t, StatusFinished.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusCanceled.Terminal())
	assert.False(t, StatusRunning.Terminal())
	assert.False(t, StatusQueued.Terminal())
}
