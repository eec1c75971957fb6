package grovego

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/grovego/backend"
	"github.com/hupe1980/grovego/block"
	"github.com/hupe1980/grovego/circuit"
	"github.com/hupe1980/grovego/codec"
	"github.com/hupe1980/grovego/grover"
)

// New creates a new Scanner builder for the given execution backend.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration.
//
// Example:
//
//	scanner, err := grovego.New(sim.NewBackend()).
//	    BlockBits(4).
//	    MeasuredWidth(10).
//	    Shots(2000).
//	    Iterations(1).
//	    Build()
func New(b backend.Backend) ScannerBuilder {
	return ScannerBuilder{backend: b, opts: defaultOptions()}
}

// ScannerBuilder is an immutable fluent builder for creating Scanner
// instances.
type ScannerBuilder struct {
	backend backend.Backend
	opts    options
}

// BlockBits sets the block width in bits. Each circuit searches one block
// of 2^bits records; the width is chosen by the caller to respect the
// platform depth ceiling. Default: 4.
func (b ScannerBuilder) BlockBits(bits int) ScannerBuilder {
	b.opts.blockBits = bits
	return b
}

// MeasuredWidth sets the fixed measured prefix width. Keeping it constant
// across circuits keeps the bit-order calibration valid. Default: 10.
func (b ScannerBuilder) MeasuredWidth(width int) ScannerBuilder {
	b.opts.measuredWidth = width
	return b
}

// Shots sets the shot count per executed circuit. Default: 2000.
func (b ScannerBuilder) Shots(shots int) ScannerBuilder {
	b.opts.shots = shots
	return b
}

// Iterations sets the Grover iteration count per circuit. The caller
// chooses it; grover.RecommendedIterations is advisory. Default: 1.
func (b ScannerBuilder) Iterations(iters int) ScannerBuilder {
	b.opts.iterations = iters
	return b
}

// TopK sets how many of the most probable outcomes are kept per record
// result. Default: 16.
func (b ScannerBuilder) TopK(k int) ScannerBuilder {
	b.opts.topK = k
	return b
}

// Concurrency sets how many records execute in parallel. Hardware queues
// usually serialize anyway; simulators benefit. Default: 1.
func (b ScannerBuilder) Concurrency(n int) ScannerBuilder {
	b.opts.concurrency = n
	return b
}

// PollInterval sets the delay between job status polls. Default: 2s.
func (b ScannerBuilder) PollInterval(d time.Duration) ScannerBuilder {
	b.opts.pollInterval = d
	return b
}

// PollTimeout bounds one record's submit+poll cycle. Default: 15m.
func (b ScannerBuilder) PollTimeout(d time.Duration) ScannerBuilder {
	b.opts.pollTimeout = d
	return b
}

// Logger sets the structured logger for scan tracing.
func (b ScannerBuilder) Logger(l *Logger) ScannerBuilder {
	WithLogger(l)(&b.opts)
	return b
}

// Metrics sets the metrics collector.
func (b ScannerBuilder) Metrics(mc MetricsCollector) ScannerBuilder {
	WithMetricsCollector(mc)(&b.opts)
	return b
}

// Codec sets the codec used by Scanner.SaveResults and
// Scanner.LoadResults. Default: codec.Default.
func (b ScannerBuilder) Codec(c codec.Codec) ScannerBuilder {
	WithCodec(c)(&b.opts)
	return b
}

// RateLimiter rate-limits backend submissions and polls.
func (b ScannerBuilder) RateLimiter(l *rate.Limiter) ScannerBuilder {
	b.opts.limiter = l
	return b
}

// Clock injects a clock for deterministic polling in tests.
func (b ScannerBuilder) Clock(c backend.Clock) ScannerBuilder {
	WithClock(c)(&b.opts)
	return b
}

// BackendOptions passes execution toggles through to the backend.
// Default: backend.MinimalOptions.
func (b ScannerBuilder) BackendOptions(opts backend.Options) ScannerBuilder {
	b.opts.backendOptions = opts
	return b
}

// Build validates the configuration and creates the Scanner.
// Violated preconditions are reported as ErrConfiguration.
func (b ScannerBuilder) Build() (*Scanner, error) {
	if b.opts.blockBits < 1 {
		return nil, translateError(&block.ErrInvalidBlockBits{Bits: b.opts.blockBits})
	}
	if b.opts.blockBits > b.opts.measuredWidth {
		return nil, translateError(&circuit.ErrActiveWidth{
			ActiveBits:    b.opts.blockBits,
			MeasuredWidth: b.opts.measuredWidth,
		})
	}
	if b.opts.iterations < 0 {
		return nil, translateError(&grover.ErrInvalidIterations{Iterations: b.opts.iterations})
	}

	poller := backend.NewPoller(func(o *backend.PollerOptions) {
		o.Clock = b.opts.clock
		o.Interval = b.opts.pollInterval
		o.Timeout = b.opts.pollTimeout
		o.Limiter = b.opts.limiter
	})

	return &Scanner{
		backend: b.backend,
		poller:  poller,
		opts:    b.opts,
	}, nil
}

// MustBuild creates the Scanner, panicking on error.
func (b ScannerBuilder) MustBuild() *Scanner {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
