package grovego

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/grovego/backend"
	"github.com/hupe1980/grovego/codec"
)

type options struct {
	codec          codec.Codec
	logger         *Logger
	metrics        MetricsCollector
	blockBits      int
	measuredWidth  int
	shots          int
	iterations     int
	topK           int
	concurrency    int
	pollInterval   time.Duration
	pollTimeout    time.Duration
	limiter        *rate.Limiter
	clock          backend.Clock
	backendOptions backend.Options
}

func defaultOptions() options {
	return options{
		codec:          codec.Default,
		logger:         NoopLogger(),
		metrics:        NoopMetricsCollector{},
		blockBits:      4,
		measuredWidth:  10,
		shots:          2000,
		iterations:     1,
		topK:           16,
		concurrency:    1,
		pollInterval:   2 * time.Second,
		pollTimeout:    15 * time.Minute,
		clock:          backend.SystemClock(),
		backendOptions: backend.MinimalOptions(),
	}
}

// Option configures Scanner construction.
type Option func(*options)

// WithCodec configures the codec used by Scanner.SaveResults and
// Scanner.LoadResults. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger sets the structured logger for scan tracing.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithRateLimiter rate-limits submissions and status polls against the
// backend. Nil disables limiting.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}

// WithClock injects a clock for deterministic polling in tests.
func WithClock(c backend.Clock) Option {
	return func(o *options) {
		if c == nil {
			c = backend.SystemClock()
		}
		o.clock = c
	}
}

// WithBackendOptions passes execution toggles through to the backend.
func WithBackendOptions(opts backend.Options) Option {
	return func(o *options) {
		o.backendOptions = opts
	}
}
