package grovego

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordAssemble is called after each program assembly.
	// gates is the native gate count of the assembled program.
	RecordAssemble(gates int, duration time.Duration, err error)

	// RecordExecute is called after each backend execution.
	RecordExecute(shots int, duration time.Duration, err error)

	// RecordScan is called after each scan over a plan.
	RecordScan(records, failed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAssemble(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordExecute(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordScan(int, int, time.Duration)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging without external dependencies.
type BasicMetricsCollector struct {
	AssembleCount     atomic.Int64
	AssembleErrors    atomic.Int64
	AssembleGates     atomic.Int64
	ExecuteCount      atomic.Int64
	ExecuteErrors     atomic.Int64
	ExecuteTotalNanos atomic.Int64
	ScanCount         atomic.Int64
	ScanRecords       atomic.Int64
	ScanFailed        atomic.Int64
	ScanTotalNanos    atomic.Int64
}

// RecordAssemble implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAssemble(gates int, _ time.Duration, err error) {
	b.AssembleCount.Add(1)
	b.AssembleGates.Add(int64(gates))
	if err != nil {
		b.AssembleErrors.Add(1)
	}
}

// RecordExecute implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExecute(_ int, duration time.Duration, err error) {
	b.ExecuteCount.Add(1)
	b.ExecuteTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExecuteErrors.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(records, failed int, duration time.Duration) {
	b.ScanCount.Add(1)
	b.ScanRecords.Add(int64(records))
	b.ScanFailed.Add(int64(failed))
	b.ScanTotalNanos.Add(duration.Nanoseconds())
}
