package optigo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    addCounter     prometheus.Counter
//	    solveHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordAdd(err error) {
//	    p.addCounter.Inc()
//	    // ... record error state, etc.
//	}
type MetricsCollector interface {
	// RecordAdd is called after each variable or constraint addition.
	// err is nil if successful.
	RecordAdd(err error)

	// RecordModify is called after each constraint or objective modification.
	RecordModify(err error)

	// RecordDelete is called after each delete operation.
	RecordDelete(err error)

	// RecordSet is called after each attribute write.
	RecordSet(err error)

	// RecordSolve is called after each solve delegation.
	// duration is the wall-clock time of the solver call.
	RecordSolve(duration time.Duration, err error)

	// RecordFallback is called each time a solver rejection triggers an
	// automatic detach.
	RecordFallback(op string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(error)                  {}
func (NoopMetricsCollector) RecordModify(error)               {}
func (NoopMetricsCollector) RecordDelete(error)               {}
func (NoopMetricsCollector) RecordSet(error)                  {}
func (NoopMetricsCollector) RecordSolve(time.Duration, error) {}
func (NoopMetricsCollector) RecordFallback(string)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount        atomic.Int64
	AddErrors       atomic.Int64
	ModifyCount     atomic.Int64
	ModifyErrors    atomic.Int64
	DeleteCount     atomic.Int64
	DeleteErrors    atomic.Int64
	SetCount        atomic.Int64
	SetErrors       atomic.Int64
	SolveCount      atomic.Int64
	SolveErrors     atomic.Int64
	SolveTotalNanos atomic.Int64
	FallbackCount   atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(err error) {
	b.AddCount.Add(1)
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordModify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordModify(err error) {
	b.ModifyCount.Add(1)
	if err != nil {
		b.ModifyErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// RecordSet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSet(err error) {
	b.SetCount.Add(1)
	if err != nil {
		b.SetErrors.Add(1)
	}
}

// RecordSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSolve(duration time.Duration, err error) {
	b.SolveCount.Add(1)
	b.SolveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SolveErrors.Add(1)
	}
}

// RecordFallback implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFallback(op string) {
	b.FallbackCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:      b.AddCount.Load(),
		AddErrors:     b.AddErrors.Load(),
		ModifyCount:   b.ModifyCount.Load(),
		ModifyErrors:  b.ModifyErrors.Load(),
		DeleteCount:   b.DeleteCount.Load(),
		DeleteErrors:  b.DeleteErrors.Load(),
		SetCount:      b.SetCount.Load(),
		SetErrors:     b.SetErrors.Load(),
		SolveCount:    b.SolveCount.Load(),
		SolveErrors:   b.SolveErrors.Load(),
		SolveAvgNanos: b.getAvgSolveNanos(),
		FallbackCount: b.FallbackCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSolveNanos() int64 {
	count := b.SolveCount.Load()
	if count == 0 {
		return 0
	}
	return b.SolveTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount      int64
	AddErrors     int64
	ModifyCount   int64
	ModifyErrors  int64
	DeleteCount   int64
	DeleteErrors  int64
	SetCount      int64
	SetErrors     int64
	SolveCount    int64
	SolveErrors   int64
	SolveAvgNanos int64
	FallbackCount int64
}
