package fimgo

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/fimgo/internal/explore"
	"github.com/hupe1980/fimgo/internal/scheduler"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    patterns prometheus.Counter
//	    mineTime prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordMine(d time.Duration, s *scheduler.Stats, err error) {
//	    p.mineTime.Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordLoad is called once the dataset is built.
	// transactions is the number of records read.
	RecordLoad(duration time.Duration, transactions int, err error)

	// RecordMine is called after the exploration. stats is never nil.
	RecordMine(duration time.Duration, stats *scheduler.Stats, err error)

	// RecordClose is called after the output collector is closed or aborted.
	RecordClose(duration time.Duration, patterns int64, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(time.Duration, int, error)                {}
func (NoopMetricsCollector) RecordMine(time.Duration, *scheduler.Stats, error) {}
func (NoopMetricsCollector) RecordClose(time.Duration, int64, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	Runs             atomic.Int64
	Failures         atomic.Int64
	Transactions     atomic.Int64
	Patterns         atomic.Int64
	Steps            atomic.Int64
	Steals           atomic.Int64
	LoadTotalNanos   atomic.Int64
	MineTotalNanos   atomic.Int64
	CloseTotalNanos  atomic.Int64
	RejectedByTopK   atomic.Int64
	RejectedByParent atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(duration time.Duration, transactions int, err error) {
	b.Runs.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.Failures.Add(1)
		return
	}
	b.Transactions.Add(int64(transactions))
}

// RecordMine implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMine(duration time.Duration, stats *scheduler.Stats, err error) {
	b.MineTotalNanos.Add(duration.Nanoseconds())
	b.Steps.Add(stats.Steps)
	b.Steals.Add(stats.Steals)
	b.RejectedByParent.Add(stats.Rejected(explore.KindFirstParent) + stats.CaughtWrongFirstParents)
	b.RejectedByTopK.Add(stats.Rejected(explore.KindTopK))
	if err != nil {
		b.Failures.Add(1)
	}
}

// RecordClose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClose(duration time.Duration, patterns int64, err error) {
	b.CloseTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.Failures.Add(1)
		return
	}
	b.Patterns.Add(patterns)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		Runs:          b.Runs.Load(),
		Failures:      b.Failures.Load(),
		Transactions:  b.Transactions.Load(),
		Patterns:      b.Patterns.Load(),
		Steps:         b.Steps.Load(),
		Steals:        b.Steals.Load(),
		MineAvgNanos:  b.avg(&b.MineTotalNanos),
		LoadAvgNanos:  b.avg(&b.LoadTotalNanos),
		CloseAvgNanos: b.avg(&b.CloseTotalNanos),
	}
}

func (b *BasicMetricsCollector) avg(total *atomic.Int64) int64 {
	runs := b.Runs.Load()
	if runs == 0 {
		return 0
	}
	return total.Load() / runs
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Runs          int64
	Failures      int64
	Transactions  int64
	Patterns      int64
	Steps         int64
	Steals        int64
	LoadAvgNanos  int64
	MineAvgNanos  int64
	CloseAvgNanos int64
}
