package idxgo

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
//	    readCounter   prometheus.Counter
//	    readHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordRead(section string, bytes int, duration time.Duration, err error) {
//	    p.readCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordOpen is called after the lazy open and layout resolution.
	// duration is the total time taken, err is nil if successful.
	RecordOpen(duration time.Duration, err error)

	// RecordRead is called after each section read. section is one of
	// "version", "footer", "node", "rowid_partition", "rowid_part" or
	// "rowid_list". bytes is the number of source bytes read, zero on
	// failure.
	RecordRead(section string, bytes int, duration time.Duration, err error)

	// RecordPrefetch is called after each prefetch pass. parts is the
	// number of partitions requested, failed is the number that failed.
	RecordPrefetch(parts, failed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(time.Duration, error)              {}
func (NoopMetricsCollector) RecordRead(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPrefetch(int, int, time.Duration)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OpenCount      atomic.Int64
	OpenErrors     atomic.Int64
	ReadCount      atomic.Int64
	ReadErrors     atomic.Int64
	ReadBytes      atomic.Int64
	ReadTotalNanos atomic.Int64
	PrefetchCount  atomic.Int64
	PrefetchParts  atomic.Int64
	PrefetchFailed atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(duration time.Duration, err error) {
	b.OpenCount.Add(1)
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(section string, bytes int, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadBytes.Add(int64(bytes))
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
	}
}

// RecordPrefetch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrefetch(parts, failed int, duration time.Duration) {
	b.PrefetchCount.Add(1)
	b.PrefetchParts.Add(int64(parts))
	b.PrefetchFailed.Add(int64(failed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OpenCount:      b.OpenCount.Load(),
		OpenErrors:     b.OpenErrors.Load(),
		ReadCount:      b.ReadCount.Load(),
		ReadErrors:     b.ReadErrors.Load(),
		ReadBytes:      b.ReadBytes.Load(),
		ReadAvgNanos:   b.getAvgReadNanos(),
		PrefetchCount:  b.PrefetchCount.Load(),
		PrefetchParts:  b.PrefetchParts.Load(),
		PrefetchFailed: b.PrefetchFailed.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgReadNanos() int64 {
	count := b.ReadCount.Load()
	if count == 0 {
		return 0
	}
	return b.ReadTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OpenCount      int64
	OpenErrors     int64
	ReadCount      int64
	ReadErrors     int64
	ReadBytes      int64
	ReadAvgNanos   int64
	PrefetchCount  int64
	PrefetchParts  int64
	PrefetchFailed int64
}
