package distmat

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/distmat/centroid"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each matrix build.
	// pairs is the number of pairwise evaluations attempted, duration is the
	// total time taken, err is nil if successful.
	RecordBuild(pairs int, duration time.Duration, err error)

	// RecordEmbeddingWarning is called when a centroid computation produced
	// non-Euclidean entries. negatives is the number of affected entries.
	RecordEmbeddingWarning(negatives int)
}

// WarningHandler adapts a MetricsCollector to the centroid package's warning
// side channel:
//
//	centroid.ToCentroids(m, groups, centroid.WithWarningHandler(distmat.WarningHandler(mc)))
func WarningHandler(mc MetricsCollector) func(centroid.EmbeddingWarning) {
	return func(w centroid.EmbeddingWarning) {
		mc.RecordEmbeddingWarning(w.Negatives)
	}
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordEmbeddingWarning(int)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount        atomic.Int64
	BuildErrors       atomic.Int64
	BuildPairs        atomic.Int64
	BuildTotalNanos   atomic.Int64
	EmbeddingWarnings atomic.Int64
	NegativeEntries   atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(pairs int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildPairs.Add(int64(pairs))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordEmbeddingWarning implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEmbeddingWarning(negatives int) {
	b.EmbeddingWarnings.Add(1)
	b.NegativeEntries.Add(int64(negatives))
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector counters.
type BasicMetricsStats struct {
	BuildCount        int64
	BuildErrors       int64
	BuildPairs        int64
	BuildAvgNanos     int64
	EmbeddingWarnings int64
	NegativeEntries   int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		BuildCount:        b.BuildCount.Load(),
		BuildErrors:       b.BuildErrors.Load(),
		BuildPairs:        b.BuildPairs.Load(),
		EmbeddingWarnings: b.EmbeddingWarnings.Load(),
		NegativeEntries:   b.NegativeEntries.Load(),
	}
	if stats.BuildCount > 0 {
		stats.BuildAvgNanos = b.BuildTotalNanos.Load() / stats.BuildCount
	}
	return stats
}
