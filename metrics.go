package astrocat

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting registry metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// see metric.PrometheusCollector.
type MetricsCollector interface {
	// RecordAssign is called after an identifier is mapped to an object.
	// fresh is false when an existing mapping was overwritten.
	RecordAssign(fresh bool)

	// RecordRelease is called after an identifier is released.
	// removed is false when nothing was stored.
	RecordRelease(removed bool)

	// RecordEviction is called when an object loses its identifier to another.
	RecordEviction()

	// RecordAutoIndex is called after each auto-index allocation.
	RecordAutoIndex(err error)

	// RecordCategoryChange is called after a membership is added or removed.
	// ok is the result reported by the category.
	RecordCategoryChange(added, ok bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAssign(bool)               {}
func (NoopMetricsCollector) RecordRelease(bool)              {}
func (NoopMetricsCollector) RecordEviction()                 {}
func (NoopMetricsCollector) RecordAutoIndex(error)           {}
func (NoopMetricsCollector) RecordCategoryChange(bool, bool) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	Assigns          atomic.Int64
	Overwrites       atomic.Int64
	Releases         atomic.Int64
	ReleaseMisses    atomic.Int64
	Evictions        atomic.Int64
	AutoIndexes      atomic.Int64
	AutoIndexErrors  atomic.Int64
	CategoryAdds     atomic.Int64
	CategoryRemovals atomic.Int64
	CategoryFailures atomic.Int64
}

// RecordAssign implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAssign(fresh bool) {
	b.Assigns.Add(1)
	if !fresh {
		b.Overwrites.Add(1)
	}
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(removed bool) {
	if removed {
		b.Releases.Add(1)
	} else {
		b.ReleaseMisses.Add(1)
	}
}

// RecordEviction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEviction() {
	b.Evictions.Add(1)
}

// RecordAutoIndex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAutoIndex(err error) {
	if err != nil {
		b.AutoIndexErrors.Add(1)
		return
	}
	b.AutoIndexes.Add(1)
}

// RecordCategoryChange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCategoryChange(added, ok bool) {
	if added {
		b.CategoryAdds.Add(1)
	} else {
		b.CategoryRemovals.Add(1)
	}
	if !ok {
		b.CategoryFailures.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		Assigns:          b.Assigns.Load(),
		Overwrites:       b.Overwrites.Load(),
		Releases:         b.Releases.Load(),
		ReleaseMisses:    b.ReleaseMisses.Load(),
		Evictions:        b.Evictions.Load(),
		AutoIndexes:      b.AutoIndexes.Load(),
		AutoIndexErrors:  b.AutoIndexErrors.Load(),
		CategoryAdds:     b.CategoryAdds.Load(),
		CategoryRemovals: b.CategoryRemovals.Load(),
		CategoryFailures: b.CategoryFailures.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Assigns          int64
	Overwrites       int64
	Releases         int64
	ReleaseMisses    int64
	Evictions        int64
	AutoIndexes      int64
	AutoIndexErrors  int64
	CategoryAdds     int64
	CategoryRemovals int64
	CategoryFailures int64
}
