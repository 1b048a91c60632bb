package meshdesc

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/meshdesc/core"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Calls happen synchronously on the goroutine mutating the mesh, so
// implementations should be cheap.
type MetricsCollector interface {
	// RecordCreate is called after an element of the given kind is created.
	RecordCreate(kind core.ElementKind)

	// RecordDelete is called after an element of the given kind is deleted.
	RecordDelete(kind core.ElementKind)

	// RecordTriangulate is called after a polygon is triangulated.
	// degenerate is true when at least one ear had to be forced.
	RecordTriangulate(vertices, triangles int, degenerate bool)

	// RecordCompact is called after Compact. removed is the number of
	// freed slots reclaimed across all element kinds.
	RecordCompact(duration time.Duration, removed int)

	// RecordSerialize is called after Save ("save") or Load ("load").
	RecordSerialize(op string, bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(core.ElementKind)                       {}
func (NoopMetricsCollector) RecordDelete(core.ElementKind)                       {}
func (NoopMetricsCollector) RecordTriangulate(int, int, bool)                    {}
func (NoopMetricsCollector) RecordCompact(time.Duration, int)                    {}
func (NoopMetricsCollector) RecordSerialize(string, int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Created              [core.NumElementKinds]atomic.Int64
	Deleted              [core.NumElementKinds]atomic.Int64
	TriangulatedPolygons atomic.Int64
	Triangles            atomic.Int64
	DegeneratePolygons   atomic.Int64
	CompactCount         atomic.Int64
	CompactRemoved       atomic.Int64
	CompactTotalNanos    atomic.Int64
	SaveCount            atomic.Int64
	SaveBytes            atomic.Int64
	LoadCount            atomic.Int64
	LoadBytes            atomic.Int64
	SerializeErrors      atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(kind core.ElementKind) {
	if int(kind) < core.NumElementKinds {
		b.Created[kind].Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(kind core.ElementKind) {
	if int(kind) < core.NumElementKinds {
		b.Deleted[kind].Add(1)
	}
}

// RecordTriangulate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTriangulate(vertices, triangles int, degenerate bool) {
	b.TriangulatedPolygons.Add(1)
	b.Triangles.Add(int64(triangles))
	if degenerate {
		b.DegeneratePolygons.Add(1)
	}
}

// RecordCompact implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompact(duration time.Duration, removed int) {
	b.CompactCount.Add(1)
	b.CompactRemoved.Add(int64(removed))
	b.CompactTotalNanos.Add(duration.Nanoseconds())
}

// RecordSerialize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSerialize(op string, bytes int64, duration time.Duration, err error) {
	if err != nil {
		b.SerializeErrors.Add(1)
	}
	switch op {
	case "save":
		b.SaveCount.Add(1)
		b.SaveBytes.Add(bytes)
	case "load":
		b.LoadCount.Add(1)
		b.LoadBytes.Add(bytes)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		TriangulatedPolygons: b.TriangulatedPolygons.Load(),
		Triangles:            b.Triangles.Load(),
		DegeneratePolygons:   b.DegeneratePolygons.Load(),
		CompactCount:         b.CompactCount.Load(),
		CompactRemoved:       b.CompactRemoved.Load(),
		CompactAvgNanos:      b.getAvgCompactNanos(),
		SaveCount:            b.SaveCount.Load(),
		SaveBytes:            b.SaveBytes.Load(),
		LoadCount:            b.LoadCount.Load(),
		LoadBytes:            b.LoadBytes.Load(),
		SerializeErrors:      b.SerializeErrors.Load(),
	}
	for i := range core.NumElementKinds {
		s.Created[i] = b.Created[i].Load()
		s.Deleted[i] = b.Deleted[i].Load()
	}
	return s
}

func (b *BasicMetricsCollector) getAvgCompactNanos() int64 {
	count := b.CompactCount.Load()
	if count == 0 {
		return 0
	}
	return b.CompactTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
// Created and Deleted are indexed by core.ElementKind.
type BasicMetricsStats struct {
	Created              [core.NumElementKinds]int64
	Deleted              [core.NumElementKinds]int64
	TriangulatedPolygons int64
	Triangles            int64
	DegeneratePolygons   int64
	CompactCount         int64
	CompactRemoved       int64
	CompactAvgNanos      int64
	SaveCount            int64
	SaveBytes            int64
	LoadCount            int64
	LoadBytes            int64
	SerializeErrors      int64
}
