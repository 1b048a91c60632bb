package meshdesc

import (
	"log/slog"

	"github.com/hupe1980/meshdesc/geom"
	"github.com/hupe1980/meshdesc/persistence"
)

type options struct {
	logger            *Logger
	metricsCollector  MetricsCollector
	assertions        bool
	epsilon           float32
	defaultAttributes bool
}

// Option configures a MeshDescription.
type Option func(*options)

// WithMetricsCollector sets a custom metrics collector.
// Use this to integrate with monitoring systems like Prometheus.
//
// Example with BasicMetricsCollector:
//
//	metrics := &meshdesc.BasicMetricsCollector{}
//	md := meshdesc.New(meshdesc.WithMetricsCollector(metrics))
//	// ... build the mesh ...
//	stats := metrics.GetStats()
//	fmt.Printf("Polygons: %d, degenerate: %d\n", stats.TriangulatedPolygons, stats.DegeneratePolygons)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := meshdesc.NewJSONLogger(slog.LevelInfo)
//	md := meshdesc.New(meshdesc.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithAssertions enables or disables precondition checks on topology
// mutations. Enabled by default. With assertions disabled, violating a
// precondition leaves the mesh in an unspecified state.
func WithAssertions(enabled bool) Option {
	return func(o *options) {
		o.assertions = enabled
	}
}

// WithTriangulationEpsilon sets the containment tolerance used by the ear
// test during polygon triangulation. Defaults to geom.SmallNumber.
func WithTriangulationEpsilon(eps float32) Option {
	return func(o *options) {
		o.epsilon = eps
	}
}

// WithoutDefaultAttributes skips registration of the vertex Position
// attribute in New.
func WithoutDefaultAttributes() Option {
	return func(o *options) {
		o.defaultAttributes = false
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector:  NoopMetricsCollector{},
		logger:            NoopLogger(),
		assertions:        true,
		epsilon:           geom.SmallNumber,
		defaultAttributes: true,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}

type saveOptions struct {
	version persistence.FormatVersion
}

// SaveOption configures Save.
type SaveOption func(*saveOptions)

// WithFormatVersion selects the archive layout written by Save.
// persistence.FormatVersionLegacyPolygons omits the triangle array; triangles
// are rebuilt from polygon perimeters on load.
func WithFormatVersion(v persistence.FormatVersion) SaveOption {
	return func(o *saveOptions) {
		o.version = v
	}
}

func applySaveOptions(optFns []SaveOption) saveOptions {
	o := saveOptions{
		version: persistence.CurrentFormatVersion,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
