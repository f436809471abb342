package astrocat

import (
	"github.com/hupe1980/astrocat/core"
)

// DefaultLevels is the trie layout of a registry: four 8-bit levels over the
// 32-bit identifier, most significant byte first.
var DefaultLevels = []uint{8, 8, 8, 8}

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	categories       CategoryRegistry
	autoFloor        core.ID
	levels           []uint
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		autoFloor:        core.DefaultAutoFloor,
		levels:           DefaultLevels,
	}
}

// Option configures a Registry.
type Option func(*options)

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed, metrics
// are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCategories sets the category registry used by name-based category
// operations and record loading.
func WithCategories(cr CategoryRegistry) Option {
	return func(o *options) {
		o.categories = cr
	}
}

// WithAutoIndexFloor sets the lowest identifier the auto counter may issue.
// Identifiers in [floor, core.MaxAutoID] are reserved for auto assignment
// until the counter has issued them.
func WithAutoIndexFloor(floor core.ID) Option {
	return func(o *options) {
		o.autoFloor = floor
	}
}

// WithLevels overrides the trie layout. Widths are given most-significant
// first and must add up to 32.
func WithLevels(levels ...uint) Option {
	return func(o *options) {
		o.levels = levels
	}
}
