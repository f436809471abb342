package catalog

import (
	"time"

	"github.com/hupe1980/astrocat"
)

// FileObserver is told about every catalog file the loader processes.
// metric.PrometheusCollector implements it.
type FileObserver interface {
	ObserveFile(name string, d time.Duration, records int, err error)
}

type options struct {
	domain       string
	concurrency  int
	ioLimit      int64
	memoryLimit  int64
	logger       *astrocat.Logger
	fileObserver FileObserver
}

func defaultOptions() options {
	return options{
		concurrency: 4,
		logger:      astrocat.NoopLogger(),
	}
}

// Option configures a Loader.
type Option func(*options)

// WithDomain sets the description given to categories created while loading.
func WithDomain(domain string) Option {
	return func(o *options) {
		o.domain = domain
	}
}

// WithConcurrency sets how many files are fetched and decoded at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithIOLimit caps the bytes per second read from the store. Zero means
// unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithMemoryLimit caps the bytes of fetched file data being decoded at once.
// Zero means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *astrocat.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = astrocat.NoopLogger()
		}
		o.logger = l
	}
}

// WithFileObserver reports per-file timings and outcomes to fo.
func WithFileObserver(fo FileObserver) Option {
	return func(o *options) {
		o.fileObserver = fo
	}
}
