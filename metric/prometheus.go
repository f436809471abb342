// Package metric exports registry and catalog-loading metrics to Prometheus.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/astrocat"
)

var _ astrocat.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector implements astrocat.MetricsCollector and records
// catalog file loads.
type PrometheusCollector struct {
	assigns    *prometheus.CounterVec
	releases   *prometheus.CounterVec
	evictions  prometheus.Counter
	autoIndex  *prometheus.CounterVec
	categories *prometheus.CounterVec
	files      *prometheus.CounterVec
	records    prometheus.Counter
	loadTime   prometheus.Histogram
}

// NewPrometheusCollector creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		assigns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_assigns_total",
			Help:      "Identifier assignments, by whether the slot was free.",
		}, []string{"result"}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_releases_total",
			Help:      "Identifier releases, by whether a mapping existed.",
		}, []string{"result"}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_evictions_total",
			Help:      "Objects displaced by a newer object with the same identifier.",
		}),
		autoIndex: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_auto_index_total",
			Help:      "Auto identifier requests.",
		}, []string{"status"}),
		categories: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_category_changes_total",
			Help:      "Category membership changes.",
		}, []string{"op", "status"}),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_files_total",
			Help:      "Catalog files loaded.",
		}, []string{"status"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_records_total",
			Help:      "Catalog records applied.",
		}),
		loadTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_file_load_seconds",
			Help:      "Time to fetch and decode one catalog file.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, col := range []prometheus.Collector{
		c.assigns, c.releases, c.evictions, c.autoIndex,
		c.categories, c.files, c.records, c.loadTime,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordAssign implements astrocat.MetricsCollector.
func (c *PrometheusCollector) RecordAssign(fresh bool) {
	c.assigns.WithLabelValues(pick(fresh, "fresh", "overwrite")).Inc()
}

// RecordRelease implements astrocat.MetricsCollector.
func (c *PrometheusCollector) RecordRelease(removed bool) {
	c.releases.WithLabelValues(pick(removed, "removed", "miss")).Inc()
}

// RecordEviction implements astrocat.MetricsCollector.
func (c *PrometheusCollector) RecordEviction() {
	c.evictions.Inc()
}

// RecordAutoIndex implements astrocat.MetricsCollector.
func (c *PrometheusCollector) RecordAutoIndex(err error) {
	c.autoIndex.WithLabelValues(status(err == nil)).Inc()
}

// RecordCategoryChange implements astrocat.MetricsCollector.
func (c *PrometheusCollector) RecordCategoryChange(added, ok bool) {
	c.categories.WithLabelValues(pick(added, "add", "remove"), status(ok)).Inc()
}

// ObserveFile records one catalog file: how long fetch and decode took, how
// many records it held, and whether it failed.
func (c *PrometheusCollector) ObserveFile(name string, d time.Duration, records int, err error) {
	c.files.WithLabelValues(status(err == nil)).Inc()
	c.loadTime.Observe(d.Seconds())
	if err == nil {
		c.records.Add(float64(records))
	}
}

func status(ok bool) string {
	return pick(ok, "ok", "error")
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
