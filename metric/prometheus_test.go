package metric

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/astrocat"
)

// counterValue sums a gathered counter family, filtered by label pairs.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var sum float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}

func TestPrometheusCollectorRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	pc, err := NewPrometheusCollector(reg, "astrocat")
	require.NoError(t, err)

	r, err := astrocat.New(astrocat.WithMetricsCollector(pc))
	require.NoError(t, err)

	a, b := r.NewObject(nil), r.NewObject(nil)
	require.NoError(t, a.SetIndexAndAdd(5, true))
	require.NoError(t, b.SetIndexAndAdd(5, true))
	require.True(t, b.RemoveFromMainIndex())
	_, err = r.NewObject(nil).SetAutoIndex()
	require.NoError(t, err)

	assert.Equal(t, 2.0, counterValue(t, reg, "astrocat_registry_assigns_total", map[string]string{"result": "fresh"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "astrocat_registry_assigns_total", map[string]string{"result": "overwrite"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "astrocat_registry_evictions_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "astrocat_registry_releases_total", map[string]string{"result": "removed"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "astrocat_registry_auto_index_total", map[string]string{"status": "ok"}))
}

func TestPrometheusCollectorFiles(t *testing.T) {
	reg := prometheus.NewRegistry()
	pc, err := NewPrometheusCollector(reg, "astrocat")
	require.NoError(t, err)

	pc.ObserveFile("stars.yaml", 20*time.Millisecond, 12, nil)
	pc.ObserveFile("broken.yaml", time.Millisecond, 3, errors.New("bad"))
	pc.RecordCategoryChange(true, false)

	assert.Equal(t, 1.0, counterValue(t, reg, "astrocat_catalog_files_total", map[string]string{"status": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "astrocat_catalog_files_total", map[string]string{"status": "error"}))
	assert.Equal(t, 12.0, counterValue(t, reg, "astrocat_catalog_records_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "astrocat_registry_category_changes_total", map[string]string{"op": "add", "status": "error"}))
}

func TestPrometheusCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusCollector(reg, "astrocat")
	require.NoError(t, err)

	_, err = NewPrometheusCollector(reg, "astrocat")
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}
