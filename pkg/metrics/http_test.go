package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, families []*dto.MetricFamily, name string) *dto.MetricFamily {
	t.Helper()
	for _, fam := range families {
		if fam.GetName() == name {
			return fam
		}
	}
	t.Fatalf("metric family %s not gathered", name)
	return nil
}

func TestObserveRecordsCountAndDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("POST", "/api/order", 201, 120*time.Millisecond)
	m.Observe("POST", "/api/order", 201, 80*time.Millisecond)
	m.Observe("GET", "/api/order/{id}", 404, 5*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	requests := findFamily(t, families, "http_requests_total")
	total := 0.0
	for _, metric := range requests.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	assert.Equal(t, 3.0, total)

	duration := findFamily(t, families, "http_request_duration_seconds")
	for _, metric := range duration.GetMetric() {
		assert.Positive(t, metric.GetHistogram().GetSampleCount())
	}
}

func TestObserveNormalizesEmptyRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "", 404, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	requests := findFamily(t, families, "http_requests_total")
	require.Len(t, requests.GetMetric(), 1)
	labels := requests.GetMetric()[0].GetLabel()
	found := false
	for _, label := range labels {
		if label.GetName() == "route" {
			assert.Equal(t, "unmatched", label.GetValue())
			found = true
		}
	}
	assert.True(t, found)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "/", 200, time.Millisecond)
}
