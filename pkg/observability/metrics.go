// Package observability exports the API server's Prometheus metrics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for key API server operations. Each Metrics
// owns its registry so servers in tests do not collide.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	records  *prometheus.GaugeVec
}

// NewMetrics returns Metrics registered on a fresh registry, including the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bite_requests_total",
			Help: "Total number of API requests.",
		}, []string{"method", "code"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bite_errors_total",
			Help: "Total number of API responses with a 5xx status.",
		}, []string{"method"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bite_request_duration_seconds",
			Help:    "API request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bite_records",
			Help: "Current number of stored records by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(
		m.requests, m.errors, m.latency, m.records,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	if status >= 500 {
		m.errors.WithLabelValues(method).Inc()
	}
	m.latency.WithLabelValues(method).Observe(d.Seconds())
}

// RecordCreated and RecordDeleted track the number of stored records.
func (m *Metrics) RecordCreated(kind string) { m.records.WithLabelValues(kind).Inc() }
func (m *Metrics) RecordDeleted(kind string) { m.records.WithLabelValues(kind).Dec() }

// SetRecords sets the stored record count for kind, e.g. after start-up.
func (m *Metrics) SetRecords(kind string, n int) { m.records.WithLabelValues(kind).Set(float64(n)) }

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
