package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/monitorthing/internal/sysmon"
)

const namespace = "monitorthing"

// Metrics holds the exporter's collectors. Each instance owns its registry,
// so several instances can coexist in one process (tests).
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	cpuUsage       prometheus.Gauge
	memUsed        prometheus.Gauge
	samples        prometheus.Counter
	sampleErrors   *prometheus.CounterVec
	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter
}

// NewMetrics creates a Metrics with its collectors registered.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cpuUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_usage_percent",
			Help:      "System-wide CPU usage since the previous sample.",
		}),
		memUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_used_gigabytes",
			Help:      "Used memory (total minus available) in GB.",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Number of successful samples observed.",
		}),
		sampleErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sample_errors_total",
			Help:      "Number of failed counter reads, by reading kind.",
		}, []string{"kind"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "Number of scrape requests in flight.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served.",
		}),
	}

	m.registry.MustRegister(
		m.cpuUsage,
		m.memUsed,
		m.samples,
		m.sampleErrors,
		m.activeRequests,
		m.requestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	// Pre-create the label values so they are exported at zero.
	m.sampleErrors.WithLabelValues("cpu")
	m.sampleErrors.WithLabelValues("memory")

	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Observe records a successful sample.
func (m *Metrics) Observe(s sysmon.Stats) {
	m.cpuUsage.Set(s.CPUPercent)
	m.memUsed.Set(s.MemUsedGB)
	m.samples.Inc()
}

// ObserveError counts a failed read of the given kind ("cpu" or "memory").
func (m *Metrics) ObserveError(kind string) {
	m.sampleErrors.WithLabelValues(kind).Inc()
}

// IncrementActiveRequests increments the in-flight request gauge and the
// request counter.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests decrements the in-flight request gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// WritePrometheus serves the registry in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
