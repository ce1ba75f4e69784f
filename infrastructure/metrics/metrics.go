// Package metrics exposes Prometheus instrumentation for solver runs and
// the HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "almanac"

// Outcome labels for solve counters.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	projected     prometheus.Counter
	solves        *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
}

// New creates Metrics with process and Go runtime collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		projected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projected_values_total",
			Help:      "Values projected through a stage chain.",
		}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solver runs by part and outcome.",
		}, []string{"part", "outcome"}),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Solver run duration by part.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"part"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_cache_lookups_total",
			Help:      "API result cache lookups by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.projected,
		m.solves,
		m.solveDuration,
		m.cacheLookups,
	)
	return m
}

// AddProjected counts n projected values.
func (m *Metrics) AddProjected(n uint64) {
	m.projected.Add(float64(n))
}

// ObserveSolve records one solver run for part.
func (m *Metrics) ObserveSolve(part string, elapsed time.Duration, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.solves.WithLabelValues(part, outcome).Inc()
	m.solveDuration.WithLabelValues(part).Observe(elapsed.Seconds())
}

// CacheLookup records a result cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
