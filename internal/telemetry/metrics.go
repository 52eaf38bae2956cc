// Package telemetry exposes prometheus metrics for the documentation server.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeDenied  = "denied"
	OutcomeError   = "error"
)

// Mutation operation label values.
const (
	OpAdd    = "add"
	OpRemove = "remove"
)

// Metrics holds the server's prometheus collectors.
type Metrics struct {
	fetches   *prometheus.CounterVec
	mutations *prometheus.CounterVec
	sources   prometheus.Gauge
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mcpdoc_fetches_total",
			Help: "Documentation fetch invocations by source and outcome.",
		}, []string{"source", "outcome"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mcpdoc_registry_mutations_total",
			Help: "Doc source registry mutations by operation.",
		}, []string{"op"}),
		sources: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mcpdoc_doc_sources",
			Help: "Number of currently registered doc sources.",
		}),
	}
	reg.MustRegister(m.fetches, m.mutations, m.sources)
	return m
}

// ObserveFetch records a fetch invocation for source with the given outcome.
func (m *Metrics) ObserveFetch(source, outcome string) {
	m.fetches.WithLabelValues(source, outcome).Inc()
}

// ObserveMutation records a registry mutation.
func (m *Metrics) ObserveMutation(op string) {
	m.mutations.WithLabelValues(op).Inc()
}

// SetSourceCount records the current number of registered sources.
func (m *Metrics) SetSourceCount(n int) {
	m.sources.Set(float64(n))
}
