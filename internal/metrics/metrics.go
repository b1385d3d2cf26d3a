// Package metrics exposes Prometheus collectors for the event store.
// There is no HTTP listener; snapshots are written in the node exporter
// textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Mutation outcomes
const (
	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
)

// Metrics holds the store collectors on a private registry
type Metrics struct {
	Registry *prometheus.Registry

	mutations       *prometheus.CounterVec
	persistFailures prometheus.Counter
	persistDur      prometheus.Summary
	events          *prometheus.GaugeVec
}

// New builds and registers the collectors
func New() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}
	m.mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geo_events",
		Subsystem: "store",
		Name:      "mutations_total",
		Help:      "Store mutations by operation and outcome",
	}, []string{"op", "outcome"})
	m.persistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "geo_events",
		Subsystem: "store",
		Name:      "persist_failures_total",
		Help:      "Failed persistence writes",
	})
	m.persistDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "geo_events",
		Subsystem: "store",
		Name:      "persist_duration_seconds",
		Help:      "Time spent writing the full collection",
	})
	m.events = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "geo_events",
		Subsystem: "store",
		Name:      "events",
		Help:      "Number of events per geo",
	}, []string{"geo"})

	m.Registry.MustRegister(m.mutations, m.persistFailures, m.persistDur, m.events)
	return m
}

// ObserveMutation counts one store mutation
func (m *Metrics) ObserveMutation(op string, applied bool) {
	if m == nil {
		return
	}
	outcome := OutcomeNoop
	if applied {
		outcome = OutcomeApplied
	}
	m.mutations.WithLabelValues(op, outcome).Inc()
}

// ObservePersist records one persistence write
func (m *Metrics) ObservePersist(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.persistDur.Observe(d.Seconds())
	if err != nil {
		m.persistFailures.Inc()
	}
}

// SetEventCount sets the event gauge for a geo
func (m *Metrics) SetEventCount(geoID string, n int) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(geoID).Set(float64(n))
}

// WriteTextfile writes the current snapshot to path
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
