// Package metrics exposes Prometheus counters for the note write path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aretw0/notebook/pkg/core"
)

const Namespace = "notebook"

// Metrics groups the write path counters registered on one registry.
type Metrics struct {
	NotesCreated  prometheus.Counter
	NotesRejected prometheus.Counter
	StoreFailures prometheus.Counter
}

// New registers the counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		NotesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "notes_created_total",
			Help:      "Notes successfully created",
		}),
		NotesRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "notes_rejected_total",
			Help:      "Submissions rejected by validation",
		}),
		StoreFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "store_failures_total",
			Help:      "Write attempts that failed in the store",
		}),
	}
}

// Observe implements core.Observer.
func (m *Metrics) Observe(outcome core.Outcome) {
	switch outcome {
	case core.OutcomeCreated:
		m.NotesCreated.Inc()
	case core.OutcomeRejected:
		m.NotesRejected.Inc()
	case core.OutcomeFailed:
		m.StoreFailures.Inc()
	}
}

var _ core.Observer = (*Metrics)(nil)
