package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the asset ledger.
type Metrics struct {
	TokenClassesMinted *prometheus.CounterVec
	UnitsMinted        prometheus.Counter
	RejectedCalls      *prometheus.CounterVec
	IndexDrift         prometheus.Counter
}

// New creates the ledger metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TokenClassesMinted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_token_classes_minted_total",
			Help: "Token classes minted, by kind",
		}, []string{"kind"}),
		UnitsMinted: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_units_minted_total",
			Help: "Total supply created across all minted token classes",
		}),
		RejectedCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_rejected_calls_total",
			Help: "Ledger calls that failed, by operation and error code",
		}, []string{"operation", "code"}),
		IndexDrift: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_owned_index_drift_total",
			Help: "Owned-assets index entries corrected by a rebuild",
		}),
	}
}

func (m *Metrics) IncrementMinted(kind string, supply uint64) {
	m.TokenClassesMinted.WithLabelValues(kind).Inc()
	m.UnitsMinted.Add(float64(supply))
}

func (m *Metrics) IncrementRejected(operation, code string) {
	m.RejectedCalls.WithLabelValues(operation, code).Inc()
}

func (m *Metrics) AddIndexDrift(entries int) {
	m.IndexDrift.Add(float64(entries))
}
