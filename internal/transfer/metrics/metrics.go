package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the transfer workflow.
type Metrics struct {
	Initiated     prometheus.Counter
	Settled       *prometheus.CounterVec
	UnitsMoved    prometheus.Counter
	RejectedCalls *prometheus.CounterVec
}

// New creates the transfer metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Initiated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transfers_initiated_total",
			Help: "Transfer requests created",
		}),
		Settled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transfers_settled_total",
			Help: "Transfer requests settled, by outcome",
		}, []string{"outcome"}),
		UnitsMoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_units_moved_total",
			Help: "Units moved between holders by committed accepts",
		}),
		RejectedCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transfer_rejected_calls_total",
			Help: "Transfer calls that failed, by operation and error code",
		}, []string{"operation", "code"}),
	}
}

func (m *Metrics) IncrementInitiated() {
	m.Initiated.Inc()
}

func (m *Metrics) IncrementSettled(outcome string) {
	m.Settled.WithLabelValues(outcome).Inc()
}

// IncrementAccepted counts a committed accept and the units it moved.
func (m *Metrics) IncrementAccepted(amount uint64) {
	m.Settled.WithLabelValues("accepted").Inc()
	m.UnitsMoved.Add(float64(amount))
}

func (m *Metrics) IncrementRejected(operation, code string) {
	m.RejectedCalls.WithLabelValues(operation, code).Inc()
}
