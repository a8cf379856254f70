package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the membership registry.
type Metrics struct {
	RoleRequests            *prometheus.CounterVec
	StatusChanges           *prometheus.CounterVec
	RejectedCalls           *prometheus.CounterVec
	RequireApprovedDuration prometheus.Histogram
}

// New creates the registry metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RoleRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_member_role_requests_total",
			Help: "Membership requests accepted, by requested role",
		}, []string{"role"}),
		StatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_member_status_changes_total",
			Help: "Admin status changes, by new status",
		}, []string{"status"}),
		RejectedCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_member_rejected_calls_total",
			Help: "Registry calls that failed, by operation and error code",
		}, []string{"operation", "code"}),
		RequireApprovedDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_member_require_approved_duration_seconds",
			Help:    "Duration of approval checks made on behalf of the ledger and transfer workflow",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

func (m *Metrics) IncrementRoleRequested(role string) {
	m.RoleRequests.WithLabelValues(role).Inc()
}

func (m *Metrics) IncrementStatusChanged(status string) {
	m.StatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementRejected(operation, code string) {
	m.RejectedCalls.WithLabelValues(operation, code).Inc()
}

// ObserveRequireApproved records the duration of an approval check.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRequireApproved(start time.Time) {
	m.RequireApprovedDuration.Observe(time.Since(start).Seconds())
}
