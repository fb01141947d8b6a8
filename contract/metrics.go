package contract

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// poolMetrics is nil when no registry was configured, every method tolerates that.
type poolMetrics struct {
	calls          *prometheus.CounterVec
	votes          *prometheus.CounterVec
	pollsFinalized *prometheus.CounterVec
	deposits       prometheus.Counter
	withdrawals    prometheus.Counter
}

func newPoolMetrics(reg prometheus.Registerer) *poolMetrics {
	if reg == nil {
		return nil
	}
	f := promauto.With(reg)
	return &poolMetrics{
		calls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rewardpool_calls_total",
			Help: "mutating calls by operation and result",
		}, []string{"op", "result"}),
		votes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rewardpool_votes_total",
			Help: "recorded votes by path (direct or relayed)",
		}, []string{"path"}),
		pollsFinalized: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rewardpool_polls_finalized_total",
			Help: "finalized polls by kind and outcome",
		}, []string{"kind", "outcome"}),
		deposits: f.NewCounter(prometheus.CounterOpts{
			Name: "rewardpool_deposits_total",
			Help: "successful treasury deposits",
		}),
		withdrawals: f.NewCounter(prometheus.CounterOpts{
			Name: "rewardpool_withdrawals_total",
			Help: "paid out rewards",
		}),
	}
}

func (m *poolMetrics) callDone(op string, err error) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(op, resultLabel(err)).Inc()
}

func (m *poolMetrics) voted(relayed bool) {
	if m == nil {
		return
	}
	path := "direct"
	if relayed {
		path = "relayed"
	}
	m.votes.WithLabelValues(path).Inc()
}

func (m *poolMetrics) finalized(p *Poll) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if p.Accepted {
		outcome = "accepted"
	}
	m.pollsFinalized.WithLabelValues(p.Kind.String(), outcome).Inc()
}

func (m *poolMetrics) deposited() {
	if m == nil {
		return
	}
	m.deposits.Inc()
}

func (m *poolMetrics) withdrew() {
	if m == nil {
		return
	}
	m.withdrawals.Inc()
}

// resultLabel maps an error to its kind so label cardinality stays fixed.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrPolicyViolation):
		return "policy"
	case errors.Is(err, ErrStateViolation):
		return "state"
	case errors.Is(err, ErrResourceViolation):
		return "resource"
	case errors.Is(err, ErrAuthenticityViolation):
		return "authenticity"
	default:
		return "error"
	}
}
