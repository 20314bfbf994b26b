package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrderMetrics tracks order commit outcomes.
type OrderMetrics struct {
	placed   prometheus.Counter
	failures *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Successfully committed orders.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_failures_total",
		Help: "Failed order commits by error code.",
	}, []string{"code"})
	reg.MustRegister(placed, failures)
	return &OrderMetrics{
		placed:   placed,
		failures: failures,
	}
}

// IncPlaced counts a committed order.
func (m *OrderMetrics) IncPlaced() {
	if m == nil || m.placed == nil {
		return
	}
	m.placed.Inc()
}

// IncFailure counts a failed commit under its error code.
func (m *OrderMetrics) IncFailure(code string) {
	if m == nil || m.failures == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.failures.WithLabelValues(code).Inc()
}
