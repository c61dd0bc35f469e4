package retry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records retry activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	retries   *prometheus.CounterVec
	exhausted prometheus.Counter
	delays    prometheus.Histogram
}

// NewMetrics creates the retry collectors and registers them with reg.
// A nil reg leaves the collectors unregistered, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pi",
			Subsystem: "retry",
			Name:      "attempts_total",
			Help:      "Retries scheduled, by error kind of the failed attempt.",
		}, []string{"kind"}),
		exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pi",
			Subsystem: "retry",
			Name:      "exhausted_total",
			Help:      "Operations that still failed after every permitted retry.",
		}),
		delays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pi",
			Subsystem: "retry",
			Name:      "delay_seconds",
			Help:      "Backoff delay waited before a retry.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	if reg != nil {
		reg.MustRegister(m.retries, m.exhausted, m.delays)
	}
	return m
}

func (m *Metrics) observeRetry(kind string, delay time.Duration) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(kind).Inc()
	m.delays.Observe(delay.Seconds())
}

func (m *Metrics) observeExhausted() {
	if m == nil {
		return
	}
	m.exhausted.Inc()
}
