package event

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports bus activity to Prometheus. A nil *Metrics records nothing.
type Metrics struct {
	posted          *prometheus.CounterVec
	delivered       *prometheus.CounterVec
	failures        *prometheus.CounterVec
	handlerDuration *prometheus.HistogramVec
	subscribers     prometheus.Gauge
}

// NewMetrics creates the bus collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		posted: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "walletview",
				Subsystem: "event_bus",
				Name:      "events_posted_total",
				Help:      "Total number of events posted to the bus",
			},
			[]string{"kind"},
		),
		delivered: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "walletview",
				Subsystem: "event_bus",
				Name:      "events_delivered_total",
				Help:      "Total number of successful handler invocations",
			},
			[]string{"kind"},
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "walletview",
				Subsystem: "event_bus",
				Name:      "handler_failures_total",
				Help:      "Handler invocations that returned an error or panicked",
			},
			[]string{"kind", "reason"},
		),
		handlerDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "walletview",
				Subsystem: "event_bus",
				Name:      "handler_duration_seconds",
				Help:      "Handler execution time in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"kind"},
		),
		subscribers: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "walletview",
				Subsystem: "event_bus",
				Name:      "subscribers",
				Help:      "Number of registered subscribers",
			},
		),
	}
}

func (m *Metrics) observePost(kind Kind) {
	if m == nil {
		return
	}
	m.posted.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) observeResult(kind Kind, res result) {
	if m == nil {
		return
	}
	m.handlerDuration.WithLabelValues(string(kind)).Observe(res.duration.Seconds())
	switch {
	case res.panicked:
		m.failures.WithLabelValues(string(kind), "panic").Inc()
	case res.err != nil:
		m.failures.WithLabelValues(string(kind), "error").Inc()
	default:
		m.delivered.WithLabelValues(string(kind)).Inc()
	}
}

func (m *Metrics) setSubscribers(n int) {
	if m == nil {
		return
	}
	m.subscribers.Set(float64(n))
}
