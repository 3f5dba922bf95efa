package uiloop

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type loopMetrics struct {
	posted   prometheus.Counter
	executed prometheus.Counter
	panics   prometheus.Counter
}

func newLoopMetrics(reg prometheus.Registerer, l *Loop) *loopMetrics {
	f := promauto.With(reg)
	f.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "walletview",
			Subsystem: "ui_loop",
			Name:      "queue_depth",
			Help:      "Number of tasks waiting to run on the UI loop",
		},
		func() float64 { return float64(len(l.queue)) },
	)
	return &loopMetrics{
		posted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "walletview",
			Subsystem: "ui_loop",
			Name:      "tasks_posted_total",
			Help:      "Total number of tasks accepted by the UI loop",
		}),
		executed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "walletview",
			Subsystem: "ui_loop",
			Name:      "tasks_executed_total",
			Help:      "Total number of tasks run on the UI loop",
		}),
		panics: f.NewCounter(prometheus.CounterOpts{
			Namespace: "walletview",
			Subsystem: "ui_loop",
			Name:      "task_panics_total",
			Help:      "Tasks that panicked on the UI loop",
		}),
	}
}

func (m *loopMetrics) onPost() {
	if m != nil {
		m.posted.Inc()
	}
}

func (m *loopMetrics) onExecute() {
	if m != nil {
		m.executed.Inc()
	}
}

func (m *loopMetrics) onPanic() {
	if m != nil {
		m.panics.Inc()
	}
}
