package uiloop

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Option configures a Loop.
type Option func(*Loop)

// WithQueueSize sets the task queue capacity.
func WithQueueSize(size int) Option {
	return func(l *Loop) {
		if size > 0 {
			l.queueSize = size
		}
	}
}

// WithStrict makes precondition violations panic instead of logging.
// Development builds run strict.
func WithStrict(strict bool) Option {
	return func(l *Loop) {
		l.strict = strict
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loop) {
		l.log = log
	}
}

// WithMetrics registers the loop's collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(l *Loop) {
		l.registerer = reg
	}
}
