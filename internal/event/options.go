package event

import (
	"context"

	"github.com/rs/zerolog"
)

// Confinement reports whether ctx belongs to the single UI loop.
type Confinement interface {
	OnLoop(ctx context.Context) bool
}

// FailureFunc observes handler failures after they have been logged.
// err is a *HandlerError or a *PanicError.
type FailureFunc func(ctx context.Context, err error)

// BusOption configures an event Bus.
type BusOption func(*busConfig)

// busConfig contains configuration for the event bus.
type busConfig struct {
	logger      zerolog.Logger
	confinement Confinement
	strict      bool
	metrics     *Metrics
	onFailure   FailureFunc
}

// defaultBusConfig returns sensible default configuration.
func defaultBusConfig() busConfig {
	return busConfig{
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger used for failures and debug tracing.
func WithLogger(l zerolog.Logger) BusOption {
	return func(c *busConfig) {
		c.logger = l
	}
}

// WithConfinement makes the bus check that every call originates on the UI
// loop. With strict set, a violation panics; otherwise it is logged and the
// call proceeds.
func WithConfinement(conf Confinement, strict bool) BusOption {
	return func(c *busConfig) {
		c.confinement = conf
		c.strict = strict
	}
}

// WithMetrics records bus activity on m.
func WithMetrics(m *Metrics) BusOption {
	return func(c *busConfig) {
		c.metrics = m
	}
}

// WithFailureHandler sets a callback invoked for every handler failure.
func WithFailureHandler(fn FailureFunc) BusOption {
	return func(c *busConfig) {
		c.onFailure = fn
	}
}
