package app

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/walletview/internal/config"
)

// NewLogger builds the root logger from the logging settings. Console
// output is meant for people; json is meant for log shippers.
func NewLogger(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", "walletview").
		Logger(), nil
}
