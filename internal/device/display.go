// Package device provides stand-ins for the hardware wallet: a display that
// mirrors what the device screen shows and a simulator that answers
// confirmation requests asynchronously.
package device

import (
	"sync"

	"github.com/rs/zerolog"
)

// Display mirrors the hardware device's screen.
type Display interface {
	// SetDisplayText shows text as the device screen content.
	SetDisplayText(text string)

	// SetSpinnerVisible shows or hides the busy indicator.
	SetSpinnerVisible(visible bool)
}

// LogDisplay writes display changes to a logger. It is used when running
// without a terminal.
type LogDisplay struct {
	mu      sync.Mutex
	log     zerolog.Logger
	text    string
	spinner bool
}

// NewLogDisplay creates a display that logs to log.
func NewLogDisplay(log zerolog.Logger) *LogDisplay {
	return &LogDisplay{log: log.With().Str("component", "device_display").Logger()}
}

// SetDisplayText implements Display.
func (d *LogDisplay) SetDisplayText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.text = text
	d.log.Info().Str("text", text).Msg("device display")
}

// SetSpinnerVisible implements Display.
func (d *LogDisplay) SetSpinnerVisible(visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinner == visible {
		return
	}
	d.spinner = visible
	d.log.Info().Bool("spinner", visible).Msg("device display")
}

// Text returns the last text shown.
func (d *LogDisplay) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.text
}

// SpinnerVisible reports whether the spinner is shown.
func (d *LogDisplay) SpinnerVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.spinner
}
