package events

import "github.com/dshills/walletview/internal/event"

// KindConfigChanged is posted on the UI loop after the configuration file
// was reloaded.
const KindConfigChanged event.Kind = "config.changed"

// ConfigChanged lists the settings that differ from the previous configuration.
type ConfigChanged struct {
	// Path is the file that was reloaded.
	Path string

	// Changed holds dot-notation setting names, e.g. "appearance.locale".
	Changed []string
}

// Kind implements event.Event.
func (ConfigChanged) Kind() event.Kind { return KindConfigChanged }

// Has reports whether setting is among the changed ones.
func (e ConfigChanged) Has(setting string) bool {
	for _, c := range e.Changed {
		if c == setting {
			return true
		}
	}
	return false
}
