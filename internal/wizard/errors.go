package wizard

import "errors"

// Wizard errors.
var (
	// ErrNoPanels is returned when a wizard has nothing to show.
	ErrNoPanels = errors.New("wizard has no panels")

	// ErrUnknownPanel is returned for a panel name that was never added.
	ErrUnknownPanel = errors.New("unknown wizard panel")

	// ErrNoNextPanel is returned by Next on the last panel.
	ErrNoNextPanel = errors.New("no next panel")

	// ErrNoPreviousPanel is returned by Previous on the first panel.
	ErrNoPreviousPanel = errors.New("no previous panel")

	// ErrButtonDisabled is returned when pressing a disabled or absent button.
	ErrButtonDisabled = errors.New("button disabled")

	// ErrClosed is returned once the wizard was finished or cancelled.
	ErrClosed = errors.New("wizard closed")

	// ErrDuplicatePanel is returned when two panels share a name.
	ErrDuplicatePanel = errors.New("duplicate panel name")
)
