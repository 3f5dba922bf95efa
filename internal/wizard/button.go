package wizard

import (
	"github.com/dshills/walletview/internal/event/events"
	"github.com/dshills/walletview/internal/i18n"
)

// Button identifies a button in the wizard button bar.
type Button = events.WizardButton

// Wizard buttons.
const (
	ButtonExit     = events.ButtonExit
	ButtonCancel   = events.ButtonCancel
	ButtonPrevious = events.ButtonPrevious
	ButtonNext     = events.ButtonNext
	ButtonFinish   = events.ButtonFinish
	ButtonApply    = events.ButtonApply
	ButtonRestore  = events.ButtonRestore
)

var buttonLabels = map[Button]i18n.MessageKey{
	ButtonExit:     i18n.ButtonExit,
	ButtonCancel:   i18n.ButtonCancel,
	ButtonPrevious: i18n.ButtonPrevious,
	ButtonNext:     i18n.ButtonNext,
	ButtonFinish:   i18n.ButtonFinish,
	ButtonApply:    i18n.ButtonApply,
	ButtonRestore:  i18n.ButtonRestore,
}

// ButtonField returns the panel field name used for button b.
func ButtonField(b Button) string {
	return "button." + string(b)
}

func isExitCancel(b Button) bool {
	return b == ButtonExit || b == ButtonCancel
}
