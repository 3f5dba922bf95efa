// Package wizard drives a sequence of panels with a shared button bar.
//
// Each panel embeds PanelView, which supplies the default wizard panel
// behaviour: a localized title, an ordered button bar whose buttons can be
// toggled by WizardButtonEnabled events scoped to the panel, and a
// BeforeHide that never objects.
//
// # Deferred Transitions
//
// Before leaving a panel the Wizard asks BeforeHide whether the move may go
// ahead. A panel that is still waiting on something, such as a hardware
// confirmation, returns false. The Wizard then keeps the move pending and
// leaves the panel on screen. Once the panel's condition resolves it enables
// its Next button, and the move is driven again through Retry or a fresh
// press of the button.
//
// Exit and Cancel pass isExitCancel=true so that panels can always let the
// user leave.
//
// # Thread Safety
//
// Wizards and panels belong to the UI loop. Work finishing on other
// goroutines is posted back through Env.Loop.
package wizard
