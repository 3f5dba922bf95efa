package events

import "github.com/dshills/walletview/internal/event"

// Wizard event kinds. All of them are scoped to a single panel.
const (
	// KindWizardButtonEnabled toggles one wizard button.
	KindWizardButtonEnabled event.Kind = "view.wizard.button_enabled"

	// KindComponentChanged is posted when the user edits a component.
	KindComponentChanged event.Kind = "view.component.changed"

	// KindDeviceDisplayVisibility shows or hides the device display area.
	KindDeviceDisplayVisibility event.Kind = "view.device.display_visibility"
)

// WizardButton identifies a button in the wizard button bar.
type WizardButton string

// Wizard buttons.
const (
	ButtonExit     WizardButton = "exit"
	ButtonCancel   WizardButton = "cancel"
	ButtonPrevious WizardButton = "previous"
	ButtonNext     WizardButton = "next"
	ButtonFinish   WizardButton = "finish"
	ButtonApply    WizardButton = "apply"
	ButtonRestore  WizardButton = "restore"
)

// WizardButtonEnabled enables or disables a button on one panel.
type WizardButtonEnabled struct {
	Panel   string
	Button  WizardButton
	Enabled bool
}

// Kind implements event.Event.
func (WizardButtonEnabled) Kind() event.Kind { return KindWizardButtonEnabled }

// PanelName implements event.Scoped.
func (e WizardButtonEnabled) PanelName() string { return e.Panel }

// ComponentChanged is posted when a component's model was updated from its view.
type ComponentChanged struct {
	Panel string

	// Component names the component within the panel.
	Component string

	// Value is a snapshot of the component's model value.
	Value string
}

// Kind implements event.Event.
func (ComponentChanged) Kind() event.Kind { return KindComponentChanged }

// PanelName implements event.Scoped.
func (e ComponentChanged) PanelName() string { return e.Panel }

// DeviceDisplayVisibility shows or hides the device display on a panel.
type DeviceDisplayVisibility struct {
	Panel   string
	Visible bool
}

// Kind implements event.Event.
func (DeviceDisplayVisibility) Kind() event.Kind { return KindDeviceDisplayVisibility }

// PanelName implements event.Scoped.
func (e DeviceDisplayVisibility) PanelName() string { return e.Panel }
