// Package devicedisplay mirrors the hardware wallet screen inside a panel.
package devicedisplay

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dshills/walletview/internal/device"
	"github.com/dshills/walletview/internal/event"
	"github.com/dshills/walletview/internal/event/events"
	"github.com/dshills/walletview/internal/i18n"
	"github.com/dshills/walletview/internal/view"
)

// Field names on the component panel.
const (
	FieldOperation = "operation"
	FieldDisplay   = "display"
	FieldSpinner   = "spinner"
)

// Model remembers what is shown so it can be redrawn after a locale change.
type Model struct {
	OperationKey   i18n.MessageKey
	DisplayKey     i18n.MessageKey
	DisplayVisible bool
	SpinnerVisible bool
}

// View shows the operation being confirmed and what the device displays.
type View struct {
	*view.Component[*Model]

	localizer i18n.Localizer
	display   device.Display
}

// New creates an unbound view forwarding device output to display.
func New(panelName string, loc i18n.Localizer, display device.Display, log zerolog.Logger) *View {
	v := &View{
		Component: view.NewComponent[*Model](panelName, log),
		localizer: loc,
		display:   display,
	}
	v.Listen(
		event.On(v.onDisplayVisibility),
		event.On(v.onLocaleChanged),
	)
	return v
}

// NewModelAndView binds a new model with a visible display to a new view.
func NewModelAndView(panelName string, loc i18n.Localizer, display device.Display, log zerolog.Logger) *view.ModelAndView[*Model, *View] {
	return view.NewModelAndView[*Model](&Model{DisplayVisible: true}, New(panelName, loc, display, log))
}

// NewComponentPanel implements view.View.
func (v *View) NewComponentPanel() *view.Panel {
	p := view.NewPanel(v.PanelName())
	p.AddField(FieldOperation, "")
	p.AddField(FieldDisplay, "")
	p.AddField(FieldSpinner, "")
	p.SetVisible(FieldSpinner, false)
	v.Adopt(p)
	v.UpdateViewFromModel()
	return p
}

// UpdateViewFromModel redraws every field from the model in the active locale.
func (v *View) UpdateViewFromModel() {
	m, ok := v.Model()
	p := v.CurrentComponentPanel()
	if !ok || p == nil {
		return
	}
	p.SetText(FieldOperation, v.text(m.OperationKey))
	p.SetText(FieldDisplay, v.text(m.DisplayKey))
	p.SetVisible(FieldDisplay, m.DisplayVisible)
	p.SetVisible(FieldSpinner, m.SpinnerVisible)
}

// SetOperationText describes the operation awaiting confirmation.
func (v *View) SetOperationText(key i18n.MessageKey) {
	if m, ok := v.Model(); ok {
		m.OperationKey = key
	}
	if p := v.CurrentComponentPanel(); p != nil {
		p.SetText(FieldOperation, v.text(key))
	}
}

// SetDisplayText shows what the device screen shows.
func (v *View) SetDisplayText(key i18n.MessageKey) {
	if m, ok := v.Model(); ok {
		m.DisplayKey = key
	}
	text := v.text(key)
	if p := v.CurrentComponentPanel(); p != nil {
		p.SetText(FieldDisplay, text)
	}
	v.display.SetDisplayText(text)
}

// SetDisplayVisible shows or hides the device display area.
func (v *View) SetDisplayVisible(visible bool) {
	if m, ok := v.Model(); ok {
		m.DisplayVisible = visible
	}
	if p := v.CurrentComponentPanel(); p != nil {
		p.SetVisible(FieldDisplay, visible)
	}
}

// SetSpinnerVisible shows or hides the busy indicator.
func (v *View) SetSpinnerVisible(visible bool) {
	if m, ok := v.Model(); ok {
		m.SpinnerVisible = visible
	}
	if p := v.CurrentComponentPanel(); p != nil {
		p.SetVisible(FieldSpinner, visible)
	}
	v.display.SetSpinnerVisible(visible)
}

func (v *View) onDisplayVisibility(_ context.Context, e events.DeviceDisplayVisibility) error {
	v.SetDisplayVisible(e.Visible)
	return nil
}

func (v *View) onLocaleChanged(context.Context, events.LocaleChanged) error {
	v.UpdateViewFromModel()
	return nil
}

func (v *View) text(key i18n.MessageKey) string {
	if key == "" {
		return ""
	}
	return v.localizer.Lookup(key)
}
