package wizard

import (
	"context"

	"github.com/dshills/walletview/internal/event"
	"github.com/dshills/walletview/internal/event/events"
	"github.com/dshills/walletview/internal/i18n"
	"github.com/dshills/walletview/internal/view"
)

// FieldTitle is the panel field holding the localized title.
const FieldTitle = "title"

// PanelView is the base of every wizard panel. M is the wizard model
// shared by the panels of one wizard.
type PanelView[M view.Model] struct {
	*view.Component[M]

	env      Env
	titleKey i18n.MessageKey

	buttons []Button
	enabled map[Button]bool

	components []view.Lifecycle
}

// NewPanelView creates a panel base. decorate lays out the button bar.
func NewPanelView[M view.Model](env Env, name string, title i18n.MessageKey, decorate Decorator) *PanelView[M] {
	p := &PanelView[M]{
		Component: view.NewComponent[M](name, env.Logger),
		env:       env,
		titleKey:  title,
		enabled:   make(map[Button]bool),
	}
	if decorate != nil {
		decorate(p)
	}
	p.Listen(event.On(p.onButtonEnabled))
	return p
}

// Name returns the panel name.
func (p *PanelView[M]) Name() string { return p.PanelName() }

// Env returns the collaborators the panel was built with.
func (p *PanelView[M]) Env() Env { return p.env }

// Title returns the localized title.
func (p *PanelView[M]) Title() string {
	return p.env.Localizer.Lookup(p.titleKey)
}

// AddButton appends an enabled button. Adding a button twice has no effect.
func (p *PanelView[M]) AddButton(b Button) {
	if _, ok := p.enabled[b]; ok {
		return
	}
	p.buttons = append(p.buttons, b)
	p.enabled[b] = true
}

// Buttons returns the buttons in bar order.
func (p *PanelView[M]) Buttons() []Button {
	out := make([]Button, len(p.buttons))
	copy(out, p.buttons)
	return out
}

// ButtonEnabled reports whether b is present and enabled.
func (p *PanelView[M]) ButtonEnabled(b Button) bool {
	return p.enabled[b]
}

// SetButtonEnabled enables or disables b. Buttons not on the bar are ignored.
func (p *PanelView[M]) SetButtonEnabled(b Button, enabled bool) {
	if _, ok := p.enabled[b]; !ok {
		return
	}
	p.enabled[b] = enabled
	if content := p.CurrentComponentPanel(); content != nil {
		content.SetEnabled(ButtonField(b), enabled)
	}
}

// NewContentPanel builds the panel frame: title and button bar. Concrete
// panels add their components to it from NewComponentPanel.
func (p *PanelView[M]) NewContentPanel() *view.Panel {
	content := view.NewPanel(p.PanelName())
	content.AddField(FieldTitle, "").Text = p.Title()
	for _, b := range p.buttons {
		f := content.AddField(ButtonField(b), p.env.Localizer.Lookup(buttonLabels[b]))
		f.Enabled = p.enabled[b]
	}
	return p.Adopt(content)
}

// NewComponentPanel builds a frame with no components.
func (p *PanelView[M]) NewComponentPanel() *view.Panel {
	return p.NewContentPanel()
}

// RegisterComponents adds component views that live and die with the
// panel. Call it before the panel is attached; the components are attached
// and detached together with the panel.
func (p *PanelView[M]) RegisterComponents(components ...view.Lifecycle) {
	p.components = append(p.components, components...)
}

// Attach registers the panel and its components with bus. If any of them
// fails, whatever was attached is detached again.
func (p *PanelView[M]) Attach(ctx context.Context, bus view.Registrar) error {
	if err := p.Component.Attach(ctx, bus); err != nil {
		return err
	}
	for i, c := range p.components {
		if err := c.Attach(ctx, bus); err != nil {
			for _, attached := range p.components[:i] {
				attached.Detach(ctx)
			}
			p.Component.Detach(ctx)
			return err
		}
	}
	return nil
}

// Detach unregisters the panel and its components.
func (p *PanelView[M]) Detach(ctx context.Context) {
	for _, c := range p.components {
		c.Detach(ctx)
	}
	p.Component.Detach(ctx)
}

// Dispose tears down the panel and its components.
func (p *PanelView[M]) Dispose(ctx context.Context) {
	for _, c := range p.components {
		c.Dispose(ctx)
	}
	p.components = nil
	p.Component.Dispose(ctx)
}

// FireInitialStateViewEvents announces the panel's starting state. The
// default announces nothing.
func (p *PanelView[M]) FireInitialStateViewEvents(context.Context) {}

// AfterShow runs once the panel is visible. The default does nothing.
func (p *PanelView[M]) AfterShow(context.Context) {}

// BeforeHide reports whether the panel may be left now. The default always
// allows it.
func (p *PanelView[M]) BeforeHide(bool) bool { return true }

func (p *PanelView[M]) onButtonEnabled(_ context.Context, e events.WizardButtonEnabled) error {
	p.SetButtonEnabled(e.Button, e.Enabled)
	return nil
}
