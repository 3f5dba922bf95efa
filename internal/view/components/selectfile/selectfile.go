// Package selectfile provides a text field for choosing a file or folder.
package selectfile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dshills/walletview/internal/i18n"
	"github.com/dshills/walletview/internal/view"
)

// Field names on the component panel.
const (
	FieldPath   = "path"
	FieldBrowse = "browse"
)

// Model holds the selected path.
type Model struct {
	Path string
}

// ChangeNotifier is told when the user edits the path.
type ChangeNotifier interface {
	FireComponentChanged(ctx context.Context, panel, component, value string)
}

// View shows the selected path in an editable field.
type View struct {
	*view.Component[*Model]

	name      string
	localizer i18n.Localizer
	notifier  ChangeNotifier
}

// New creates an unbound view. name identifies the component in
// ComponentChanged events.
func New(panelName, name string, loc i18n.Localizer, notifier ChangeNotifier, log zerolog.Logger) *View {
	return &View{
		Component: view.NewComponent[*Model](panelName, log),
		name:      name,
		localizer: loc,
		notifier:  notifier,
	}
}

// NewModelAndView creates a model seeded with path and binds it to a new view.
func NewModelAndView(panelName, name, path string, loc i18n.Localizer, notifier ChangeNotifier, log zerolog.Logger) *view.ModelAndView[*Model, *View] {
	return view.NewModelAndView[*Model](&Model{Path: path}, New(panelName, name, loc, notifier, log))
}

// Name returns the component name.
func (v *View) Name() string { return v.name }

// NewComponentPanel implements view.View.
func (v *View) NewComponentPanel() *view.Panel {
	p := view.NewPanel(v.PanelName())
	p.AddField(FieldPath, v.localizer.Lookup(i18n.BackupLocation))
	p.AddField(FieldBrowse, v.localizer.Lookup(i18n.SelectFile))
	v.Adopt(p)
	v.UpdateViewFromModel()
	return p
}

// UpdateModelFromView copies the path field into the model.
func (v *View) UpdateModelFromView() {
	m, ok := v.Model()
	p := v.CurrentComponentPanel()
	if !ok || p == nil {
		return
	}
	m.Path = p.Text(FieldPath)
}

// UpdateViewFromModel copies the model path into the field.
func (v *View) UpdateViewFromModel() {
	m, ok := v.Model()
	p := v.CurrentComponentPanel()
	if !ok || p == nil {
		return
	}
	p.SetText(FieldPath, m.Path)
}

// RequestInitialFocus focuses the path field.
func (v *View) RequestInitialFocus(context.Context) {
	if p := v.CurrentComponentPanel(); p != nil {
		p.Focus(FieldPath)
	}
}

// Edit applies a user edit of the path field and announces it.
func (v *View) Edit(ctx context.Context, path string) {
	p := v.CurrentComponentPanel()
	if p == nil {
		return
	}
	p.SetText(FieldPath, path)
	v.UpdateModelFromView()
	if v.notifier != nil {
		v.notifier.FireComponentChanged(ctx, v.PanelName(), v.name, path)
	}
}
