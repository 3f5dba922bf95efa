package view

// Field is a named element of a panel.
type Field struct {
	Name    string
	Label   string
	Text    string
	Enabled bool
	Visible bool
}

// Panel is an opaque container of named fields. Rendering is left to
// whoever displays it.
type Panel struct {
	name     string
	fields   []*Field
	byName   map[string]*Field
	focused  string
	onEsc    func()
	children []*Panel
}

// NewPanel creates an empty panel.
func NewPanel(name string) *Panel {
	return &Panel{
		name:   name,
		byName: make(map[string]*Field),
	}
}

// Name returns the panel name.
func (p *Panel) Name() string { return p.name }

// AddField appends an enabled, visible field. Adding an existing name
// returns the existing field.
func (p *Panel) AddField(name, label string) *Field {
	if f, ok := p.byName[name]; ok {
		return f
	}
	f := &Field{Name: name, Label: label, Enabled: true, Visible: true}
	p.fields = append(p.fields, f)
	p.byName[name] = f
	return f
}

// Field returns the named field.
func (p *Panel) Field(name string) (*Field, bool) {
	f, ok := p.byName[name]
	return f, ok
}

// Fields returns the fields in the order they were added.
func (p *Panel) Fields() []*Field {
	out := make([]*Field, len(p.fields))
	copy(out, p.fields)
	return out
}

// SetText sets the text of the named field.
func (p *Panel) SetText(name, text string) bool {
	f, ok := p.byName[name]
	if ok {
		f.Text = text
	}
	return ok
}

// Text returns the text of the named field, or "".
func (p *Panel) Text(name string) string {
	if f, ok := p.byName[name]; ok {
		return f.Text
	}
	return ""
}

// SetEnabled enables or disables the named field.
func (p *Panel) SetEnabled(name string, enabled bool) bool {
	f, ok := p.byName[name]
	if ok {
		f.Enabled = enabled
	}
	return ok
}

// SetVisible shows or hides the named field.
func (p *Panel) SetVisible(name string, visible bool) bool {
	f, ok := p.byName[name]
	if ok {
		f.Visible = visible
	}
	return ok
}

// Focus moves input focus to the named field. Disabled or hidden fields
// cannot take focus.
func (p *Panel) Focus(name string) bool {
	f, ok := p.byName[name]
	if !ok || !f.Enabled || !f.Visible {
		return false
	}
	p.focused = name
	return true
}

// Focused returns the name of the focused field, or "".
func (p *Panel) Focused() string { return p.focused }

// AddChild nests a component panel.
func (p *Panel) AddChild(child *Panel) {
	p.children = append(p.children, child)
}

// Children returns the nested panels in the order they were added.
func (p *Panel) Children() []*Panel {
	out := make([]*Panel, len(p.children))
	copy(out, p.children)
	return out
}

// UseEscToClose runs onClose when Esc is pressed on this panel.
func (p *Panel) UseEscToClose(onClose func()) {
	p.onEsc = onClose
}

// PressEsc delivers an Esc key press. It reports whether a close action ran.
func (p *Panel) PressEsc() bool {
	if p.onEsc == nil {
		return false
	}
	p.onEsc()
	return true
}
