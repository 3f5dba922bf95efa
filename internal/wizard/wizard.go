package wizard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/walletview/internal/event"
	"github.com/dshills/walletview/internal/event/events"
	"github.com/dshills/walletview/internal/view"
)

// Panel is a step of a wizard.
type Panel interface {
	view.Lifecycle

	Name() string
	Title() string
	Buttons() []Button
	ButtonEnabled(b Button) bool

	NewComponentPanel() *view.Panel
	CurrentComponentPanel() *view.Panel
	RequestInitialFocus(ctx context.Context)

	FireInitialStateViewEvents(ctx context.Context)
	AfterShow(ctx context.Context)
	BeforeHide(isExitCancel bool) bool
}

// State is the overall state of a wizard.
type State int

const (
	// StateIdle means no panel has been shown yet.
	StateIdle State = iota

	// StateShowing means a panel is on screen.
	StateShowing

	// StateFinished means the user completed the wizard.
	StateFinished

	// StateCancelled means the user left through Exit or Cancel.
	StateCancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateShowing:
		return "showing"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// CloseFunc is called once when the wizard finishes or is cancelled.
type CloseFunc func(ctx context.Context, state State)

type pendingMove struct {
	target       string
	isExitCancel bool
	finish       bool
}

// Wizard shows one panel at a time and moves between them on request.
type Wizard struct {
	env     Env
	log     zerolog.Logger
	id      string
	order   []string
	panels  map[string]Panel
	current Panel
	state   State
	pending *pendingMove
	onClose CloseFunc
	sub     *event.Subscriber
}

// New creates a wizard over panels, in order.
func New(env Env, panels ...Panel) (*Wizard, error) {
	if len(panels) == 0 {
		return nil, ErrNoPanels
	}
	w := &Wizard{
		env:    env,
		id:     "wizard-" + uuid.NewString(),
		panels: make(map[string]Panel, len(panels)),
	}
	w.log = env.Logger.With().Str("component", "wizard").Str("wizard_id", w.id).Logger()
	for _, p := range panels {
		if _, ok := w.panels[p.Name()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePanel, p.Name())
		}
		w.order = append(w.order, p.Name())
		w.panels[p.Name()] = p
	}
	w.sub = event.NewSubscriber(w.id, event.On(w.onLocaleChanged))
	return w, nil
}

// OnClose sets the callback run when the wizard finishes or is cancelled.
func (w *Wizard) OnClose(fn CloseFunc) {
	w.onClose = fn
}

// Start shows the first panel.
func (w *Wizard) Start(ctx context.Context) error {
	w.env.Loop.MustBeOnLoop(ctx, "wizard start")
	if err := w.env.Bus.Register(ctx, w.sub); err != nil {
		return err
	}
	if err := w.show(ctx, w.order[0]); err != nil {
		w.env.Bus.UnregisterID(ctx, w.id)
		return err
	}
	return nil
}

// State returns the wizard state.
func (w *Wizard) State() State { return w.state }

// Current returns the panel on screen, or nil.
func (w *Wizard) Current() Panel { return w.current }

// Pending reports whether a move is waiting on the current panel.
func (w *Wizard) Pending() bool { return w.pending != nil }

// Show moves to the named panel. It reports false when the current panel
// deferred the move.
func (w *Wizard) Show(ctx context.Context, name string) (bool, error) {
	w.env.Loop.MustBeOnLoop(ctx, "wizard show")
	if _, ok := w.panels[name]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownPanel, name)
	}
	return w.move(ctx, pendingMove{target: name})
}

// Next moves to the following panel.
func (w *Wizard) Next(ctx context.Context) (bool, error) {
	w.env.Loop.MustBeOnLoop(ctx, "wizard next")
	i := w.index()
	if i < 0 || i+1 >= len(w.order) {
		return false, ErrNoNextPanel
	}
	return w.move(ctx, pendingMove{target: w.order[i+1]})
}

// Previous moves to the preceding panel.
func (w *Wizard) Previous(ctx context.Context) (bool, error) {
	w.env.Loop.MustBeOnLoop(ctx, "wizard previous")
	i := w.index()
	if i <= 0 {
		return false, ErrNoPreviousPanel
	}
	return w.move(ctx, pendingMove{target: w.order[i-1]})
}

// Finish completes the wizard from the current panel.
func (w *Wizard) Finish(ctx context.Context) (bool, error) {
	w.env.Loop.MustBeOnLoop(ctx, "wizard finish")
	return w.move(ctx, pendingMove{finish: true})
}

// Cancel leaves the wizard. Panels are asked with isExitCancel set, so
// they normally let the user go.
func (w *Wizard) Cancel(ctx context.Context) (bool, error) {
	w.env.Loop.MustBeOnLoop(ctx, "wizard cancel")
	return w.move(ctx, pendingMove{finish: true, isExitCancel: true})
}

// Retry drives the pending move again. It reports false when nothing was
// pending or the panel deferred once more.
func (w *Wizard) Retry(ctx context.Context) (bool, error) {
	w.env.Loop.MustBeOnLoop(ctx, "wizard retry")
	if w.pending == nil {
		return false, nil
	}
	return w.move(ctx, *w.pending)
}

// Press handles a click on a button of the current panel.
func (w *Wizard) Press(ctx context.Context, b Button) (bool, error) {
	w.env.Loop.MustBeOnLoop(ctx, "wizard press")
	if w.current == nil {
		return false, ErrClosed
	}
	if !w.current.ButtonEnabled(b) {
		return false, fmt.Errorf("%w: %s", ErrButtonDisabled, b)
	}
	switch b {
	case ButtonExit, ButtonCancel:
		return w.Cancel(ctx)
	case ButtonPrevious:
		return w.Previous(ctx)
	case ButtonNext:
		return w.Next(ctx)
	default:
		return w.Finish(ctx)
	}
}

func (w *Wizard) move(ctx context.Context, m pendingMove) (bool, error) {
	if w.state == StateFinished || w.state == StateCancelled {
		return false, ErrClosed
	}

	prev := w.current
	if prev != nil {
		if !prev.BeforeHide(m.isExitCancel) {
			w.pending = &m
			w.log.Debug().
				Str("panel", prev.Name()).
				Str("target", m.target).
				Bool("exit_cancel", m.isExitCancel).
				Msg("panel deferred hide")
			return false, nil
		}
		prev.Detach(ctx)
	}
	w.pending = nil

	if m.finish {
		w.close(ctx, m.isExitCancel)
		return true, nil
	}
	if err := w.show(ctx, m.target); err != nil {
		w.restore(ctx, prev, m.target, err)
		return false, err
	}
	return true, nil
}

// restore puts prev back on the bus after the move to target failed, so
// the wizard keeps showing a live panel.
func (w *Wizard) restore(ctx context.Context, prev Panel, target string, cause error) {
	w.log.Warn().Err(cause).Str("target", target).Msg("panel not shown")
	if prev == nil {
		return
	}
	if err := prev.Attach(ctx, w.env.Bus); err != nil {
		w.log.Error().Err(err).Str("panel", prev.Name()).Msg("previous panel not restored")
	}
}

func (w *Wizard) show(ctx context.Context, name string) error {
	p := w.panels[name]
	if err := p.Attach(ctx, w.env.Bus); err != nil {
		return err
	}
	w.current = p
	w.state = StateShowing

	p.NewComponentPanel()
	p.FireInitialStateViewEvents(ctx)
	p.RequestInitialFocus(ctx)
	p.AfterShow(ctx)

	w.log.Debug().Str("panel", name).Msg("panel shown")
	return nil
}

func (w *Wizard) close(ctx context.Context, cancelled bool) {
	w.state = StateFinished
	if cancelled {
		w.state = StateCancelled
	}
	for _, name := range w.order {
		w.panels[name].Dispose(ctx)
	}
	w.current = nil
	w.env.Bus.UnregisterID(ctx, w.id)

	w.log.Info().Stringer("state", w.state).Msg("wizard closed")
	if w.onClose != nil {
		w.onClose(ctx, w.state)
	}
}

func (w *Wizard) index() int {
	if w.current == nil {
		return -1
	}
	for i, name := range w.order {
		if name == w.current.Name() {
			return i
		}
	}
	return -1
}

// onLocaleChanged rebuilds the visible panel so it picks up new text.
func (w *Wizard) onLocaleChanged(ctx context.Context, _ events.LocaleChanged) error {
	if w.current == nil {
		return nil
	}
	w.current.NewComponentPanel()
	w.current.RequestInitialFocus(ctx)
	return nil
}
