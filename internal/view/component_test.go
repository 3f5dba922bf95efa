package view

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/walletview/internal/event"
)

type pathModel struct {
	Path string
}

type scopedPing struct {
	Panel string
}

func (scopedPing) Kind() event.Kind    { return "test.ping" }
func (e scopedPing) PanelName() string { return e.Panel }

// pathView is a minimal editable component.
type pathView struct {
	*Component[*pathModel]
	pings int
}

func newPathView(panelName string) *pathView {
	v := &pathView{Component: NewComponent[*pathModel](panelName, zerolog.Nop())}
	v.Listen(event.On(func(context.Context, scopedPing) error {
		v.pings++
		return nil
	}))
	return v
}

func (v *pathView) NewComponentPanel() *Panel {
	p := NewPanel(v.PanelName())
	p.AddField("path", "Path")
	v.UpdateViewFromModel()
	return v.Adopt(p)
}

func (v *pathView) UpdateModelFromView() {
	m, ok := v.Model()
	if !ok || v.CurrentComponentPanel() == nil {
		return
	}
	m.Path = v.CurrentComponentPanel().Text("path")
}

var _ BoundView[*pathModel] = (*pathView)(nil)

func TestComponent_UpdateModelFromViewFollowsBinding(t *testing.T) {
	v := newPathView("backup")
	p := v.NewComponentPanel()
	assert.Equal(t, StateUnbound, v.State())

	// Unbound: nothing to write into.
	p.SetText("path", "/ignored")
	v.UpdateModelFromView()

	m := &pathModel{Path: "/initial"}
	v.SetModel(m)
	assert.Equal(t, StateBound, v.State())

	p.SetText("path", "/home/alice/backups")
	v.UpdateModelFromView()
	assert.Equal(t, "/home/alice/backups", m.Path)

	v.ClearModel()
	assert.Equal(t, StateUnbound, v.State())
	_, ok := v.Model()
	assert.False(t, ok)

	p.SetText("path", "/elsewhere")
	v.UpdateModelFromView()
	assert.Equal(t, "/home/alice/backups", m.Path, "cleared binding must leave the old model alone")
}

func TestComponent_SetModelReplaces(t *testing.T) {
	v := newPathView("backup")
	p := v.NewComponentPanel()

	first := &pathModel{}
	second := &pathModel{}
	v.SetModel(first)
	v.SetModel(second)

	p.SetText("path", "/x")
	v.UpdateModelFromView()

	assert.Empty(t, first.Path)
	assert.Equal(t, "/x", second.Path)
}

func TestComponent_NewComponentPanelIsFresh(t *testing.T) {
	v := newPathView("backup")
	first := v.NewComponentPanel()
	first.SetText("path", "/old")
	first.Focus("path")

	second := v.NewComponentPanel()
	assert.NotSame(t, first, second)
	assert.Empty(t, second.Text("path"))
	assert.Empty(t, second.Focused())
	assert.Same(t, second, v.CurrentComponentPanel())
}

func TestComponent_AttachScopesToPanel(t *testing.T) {
	bus := event.NewBus()
	ctx := context.Background()
	v := newPathView("backup")

	require.NoError(t, v.Attach(ctx, bus))
	assert.True(t, v.Attached())
	assert.True(t, bus.IsRegistered(v.ID()))

	bus.Post(ctx, scopedPing{Panel: "backup"})
	bus.Post(ctx, scopedPing{Panel: "confirm"})
	assert.Equal(t, 1, v.pings)

	v.Detach(ctx)
	v.Detach(ctx)
	assert.False(t, bus.IsRegistered(v.ID()))

	bus.Post(ctx, scopedPing{Panel: "backup"})
	assert.Equal(t, 1, v.pings)
}

func TestComponent_ReattachDoesNotDuplicate(t *testing.T) {
	bus := event.NewBus()
	ctx := context.Background()
	v := newPathView("backup")

	require.NoError(t, v.Attach(ctx, bus))
	require.NoError(t, v.Attach(ctx, bus))
	assert.Equal(t, 1, bus.Stats().ActiveSubscribers)

	bus.Post(ctx, scopedPing{Panel: "backup"})
	assert.Equal(t, 1, v.pings)
}

func TestComponent_AttachWithoutBindings(t *testing.T) {
	bus := event.NewBus()
	c := NewComponent[*pathModel]("backup", zerolog.Nop())

	require.NoError(t, c.Attach(context.Background(), bus))
	assert.True(t, c.Attached())
	assert.Zero(t, bus.Stats().ActiveSubscribers)
}

func TestComponent_GenerationInvalidatesCallbacks(t *testing.T) {
	bus := event.NewBus()
	ctx := context.Background()
	v := newPathView("confirm")
	require.NoError(t, v.Attach(ctx, bus))

	token := v.Generation()
	assert.True(t, v.Alive(token))

	v.Detach(ctx)
	assert.False(t, v.Alive(token), "detach must invalidate callbacks")

	require.NoError(t, v.Attach(ctx, bus))
	token = v.Generation()
	assert.True(t, v.Alive(token))

	v.Dispose(ctx)
	assert.False(t, v.Alive(token))
	assert.False(t, v.Alive(v.Generation()), "nothing is alive once disposed")
}

func TestComponent_Dispose(t *testing.T) {
	bus := event.NewBus()
	ctx := context.Background()
	v := newPathView("confirm")
	m := &pathModel{Path: "/kept"}
	v.SetModel(m)
	v.NewComponentPanel()
	require.NoError(t, v.Attach(ctx, bus))

	v.Dispose(ctx)
	v.Dispose(ctx)

	assert.Equal(t, StateDisposed, v.State())
	assert.False(t, bus.IsRegistered(v.ID()))
	assert.Nil(t, v.CurrentComponentPanel())
	assert.Equal(t, "/kept", m.Path)

	v.SetModel(&pathModel{})
	_, ok := v.Model()
	assert.False(t, ok)
	assert.ErrorIs(t, v.Attach(ctx, bus), ErrDisposed)
}

func TestComponent_LoggerCarriesIdentity(t *testing.T) {
	var buf bytes.Buffer
	c := NewComponent[*pathModel]("confirm", zerolog.New(&buf))

	c.Logger().Warn().Msg("device busy")
	c.Logger().Debug().Msg("tick")

	out := buf.String()
	assert.Contains(t, out, `"message":"device busy"`)
	assert.Contains(t, out, `"panel":"confirm"`)
	assert.Contains(t, out, `"view_id":"`+c.ID()+`"`)
	assert.Contains(t, out, `"message":"tick"`)
}

func TestModelAndView(t *testing.T) {
	bus := event.NewBus()
	ctx := context.Background()
	m := &pathModel{Path: "/seed"}

	mv := NewModelAndView[*pathModel](m, newPathView("backup"))
	got, ok := mv.View().Model()
	require.True(t, ok)
	assert.Same(t, m, got)
	assert.Same(t, m, mv.Model())

	require.NoError(t, mv.Attach(ctx, bus))
	assert.True(t, bus.IsRegistered(mv.View().ID()))

	mv.Detach(ctx)
	assert.False(t, bus.IsRegistered(mv.View().ID()))

	mv.Dispose(ctx)
	assert.Equal(t, StateDisposed, mv.View().State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unbound", StateUnbound.String())
	assert.Equal(t, "bound", StateBound.String())
	assert.Equal(t, "disposed", StateDisposed.String())
	assert.Equal(t, "unknown", State(42).String())
}
