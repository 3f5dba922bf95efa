package selectfile

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/walletview/internal/i18n"
)

type change struct {
	panel, component, value string
}

type recordingNotifier struct {
	changes []change
}

func (n *recordingNotifier) FireComponentChanged(_ context.Context, panel, component, value string) {
	n.changes = append(n.changes, change{panel, component, value})
}

func newCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.Load()
	require.NoError(t, err)
	return c
}

func TestView_PanelSeededFromModel(t *testing.T) {
	mv := NewModelAndView("backup", "location", "/home/alice/cloud", newCatalog(t), nil, zerolog.Nop())

	p := mv.View().NewComponentPanel()
	assert.Equal(t, "/home/alice/cloud", p.Text(FieldPath))

	f, ok := p.Field(FieldPath)
	require.True(t, ok)
	assert.Equal(t, "Backup location", f.Label)
	browse, _ := p.Field(FieldBrowse)
	assert.Equal(t, "Select...", browse.Label)
}

func TestView_EditUpdatesModelAndNotifies(t *testing.T) {
	n := &recordingNotifier{}
	mv := NewModelAndView("backup", "location", "", newCatalog(t), n, zerolog.Nop())
	v := mv.View()
	v.NewComponentPanel()

	v.Edit(context.Background(), "/mnt/usb")

	assert.Equal(t, "/mnt/usb", mv.Model().Path)
	assert.Equal(t, []change{{"backup", "location", "/mnt/usb"}}, n.changes)
}

func TestView_UnboundIsNoOp(t *testing.T) {
	mv := NewModelAndView("backup", "location", "/old", newCatalog(t), nil, zerolog.Nop())
	v := mv.View()
	p := v.NewComponentPanel()

	v.ClearModel()
	p.SetText(FieldPath, "/new")
	v.UpdateModelFromView()
	v.UpdateViewFromModel()

	assert.Equal(t, "/old", mv.Model().Path)
	assert.Equal(t, "/new", p.Text(FieldPath))
}

func TestView_UpdateViewFromModel(t *testing.T) {
	mv := NewModelAndView("backup", "location", "/a", newCatalog(t), nil, zerolog.Nop())
	p := mv.View().NewComponentPanel()

	mv.Model().Path = "/b"
	mv.View().UpdateViewFromModel()
	assert.Equal(t, "/b", p.Text(FieldPath))
}

func TestView_RequestInitialFocus(t *testing.T) {
	v := New("backup", "location", newCatalog(t), nil, zerolog.Nop())

	// No panel yet.
	v.RequestInitialFocus(context.Background())

	p := v.NewComponentPanel()
	v.RequestInitialFocus(context.Background())
	assert.Equal(t, FieldPath, p.Focused())
	assert.Equal(t, "location", v.Name())
}
