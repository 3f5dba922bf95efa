package welcome

import (
	"context"

	"github.com/dshills/walletview/internal/event"
	"github.com/dshills/walletview/internal/event/events"
	"github.com/dshills/walletview/internal/i18n"
	"github.com/dshills/walletview/internal/view"
	"github.com/dshills/walletview/internal/view/components/selectfile"
	"github.com/dshills/walletview/internal/wizard"
)

// FieldNote is the explanatory text above the location field.
const FieldNote = "note"

// SelectBackupLocationPanel lets the user pick a folder for cloud backups.
type SelectBackupLocationPanel struct {
	*wizard.PanelView[*Model]

	location *view.ModelAndView[*selectfile.Model, *selectfile.View]
}

// NewSelectBackupLocationPanel creates the panel with the location field
// seeded from cloudBackupLocation.
func NewSelectBackupLocationPanel(env wizard.Env, model *Model, cloudBackupLocation string) *SelectBackupLocationPanel {
	p := &SelectBackupLocationPanel{
		PanelView: wizard.NewPanelView[*Model](env, PanelSelectBackupLocation,
			i18n.SelectBackupLocationTitle, wizard.AddExitCancelNext),
	}
	p.SetModel(model)
	model.BackupLocation = cloudBackupLocation

	p.location = selectfile.NewModelAndView(PanelSelectBackupLocation, "backup_location",
		cloudBackupLocation, env.Localizer, env.Notifier, env.Logger)
	p.RegisterComponents(p.location)
	p.Listen(event.On(p.onComponentChanged))
	return p
}

// Location returns the select file component.
func (p *SelectBackupLocationPanel) Location() *selectfile.View {
	return p.location.View()
}

// NewComponentPanel implements wizard.Panel.
func (p *SelectBackupLocationPanel) NewComponentPanel() *view.Panel {
	content := p.NewContentPanel()
	content.AddField(FieldNote, "").Text = p.Env().Localizer.Lookup(i18n.SelectBackupDirectoryNote)
	content.AddChild(p.location.View().NewComponentPanel())
	return content
}

// FireInitialStateViewEvents enables Next; a backup location is optional.
func (p *SelectBackupLocationPanel) FireInitialStateViewEvents(ctx context.Context) {
	p.Env().Notifier.FireWizardButtonEnabled(ctx, p.Name(), wizard.ButtonNext, true)
}

// RequestInitialFocus focuses the location field.
func (p *SelectBackupLocationPanel) RequestInitialFocus(ctx context.Context) {
	p.location.View().RequestInitialFocus(ctx)
}

// BeforeHide stores the chosen location unless the user is leaving.
func (p *SelectBackupLocationPanel) BeforeHide(isExitCancel bool) bool {
	if isExitCancel {
		return true
	}
	p.location.View().UpdateModelFromView()
	if m, ok := p.Model(); ok {
		m.BackupLocation = p.location.Model().Path
	}
	return true
}

func (p *SelectBackupLocationPanel) onComponentChanged(_ context.Context, e events.ComponentChanged) error {
	if m, ok := p.Model(); ok {
		m.BackupLocation = e.Value
	}
	return nil
}
