package welcome

import (
	"context"

	"github.com/dshills/walletview/internal/i18n"
	"github.com/dshills/walletview/internal/view"
	"github.com/dshills/walletview/internal/wizard"
)

// PanelReport is the name of the closing panel.
const PanelReport = "create_trezor_wallet.report"

// Report field names.
const (
	FieldWalletStatus = "wallet_status"
	FieldBackupStatus = "backup_status"
)

// ReportPanel summarises what the wizard did.
type ReportPanel struct {
	*wizard.PanelView[*Model]

	deviceName string
}

// NewReportPanel creates the closing panel. deviceName is shown in the
// wallet status line.
func NewReportPanel(env wizard.Env, model *Model, deviceName string) *ReportPanel {
	p := &ReportPanel{
		PanelView: wizard.NewPanelView[*Model](env, PanelReport,
			i18n.CreateWalletReportTitle, wizard.AddExitCancelPreviousFinish),
		deviceName: deviceName,
	}
	p.SetModel(model)
	return p
}

// NewComponentPanel implements wizard.Panel.
func (p *ReportPanel) NewComponentPanel() *view.Panel {
	content := p.NewContentPanel()
	content.AddField(FieldWalletStatus, "")
	content.AddField(FieldBackupStatus, "")
	p.UpdateViewFromModel()
	return content
}

// UpdateViewFromModel fills the status lines from the wizard model.
func (p *ReportPanel) UpdateViewFromModel() {
	m, ok := p.Model()
	content := p.CurrentComponentPanel()
	if !ok || content == nil {
		return
	}
	loc := p.Env().Localizer

	wallet := loc.Lookup(i18n.TrezorWipeFailed)
	if m.WalletCreated {
		wallet = loc.Lookup(i18n.TrezorWalletCreated, p.deviceName)
	}
	content.SetText(FieldWalletStatus, wallet)

	backup := loc.Lookup(i18n.CloudBackupSkipped)
	if m.BackupLocation != "" {
		backup = loc.Lookup(i18n.CloudBackupEnabled, m.BackupLocation)
	}
	content.SetText(FieldBackupStatus, backup)
}

// FireInitialStateViewEvents allows finishing only once a wallet exists.
func (p *ReportPanel) FireInitialStateViewEvents(ctx context.Context) {
	created := false
	if m, ok := p.Model(); ok {
		created = m.WalletCreated
	}
	p.Env().Notifier.FireWizardButtonEnabled(ctx, p.Name(), wizard.ButtonFinish, created)
}
