package welcome

import (
	"context"

	"github.com/dshills/walletview/internal/device"
	"github.com/dshills/walletview/internal/i18n"
	"github.com/dshills/walletview/internal/view"
	"github.com/dshills/walletview/internal/view/components/devicedisplay"
	"github.com/dshills/walletview/internal/wizard"
)

// WipeOperation names the device operation confirmed on this panel.
const WipeOperation = "wipe_device"

// ConfirmCreateWalletPanel asks the user to confirm wiping the device.
// Leaving towards the next panel is deferred until the device reports
// success; Exit and Cancel are never blocked.
type ConfirmCreateWalletPanel struct {
	*wizard.PanelView[*Model]

	display   *view.ModelAndView[*devicedisplay.Model, *devicedisplay.View]
	confirmer device.Confirmer
	confirmed bool
}

// NewConfirmCreateWalletPanel creates the panel. Device output is mirrored
// to display and confirmation is requested from confirmer.
func NewConfirmCreateWalletPanel(env wizard.Env, model *Model, display device.Display, confirmer device.Confirmer) *ConfirmCreateWalletPanel {
	p := &ConfirmCreateWalletPanel{
		PanelView: wizard.NewPanelView[*Model](env, PanelConfirmCreateWallet,
			i18n.TrezorPressConfirmTitle, wizard.AddExitCancelNext),
		confirmer: confirmer,
	}
	p.SetModel(model)

	p.display = devicedisplay.NewModelAndView(PanelConfirmCreateWallet, env.Localizer, display, env.Logger)
	p.RegisterComponents(p.display)
	return p
}

// DisplayView returns the device display component.
func (p *ConfirmCreateWalletPanel) DisplayView() *devicedisplay.View {
	return p.display.View()
}

// Confirmed reports whether the device confirmed the wipe.
func (p *ConfirmCreateWalletPanel) Confirmed() bool {
	return p.confirmed
}

// NewComponentPanel implements wizard.Panel.
func (p *ConfirmCreateWalletPanel) NewComponentPanel() *view.Panel {
	content := p.NewContentPanel()
	content.AddChild(p.display.View().NewComponentPanel())
	return content
}

// AfterShow prompts the user and asks the device for confirmation. The
// work is queued so that it runs after the wizard has finished showing.
func (p *ConfirmCreateWalletPanel) AfterShow(context.Context) {
	p.later(p.Generation(), func(ctx context.Context) {
		p.display.View().SetOperationText(i18n.TrezorPressConfirmOperation)
		p.display.View().SetDisplayText(i18n.TrezorWipeConfirmDisplay)

		// The device buttons drive this panel.
		p.SetButtonEnabled(wizard.ButtonNext, false)

		p.requestWipe(ctx)
	})
}

// BeforeHide blocks moving on until the wipe was confirmed.
func (p *ConfirmCreateWalletPanel) BeforeHide(isExitCancel bool) bool {
	return isExitCancel || p.confirmed
}

// SetDisplayVisible shows or hides the device display.
func (p *ConfirmCreateWalletPanel) SetDisplayVisible(visible bool) {
	p.display.View().SetDisplayVisible(visible)
}

// DisableForWipe locks the panel while the device wipes. UI loop only.
func (p *ConfirmCreateWalletPanel) DisableForWipe(ctx context.Context) {
	p.Env().Loop.MustBeOnLoop(ctx, "disable for wipe")

	p.SetButtonEnabled(wizard.ButtonNext, false)
	p.SetButtonEnabled(wizard.ButtonExit, false)
	p.display.View().SetSpinnerVisible(true)
}

// EnableForFailedWipe lets the user leave after a failed wipe. UI loop only.
func (p *ConfirmCreateWalletPanel) EnableForFailedWipe(ctx context.Context) {
	p.Env().Loop.MustBeOnLoop(ctx, "enable for failed wipe")

	p.SetButtonEnabled(wizard.ButtonNext, false)
	p.SetButtonEnabled(wizard.ButtonExit, true)
	p.display.View().SetSpinnerVisible(false)
	p.Env().Notifier.FireWizardButtonEnabled(ctx, p.Name(), wizard.ButtonExit, true)
}

func (p *ConfirmCreateWalletPanel) requestWipe(ctx context.Context) {
	token := p.Generation()
	err := p.confirmer.RequestConfirmation(ctx, WipeOperation, device.Callbacks{
		Pressed: func(string) {
			p.later(token, p.onPressed)
		},
		Done: func(res device.Result) {
			p.later(token, func(ctx context.Context) { p.onDone(ctx, res) })
		},
	})
	if err != nil {
		p.Logger().Warn().Err(err).Msg("device confirmation request failed")
		p.EnableForFailedWipe(ctx)
		p.display.View().SetDisplayText(i18n.TrezorWipeFailed)
	}
}

func (p *ConfirmCreateWalletPanel) onPressed(ctx context.Context) {
	p.DisableForWipe(ctx)
	p.display.View().SetDisplayText(i18n.TrezorWipeInProgress)
}

func (p *ConfirmCreateWalletPanel) onDone(ctx context.Context, res device.Result) {
	if res.Outcome != device.OutcomeConfirmed {
		p.Logger().Warn().Err(res.Err).Stringer("outcome", res.Outcome).Msg("device wipe not completed")
		p.EnableForFailedWipe(ctx)
		p.display.View().SetDisplayText(i18n.TrezorWipeFailed)
		return
	}

	p.confirmed = true
	if m, ok := p.Model(); ok {
		m.WalletCreated = true
	}
	p.display.View().SetSpinnerVisible(false)
	p.display.View().SetDisplayText(i18n.ProgressDone)
	p.SetButtonEnabled(wizard.ButtonExit, true)
	p.Env().Notifier.FireWizardButtonEnabled(ctx, p.Name(), wizard.ButtonNext, true)
}

// later runs fn on the UI loop unless the panel was hidden or disposed
// after token was taken.
func (p *ConfirmCreateWalletPanel) later(token uint64, fn func(ctx context.Context)) {
	err := p.Env().Loop.Post(func(ctx context.Context) {
		if !p.Alive(token) {
			p.Logger().Debug().Msg("stale panel callback ignored")
			return
		}
		fn(ctx)
	})
	if err != nil {
		p.Logger().Warn().Err(err).Msg("panel callback not scheduled")
	}
}
