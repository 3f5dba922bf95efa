// Package welcome holds the panels of the create hardware wallet wizard.
package welcome

// Panel names.
const (
	PanelSelectBackupLocation = "create_trezor_wallet.select_backup_location"
	PanelConfirmCreateWallet  = "create_trezor_wallet.confirm_create_wallet"
)

// Model is shared by every panel of the wizard.
type Model struct {
	// BackupLocation is the folder chosen for cloud backups. Empty skips
	// cloud backups.
	BackupLocation string

	// WalletCreated is set once the device confirmed the wipe.
	WalletCreated bool
}
