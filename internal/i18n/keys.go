package i18n

// MessageKey is the symbolic name of a localized message.
type MessageKey string

// Message keys used by the wallet views.
const (
	// Wizard titles
	SelectBackupLocationTitle MessageKey = "select_backup_location_title"
	TrezorPressConfirmTitle   MessageKey = "trezor_press_confirm_title"
	CreateWalletReportTitle   MessageKey = "create_wallet_report_title"

	// Panel content
	SelectBackupDirectoryNote MessageKey = "select_backup_directory_note"
	BackupLocation            MessageKey = "backup_location"
	SelectFile                MessageKey = "select_file"
	CloudBackupSkipped        MessageKey = "cloud_backup_skipped"
	CloudBackupEnabled        MessageKey = "cloud_backup_enabled"

	// Device display
	TrezorPressConfirmOperation MessageKey = "trezor_press_confirm_operation"
	TrezorWipeConfirmDisplay    MessageKey = "trezor_wipe_confirm_display"
	TrezorWipeInProgress        MessageKey = "trezor_wipe_in_progress"
	TrezorWipeFailed            MessageKey = "trezor_wipe_failed"
	TrezorWalletCreated         MessageKey = "trezor_wallet_created"

	// Buttons
	ButtonExit     MessageKey = "button_exit"
	ButtonCancel   MessageKey = "button_cancel"
	ButtonPrevious MessageKey = "button_previous"
	ButtonNext     MessageKey = "button_next"
	ButtonFinish   MessageKey = "button_finish"
	ButtonApply    MessageKey = "button_apply"
	ButtonRestore  MessageKey = "button_restore"

	// Status
	ProgressLoading  MessageKey = "progress_loading"
	ProgressDone     MessageKey = "progress_done"
	StatusConfigLoad MessageKey = "status_config_reloaded"
	RestartRequired  MessageKey = "restart_required"
)
