package noodle

import "github.com/pawndev/noodle/pkg/noodle/i18n"

var (
	msgOK       = &i18n.Message{ID: "action_ok", Other: "OK"}
	msgBack     = &i18n.Message{ID: "action_back", Other: "Back"}
	msgSettings = &i18n.Message{ID: "action_settings", Other: "Settings"}
	msgExit     = &i18n.Message{ID: "action_exit", Other: "Exit"}
	msgControls = &i18n.Message{ID: "action_controls", Other: "Controls"}
	msgClear    = &i18n.Message{ID: "action_clear", Other: "Clear"}

	msgTitleSettings = &i18n.Message{ID: "title_settings", Other: "Settings"}
	msgTitleControls = &i18n.Message{ID: "title_controls", Other: "Controls"}
	msgTitleSaveType = &i18n.Message{ID: "title_save_type", Other: "Change Save Type"}

	msgPauseResume      = &i18n.Message{ID: "pause_resume", Other: "Resume"}
	msgPauseRestart     = &i18n.Message{ID: "pause_restart", Other: "Restart"}
	msgPauseSaveState   = &i18n.Message{ID: "pause_save_state", Other: "Save State"}
	msgPauseLoadState   = &i18n.Message{ID: "pause_load_state", Other: "Load State"}
	msgPauseSaveType    = &i18n.Message{ID: "pause_save_type", Other: "Change Save Type"}
	msgPauseSettings    = &i18n.Message{ID: "pause_settings", Other: "Settings"}
	msgPauseFileBrowser = &i18n.Message{ID: "pause_file_browser", Other: "File Browser"}

	msgLoadNDSTitle = &i18n.Message{ID: "load_nds_title", Other: "Loading NDS ROM"}
	msgLoadNDSText  = &i18n.Message{ID: "load_nds_text", Other: "Load the previous GBA ROM alongside this ROM?"}
	msgLoadGBATitle = &i18n.Message{ID: "load_gba_title", Other: "Loading GBA ROM"}
	msgLoadGBAText  = &i18n.Message{ID: "load_gba_text", Other: "Load the previous NDS ROM alongside this ROM?"}

	msgBIOSErrorTitle     = &i18n.Message{ID: "bios_error_title", Other: "Error Loading BIOS"}
	msgBIOSErrorText      = &i18n.Message{ID: "bios_error_text", Other: "Make sure the path settings point to valid BIOS files and try again.\nYou can modify the path settings in the {{.File}} file."}
	msgFirmwareErrorTitle = &i18n.Message{ID: "firmware_error_title", Other: "Error Loading Firmware"}
	msgFirmwareErrorText  = &i18n.Message{ID: "firmware_error_text", Other: "Make sure the path settings point to a bootable firmware file or try another boot method.\nYou can modify the path settings in the {{.File}} file."}
	msgROMErrorTitle      = &i18n.Message{ID: "rom_error_title", Other: "Error Loading ROM"}
	msgROMErrorText       = &i18n.Message{ID: "rom_error_text", Other: "Make sure the ROM file is accessible and try again."}

	msgSaveStateWarning   = &i18n.Message{ID: "save_state_warning", Other: "Saving and loading states is dangerous and can lead to data loss.\nStates are also not guaranteed to be compatible across emulator versions.\nPlease rely on in-game saving to keep your progress, and back up .sav files\nbefore using this feature. Do you want to save the current state?"}
	msgSaveStateOverwrite = &i18n.Message{ID: "save_state_overwrite", Other: "Do you want to overwrite the saved state with the current state? This can't be undone!"}
	msgLoadStateText      = &i18n.Message{ID: "load_state_text", Other: "Do you want to load the saved state and lose the current state? This can't be undone!"}
	msgErrorTitle         = &i18n.Message{ID: "error_title", Other: "Error"}
	msgStateMissing       = &i18n.Message{ID: "state_missing", Other: "The state file doesn't exist or couldn't be opened."}
	msgStateBadFormat     = &i18n.Message{ID: "state_bad_format", Other: "The state file doesn't have a valid format."}
	msgStateBadVersion    = &i18n.Message{ID: "state_bad_version", Other: "The state file isn't compatible with this version of the emulator."}

	msgSaveTypeConfirmTitle = &i18n.Message{ID: "save_type_confirm_title", Other: "Changing Save Type"}
	msgSaveTypeConfirmText  = &i18n.Message{ID: "save_type_confirm_text", Other: "Are you sure? This may result in data loss!"}

	msgBootingText     = &i18n.Message{ID: "booting_text", Other: "Starting the emulator..."}
	msgSavingStateText = &i18n.Message{ID: "saving_state_text", Other: "Saving state..."}

	msgRemapTitle = &i18n.Message{ID: "remap_title", Other: "Remap {{.Name}}"}
	msgRemapText  = &i18n.Message{ID: "remap_text", Other: "Press an input to add it as a binding."}
)

func localize(m *i18n.Message) string {
	return i18n.Localize(m, nil)
}

func localizeWith(m *i18n.Message, data map[string]interface{}) string {
	return i18n.Localize(m, data)
}
