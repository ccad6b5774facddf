package noodle

import (
	"fmt"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/core"
)

const (
	pauseResume = iota
	pauseRestart
	pauseSaveState
	pauseLoadState
	pauseSaveType
	pauseSettings
	pauseFileBrowser
)

func pauseItems() []MenuItem {
	return []MenuItem{
		{Name: localize(msgPauseResume)},
		{Name: localize(msgPauseRestart)},
		{Name: localize(msgPauseSaveState)},
		{Name: localize(msgPauseLoadState)},
		{Name: localize(msgPauseSaveType)},
		{Name: localize(msgPauseSettings)},
		{Name: localize(msgPauseFileBrowser)},
	}
}

// PauseMenu stops emulation until the user resumes, restarts or picks
// another ROM.
func (s *Session) PauseMenu() error {
	s.stopCore()
	c := s.runner.Core()
	if c == nil {
		return s.FileBrowser()
	}

	index := 0
	for {
		sel, err := RunMenu(s.ctx, MenuOptions{
			Title: browserTitle,
			Items: pauseItems(),
			Index: index,
		})
		if err != nil {
			return err
		}
		index = sel.Index

		if sel.Pressed.Has(constants.ButtonB) {
			s.startCore()
			return nil
		}
		if !sel.Pressed.Has(constants.ButtonA) {
			continue
		}

		switch index {
		case pauseResume:
			s.startCore()
			return nil
		case pauseRestart:
			return s.restart()
		case pauseSaveState:
			done, err := s.saveState(c)
			if err != nil || done {
				return err
			}
		case pauseLoadState:
			done, err := s.loadState(c)
			if err != nil || done {
				return err
			}
		case pauseSaveType:
			changed, err := s.SaveTypeMenu()
			if err != nil {
				return err
			}
			if changed {
				return s.restart()
			}
		case pauseSettings:
			if err := s.SettingsMenu(); err != nil {
				return err
			}
		case pauseFileBrowser:
			return s.FileBrowser()
		}
	}
}

// restart reboots the loaded ROMs, falling back to the file browser.
func (s *Session) restart() error {
	booted, err := s.createCore()
	if err != nil {
		return err
	}
	if !booted {
		return s.FileBrowser()
	}
	s.startCore()
	return nil
}

func (s *Session) saveState(c core.Core) (bool, error) {
	text := localize(msgSaveStateOverwrite)
	if c.CheckState() == core.StateFileMissing {
		text = localize(msgSaveStateWarning)
	}
	confirmed, err := Message(s.ctx, localize(msgPauseSaveState), text, true)
	if err != nil || !confirmed {
		return false, err
	}

	_, err = ProcessMessage(s.ctx, localize(msgPauseSaveState), localize(msgSavingStateText), func() (struct{}, error) {
		return struct{}{}, c.SaveState()
	})
	if err != nil {
		s.logger.Error("Failed to save state", "error", err)
		_, err := Message(s.ctx, localize(msgErrorTitle), err.Error(), false)
		return false, err
	}
	s.startCore()
	return true, nil
}

func (s *Session) loadState(c core.Core) (bool, error) {
	title := localize(msgErrorTitle)
	var text string
	status := c.CheckState()
	switch status {
	case core.StateOK:
		title, text = localize(msgPauseLoadState), localize(msgLoadStateText)
	case core.StateFileMissing:
		text = localize(msgStateMissing)
	case core.StateBadFormat:
		text = localize(msgStateBadFormat)
	case core.StateBadVersion:
		text = localize(msgStateBadVersion)
	default:
		text = fmt.Sprintf("unexpected state status %s", status)
	}

	confirmed, err := Message(s.ctx, title, text, status == core.StateOK)
	if err != nil || !confirmed || status != core.StateOK {
		return false, err
	}

	if err := c.LoadState(); err != nil {
		s.logger.Error("Failed to load state", "error", err)
		_, err := Message(s.ctx, localize(msgErrorTitle), err.Error(), false)
		return false, err
	}
	s.startCore()
	return true, nil
}

// SaveTypeMenu resizes the cartridge save after confirmation. It reports
// whether the save changed, in which case the core must be rebooted.
func (s *Session) SaveTypeMenu() (bool, error) {
	c := s.runner.Core()
	if c == nil {
		return false, nil
	}

	types := core.SaveTypes(c.GBAMode())
	items := make([]MenuItem, len(types))
	for i, t := range types {
		items[i] = MenuItem{Name: t.Name}
	}

	index := 0
	for {
		sel, err := RunMenu(s.ctx, MenuOptions{
			Title: localize(msgTitleSaveType),
			Items: items,
			Index: index,
		})
		if err != nil {
			return false, err
		}
		index = sel.Index

		switch {
		case sel.Pressed.Has(constants.ButtonA):
			confirmed, err := Message(s.ctx, localize(msgSaveTypeConfirmTitle), localize(msgSaveTypeConfirmText), true)
			if err != nil {
				return false, err
			}
			if !confirmed {
				continue
			}

			chosen := types[index]
			if err := c.ResizeSave(chosen.Size); err != nil {
				return false, fmt.Errorf("resize save to %s: %w", chosen.Name, err)
			}
			if err := c.WriteSaves(); err != nil {
				return false, fmt.Errorf("write resized save: %w", err)
			}
			s.logger.Info("Save type changed", "type", chosen.Name, "size", chosen.Size)
			return true, nil
		case sel.Pressed.Has(constants.ButtonB):
			return false, nil
		}
	}
}
