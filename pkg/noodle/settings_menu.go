package noodle

import (
	"github.com/pawndev/noodle/pkg/noodle/config"
	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/core"
	"github.com/pawndev/noodle/pkg/noodle/i18n"
)

var (
	msgSettingDirectBoot        = &i18n.Message{ID: "setting_direct_boot", Other: "Direct Boot"}
	msgSettingFPSLimiter        = &i18n.Message{ID: "setting_fps_limiter", Other: "FPS Limiter"}
	msgSettingROMInRAM          = &i18n.Message{ID: "setting_rom_in_ram", Other: "Keep ROM in RAM"}
	msgSettingThreaded2D        = &i18n.Message{ID: "setting_threaded_2d", Other: "Threaded 2D"}
	msgSettingThreaded3D        = &i18n.Message{ID: "setting_threaded_3d", Other: "Threaded 3D"}
	msgSettingHighRes3D         = &i18n.Message{ID: "setting_high_res_3d", Other: "High-Resolution 3D"}
	msgSettingShowFPS           = &i18n.Message{ID: "setting_show_fps", Other: "Show FPS Counter"}
	msgSettingSavesFolder       = &i18n.Message{ID: "setting_saves_folder", Other: "Separate Saves Folder"}
	msgSettingStatesFolder      = &i18n.Message{ID: "setting_states_folder", Other: "Separate States Folder"}
	msgSettingCheatsFolder      = &i18n.Message{ID: "setting_cheats_folder", Other: "Separate Cheats Folder"}
	msgSettingScreenPosition    = &i18n.Message{ID: "setting_screen_position", Other: "Screen Position"}
	msgSettingScreenRotation    = &i18n.Message{ID: "setting_screen_rotation", Other: "Screen Rotation"}
	msgSettingScreenArrangement = &i18n.Message{ID: "setting_screen_arrangement", Other: "Screen Arrangement"}
	msgSettingScreenSizing      = &i18n.Message{ID: "setting_screen_sizing", Other: "Screen Sizing"}
	msgSettingScreenGap         = &i18n.Message{ID: "setting_screen_gap", Other: "Screen Gap"}
	msgSettingScreenFilter      = &i18n.Message{ID: "setting_screen_filter", Other: "Screen Filter"}
	msgSettingAspectRatio       = &i18n.Message{ID: "setting_aspect_ratio", Other: "Aspect Ratio"}
	msgSettingIntegerScale      = &i18n.Message{ID: "setting_integer_scale", Other: "Integer Scale"}
	msgSettingGBACrop           = &i18n.Message{ID: "setting_gba_crop", Other: "GBA Crop"}
	msgSettingScreenGhost       = &i18n.Message{ID: "setting_screen_ghost", Other: "Simulate Ghosting"}
	msgSettingMenuTheme         = &i18n.Message{ID: "setting_menu_theme", Other: "Menu Theme"}
	msgSettingLanguage          = &i18n.Message{ID: "setting_language", Other: "Language"}

	msgValueOff                   = &i18n.Message{ID: "value_off", Other: "Off"}
	msgValueOn                    = &i18n.Message{ID: "value_on", Other: "On"}
	msgValueThreadsDisabled       = &i18n.Message{ID: "value_threads_disabled", Other: "Disabled"}
	msgValueThreads1              = &i18n.Message{ID: "value_threads_1", Other: "1 Thread"}
	msgValueThreads2              = &i18n.Message{ID: "value_threads_2", Other: "2 Threads"}
	msgValuePositionCenter        = &i18n.Message{ID: "value_position_center", Other: "Center"}
	msgValuePositionTop           = &i18n.Message{ID: "value_position_top", Other: "Top"}
	msgValuePositionBottom        = &i18n.Message{ID: "value_position_bottom", Other: "Bottom"}
	msgValuePositionLeft          = &i18n.Message{ID: "value_position_left", Other: "Left"}
	msgValuePositionRight         = &i18n.Message{ID: "value_position_right", Other: "Right"}
	msgValueRotationNone          = &i18n.Message{ID: "value_rotation_none", Other: "None"}
	msgValueRotationCW            = &i18n.Message{ID: "value_rotation_cw", Other: "Clockwise"}
	msgValueRotationCCW           = &i18n.Message{ID: "value_rotation_ccw", Other: "Counter-Clockwise"}
	msgValueArrangementAuto       = &i18n.Message{ID: "value_arrangement_auto", Other: "Automatic"}
	msgValueArrangementVertical   = &i18n.Message{ID: "value_arrangement_vertical", Other: "Vertical"}
	msgValueArrangementHorizontal = &i18n.Message{ID: "value_arrangement_horizontal", Other: "Horizontal"}
	msgValueArrangementSingle     = &i18n.Message{ID: "value_arrangement_single", Other: "Single Screen"}
	msgValueSizingEven            = &i18n.Message{ID: "value_sizing_even", Other: "Even"}
	msgValueSizingTop             = &i18n.Message{ID: "value_sizing_top", Other: "Enlarge Top"}
	msgValueSizingBottom          = &i18n.Message{ID: "value_sizing_bottom", Other: "Enlarge Bottom"}
	msgValueGapNone               = &i18n.Message{ID: "value_gap_none", Other: "None"}
	msgValueGapQuarter            = &i18n.Message{ID: "value_gap_quarter", Other: "Quarter"}
	msgValueGapHalf               = &i18n.Message{ID: "value_gap_half", Other: "Half"}
	msgValueGapFull               = &i18n.Message{ID: "value_gap_full", Other: "Full"}
	msgValueFilterNearest         = &i18n.Message{ID: "value_filter_nearest", Other: "Nearest"}
	msgValueFilterUpscaled        = &i18n.Message{ID: "value_filter_upscaled", Other: "Upscaled"}
	msgValueFilterLinear          = &i18n.Message{ID: "value_filter_linear", Other: "Linear"}
	msgValueAspectDefault         = &i18n.Message{ID: "value_aspect_default", Other: "Default"}
	msgValueAspect1610            = &i18n.Message{ID: "value_aspect_16_10", Other: "16:10"}
	msgValueAspect169             = &i18n.Message{ID: "value_aspect_16_9", Other: "16:9"}
	msgValueAspect189             = &i18n.Message{ID: "value_aspect_18_9", Other: "18:9"}
	msgValueThemeDark             = &i18n.Message{ID: "value_theme_dark", Other: "Dark"}
	msgValueThemeLight            = &i18n.Message{ID: "value_theme_light", Other: "Light"}
	msgValueLanguageEn            = &i18n.Message{ID: "value_language_en", Other: "English"}
	msgValueLanguageEs            = &i18n.Message{ID: "value_language_es", Other: "Español"}
)

var (
	toggleValues      = []*i18n.Message{msgValueOff, msgValueOn}
	threadValues      = []*i18n.Message{msgValueThreadsDisabled, msgValueThreads1, msgValueThreads2}
	positionValues    = []*i18n.Message{msgValuePositionCenter, msgValuePositionTop, msgValuePositionBottom, msgValuePositionLeft, msgValuePositionRight}
	rotationValues    = []*i18n.Message{msgValueRotationNone, msgValueRotationCW, msgValueRotationCCW}
	arrangementValues = []*i18n.Message{msgValueArrangementAuto, msgValueArrangementVertical, msgValueArrangementHorizontal, msgValueArrangementSingle}
	sizingValues      = []*i18n.Message{msgValueSizingEven, msgValueSizingTop, msgValueSizingBottom}
	gapValues         = []*i18n.Message{msgValueGapNone, msgValueGapQuarter, msgValueGapHalf, msgValueGapFull}
	filterValues      = []*i18n.Message{msgValueFilterNearest, msgValueFilterUpscaled, msgValueFilterLinear}
	aspectValues      = []*i18n.Message{msgValueAspectDefault, msgValueAspect1610, msgValueAspect169, msgValueAspect189}
	themeValues       = []*i18n.Message{msgValueThemeDark, msgValueThemeLight}
	languageValues    = []*i18n.Message{msgValueLanguageEn, msgValueLanguageEs}
	themeNames        = []string{"dark", "light"}
	languageCodes     = []string{"en", "es"}
)

// setting is one row of the settings menu. A cycles value through values.
type setting struct {
	label  *i18n.Message
	values []*i18n.Message
	get    func(*config.Config) int
	set    func(*Session, int)
}

func intSetting(label *i18n.Message, values []*i18n.Message, field func(*config.EmulationConfig) *int) setting {
	return setting{
		label:  label,
		values: values,
		get:    func(c *config.Config) int { return *field(&c.Emulation) },
		set:    func(s *Session, v int) { *field(&s.cfg.Emulation) = v },
	}
}

var settings = []setting{
	intSetting(msgSettingDirectBoot, toggleValues, func(e *config.EmulationConfig) *int { return &e.DirectBoot }),
	intSetting(msgSettingFPSLimiter, toggleValues, func(e *config.EmulationConfig) *int { return &e.FPSLimiter }),
	intSetting(msgSettingROMInRAM, toggleValues, func(e *config.EmulationConfig) *int { return &e.ROMInRAM }),
	intSetting(msgSettingThreaded2D, toggleValues, func(e *config.EmulationConfig) *int { return &e.Threaded2D }),
	intSetting(msgSettingThreaded3D, threadValues, func(e *config.EmulationConfig) *int { return &e.Threaded3D }),
	intSetting(msgSettingHighRes3D, toggleValues, func(e *config.EmulationConfig) *int { return &e.HighRes3D }),
	{
		label:  msgSettingShowFPS,
		values: toggleValues,
		get:    func(c *config.Config) int { return c.UI.ShowFPSCounter },
		set:    func(s *Session, v int) { s.cfg.UI.ShowFPSCounter = v },
	},
	intSetting(msgSettingSavesFolder, toggleValues, func(e *config.EmulationConfig) *int { return &e.SavesFolder }),
	intSetting(msgSettingStatesFolder, toggleValues, func(e *config.EmulationConfig) *int { return &e.StatesFolder }),
	intSetting(msgSettingCheatsFolder, toggleValues, func(e *config.EmulationConfig) *int { return &e.CheatsFolder }),
	intSetting(msgSettingScreenPosition, positionValues, func(e *config.EmulationConfig) *int { return &e.ScreenPosition }),
	intSetting(msgSettingScreenRotation, rotationValues, func(e *config.EmulationConfig) *int { return &e.ScreenRotation }),
	intSetting(msgSettingScreenArrangement, arrangementValues, func(e *config.EmulationConfig) *int { return &e.ScreenArrangement }),
	intSetting(msgSettingScreenSizing, sizingValues, func(e *config.EmulationConfig) *int { return &e.ScreenSizing }),
	intSetting(msgSettingScreenGap, gapValues, func(e *config.EmulationConfig) *int { return &e.ScreenGap }),
	intSetting(msgSettingScreenFilter, filterValues, func(e *config.EmulationConfig) *int { return &e.ScreenFilter }),
	intSetting(msgSettingAspectRatio, aspectValues, func(e *config.EmulationConfig) *int { return &e.AspectRatio }),
	intSetting(msgSettingIntegerScale, toggleValues, func(e *config.EmulationConfig) *int { return &e.IntegerScale }),
	intSetting(msgSettingGBACrop, toggleValues, func(e *config.EmulationConfig) *int { return &e.GBACrop }),
	intSetting(msgSettingScreenGhost, toggleValues, func(e *config.EmulationConfig) *int { return &e.ScreenGhost }),
	{
		label:  msgSettingMenuTheme,
		values: themeValues,
		get:    func(c *config.Config) int { return indexOf(themeNames, c.UI.Theme) },
		set: func(s *Session, v int) {
			s.cfg.UI.Theme = themeNames[v]
			s.ctx.SetTheme(themeNames[v])
		},
	},
	{
		label:  msgSettingLanguage,
		values: languageValues,
		get:    func(c *config.Config) int { return indexOf(languageCodes, c.UI.Language) },
		set: func(s *Session, v int) {
			s.cfg.UI.Language = languageCodes[v]
			if err := i18n.SetWithCode(languageCodes[v]); err != nil {
				s.logger.Error("Failed to switch language", "language", languageCodes[v], "error", err)
			}
		},
	},
}

func indexOf(values []string, v string) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return 0
}

// value returns the displayed text, treating out of range values as the first option.
func (st setting) value(c *config.Config) string {
	v := st.get(c)
	if v < 0 || v >= len(st.values) {
		v = 0
	}
	return localize(st.values[v])
}

func (st setting) cycle(s *Session) {
	v := st.get(s.cfg)
	if v < 0 || v >= len(st.values) {
		v = 0
	}
	st.set(s, (v+1)%len(st.values))
}

// SettingsMenu edits the configuration. Leaving with B saves it.
func (s *Session) SettingsMenu() error {
	index := 0
	for {
		items := make([]MenuItem, len(settings))
		for i, st := range settings {
			items[i] = MenuItem{Name: localize(st.label), Setting: st.value(s.cfg)}
		}

		sel, err := RunMenu(s.ctx, MenuOptions{
			Title:   localize(msgTitleSettings),
			Items:   items,
			Index:   index,
			ActionX: localize(msgControls),
		})
		if err != nil {
			return err
		}
		index = sel.Index

		switch {
		case sel.Pressed.Has(constants.ButtonA):
			settings[index].cycle(s)
			s.logger.Debug("Setting changed", "setting", settings[index].label.ID, "value", settings[index].value(s.cfg))
		case sel.Pressed.Has(constants.ButtonB):
			s.applySettings()
			s.saveConfig()
			return nil
		case sel.Pressed.Has(constants.ButtonX):
			if err := s.ControlsMenu(); err != nil {
				return err
			}
		}
	}
}

func (s *Session) applySettings() {
	if c := s.runner.Core(); c != nil {
		c.SetFPSLimiter(s.cfg.Emulation.FPSLimiter != 0)
	}
}

// ControlsMenu remaps the core keys. A adds the next pressed buttons to a
// key's binding and X clears it.
func (s *Session) ControlsMenu() error {
	keys := core.Keys()
	index := 0
	for {
		items := make([]MenuItem, len(keys))
		for i, key := range keys {
			items[i] = MenuItem{Name: key.Label(), Setting: s.bindings.Describe(key)}
		}

		sel, err := RunMenu(s.ctx, MenuOptions{
			Title:   localize(msgTitleControls),
			Items:   items,
			Index:   index,
			ActionX: localize(msgClear),
		})
		if err != nil {
			return err
		}
		index = sel.Index
		key := keys[index]

		switch {
		case sel.Pressed.Has(constants.ButtonA):
			title := localizeWith(msgRemapTitle, map[string]interface{}{"Name": key.Label()})
			mask, err := MessagePrompt(s.ctx, title, localize(msgRemapText))
			if err != nil {
				return err
			}
			s.bindings[key] |= mask
		case sel.Pressed.Has(constants.ButtonB):
			s.cfg.SetBindings(s.bindings)
			return nil
		case sel.Pressed.Has(constants.ButtonX):
			s.bindings[key] = constants.ButtonNone
		}
	}
}
