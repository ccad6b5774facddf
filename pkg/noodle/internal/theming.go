package internal

import "sync"

// Theme is the six colour menu palette.
type Theme struct {
	BackgroundColor Color // clear colour and row text background
	TextColor       Color // title, names, rules
	SeparatorColor  Color // row separators
	HighlightColor  Color // selected row background
	BorderColor     Color // selected row border
	SettingColor    Color // right-aligned setting values
}

var DarkTheme = Theme{
	BackgroundColor: 0xFF2D2D2D,
	TextColor:       0xFFFFFFFF,
	SeparatorColor:  0xFF4B4B4B,
	HighlightColor:  0xFF232323,
	BorderColor:     0xFFE1B955,
	SettingColor:    0xFFC8FF00,
}

var LightTheme = Theme{
	BackgroundColor: 0xFFEBEBEB,
	TextColor:       0xFF2D2D2D,
	SeparatorColor:  0xFFCDCDCD,
	HighlightColor:  0xFFFFFFFF,
	BorderColor:     0xFFD2D732,
	SettingColor:    0xFFF05032,
}

var (
	themesMu sync.RWMutex
	themes   = map[string]Theme{
		"dark":  DarkTheme,
		"light": LightTheme,
	}
)

// RegisterTheme makes a palette selectable by name, replacing any previous one.
func RegisterTheme(name string, theme Theme) {
	themesMu.Lock()
	defer themesMu.Unlock()
	themes[name] = theme
}

// ThemeByName returns the registered theme, or the dark theme for unknown names.
func ThemeByName(name string) Theme {
	themesMu.RLock()
	defer themesMu.RUnlock()
	if theme, ok := themes[name]; ok {
		return theme
	}
	return DarkTheme
}
