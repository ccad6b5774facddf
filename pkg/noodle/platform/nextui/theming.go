package nextui

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/internal"
)

const (
	ThemeName = "nextui"

	// PowerDevice is the evdev node carrying KEY_POWER on the TG5040.
	PowerDevice = "/dev/input/event1"

	NextValPathEnvVar = "NEXTVAL_PATH"

	nextValExec = "/mnt/SDCARD/.system/tg5040/bin/nextval.elf"
)

// NextVal is the subset of the NextUI settings dump the menus use.
type NextVal struct {
	Font    int    `json:"font"`
	Color1  string `json:"color1"`
	Color2  string `json:"color2"`
	Color3  string `json:"color3"`
	Color4  string `json:"color4"`
	Color5  string `json:"color5"`
	Color6  string `json:"color6"`
	BGColor string `json:"bgcolor"`
}

var defaultTheme = internal.Theme{
	BackgroundColor: internal.HexToColor(0x000000),
	TextColor:       internal.HexToColor(0xFFFFFF),
	SeparatorColor:  internal.HexToColor(0x3C3C3C),
	HighlightColor:  internal.HexToColor(0x1E2329),
	BorderColor:     internal.HexToColor(0x9B2257),
	SettingColor:    internal.HexToColor(0xFFFFFF),
}

// Register reads the NextUI colours and makes them selectable as ThemeName.
// The NextUI defaults are registered when the settings cannot be read.
func Register(logger *slog.Logger) internal.Theme {
	var (
		nv  *NextVal
		err error
	)
	if constants.IsDevMode() {
		nv, err = LoadStaticNextVal(os.Getenv(NextValPathEnvVar))
	} else {
		nv, err = loadNextVal()
	}

	theme := defaultTheme
	if err != nil {
		logger.Warn("Failed to read NextUI settings, using default colours", "error", err)
	} else {
		theme = ThemeFromNextVal(nv)
	}
	internal.RegisterTheme(ThemeName, theme)
	return theme
}

func ThemeFromNextVal(nv *NextVal) internal.Theme {
	return internal.Theme{
		BackgroundColor: parseHexColor(nv.BGColor),
		TextColor:       parseHexColor(nv.Color4),
		SeparatorColor:  parseHexColor(nv.Color6),
		HighlightColor:  parseHexColor(nv.Color3),
		BorderColor:     parseHexColor(nv.Color2),
		SettingColor:    parseHexColor(nv.Color1),
	}
}

func LoadStaticNextVal(filePath string) (*NextVal, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return parseNextVal(data)
}

func loadNextVal() (*NextVal, error) {
	output, err := exec.Command(nextValExec).Output()
	if err != nil {
		return nil, fmt.Errorf("run nextval: %w", err)
	}
	return parseNextVal(output)
}

func parseNextVal(data []byte) (*NextVal, error) {
	var nextval NextVal
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &nextval); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	return &nextval, nil
}

// parseHexColor reads "0xRRGGBB" or "RRGGBB". Invalid values are drawn red.
func parseHexColor(hexStr string) internal.Color {
	hexStr = strings.TrimPrefix(strings.TrimPrefix(hexStr, "0x"), "#")

	hex, err := strconv.ParseUint(hexStr, 16, 32)
	if err != nil {
		return internal.RGBA(255, 0, 0, 255)
	}
	return internal.HexToColor(uint32(hex))
}
