package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/core"
)

const (
	DefaultFilename = "noodle.toml"

	LogLevelEnvVar    = "NOODLE_LOG_LEVEL"
	MappingPathEnvVar = "INPUT_MAPPING_PATH"
	FontPathEnvVar    = "FALLBACK_FONT"
)

// Config is everything the shell persists between runs.
type Config struct {
	UI        UIConfig            `toml:"ui"`
	Paths     PathsConfig         `toml:"paths"`
	Log       LogConfig           `toml:"log"`
	Input     InputConfig         `toml:"input"`
	Emulation EmulationConfig     `toml:"emulation"`
	Bindings  map[string][]string `toml:"bindings"`
}

type UIConfig struct {
	Theme          string `toml:"theme"`
	Language       string `toml:"language"`
	ShowFPSCounter int    `toml:"show_fps_counter"`
	// FontPath is a TTF file used for all text. FALLBACK_FONT overrides it.
	FontPath       string `toml:"font_path"`
}

type PathsConfig struct {
	ROMs     string `toml:"roms"`
	BIOS9    string `toml:"bios9"`
	BIOS7    string `toml:"bios7"`
	Firmware string `toml:"firmware"`
	GBABIOS  string `toml:"gba_bios"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	Directory string `toml:"directory"`
	Filename  string `toml:"filename"`
}

type InputConfig struct {
	MappingPath string `toml:"mapping_path"`
	// TouchDevice and PowerDevice are evdev nodes read directly on handhelds.
	// Empty disables the reader.
	TouchDevice string `toml:"touch_device"`
	PowerDevice string `toml:"power_device"`
}

// EmulationConfig holds the cycling settings. Each value indexes its
// option list in the settings menu.
type EmulationConfig struct {
	DirectBoot        int `toml:"direct_boot"`
	FPSLimiter        int `toml:"fps_limiter"`
	ROMInRAM          int `toml:"rom_in_ram"`
	Threaded2D        int `toml:"threaded_2d"`
	Threaded3D        int `toml:"threaded_3d"`
	HighRes3D         int `toml:"high_res_3d"`
	SavesFolder       int `toml:"saves_folder"`
	StatesFolder      int `toml:"states_folder"`
	CheatsFolder      int `toml:"cheats_folder"`
	ScreenPosition    int `toml:"screen_position"`
	ScreenRotation    int `toml:"screen_rotation"`
	ScreenArrangement int `toml:"screen_arrangement"`
	ScreenSizing      int `toml:"screen_sizing"`
	ScreenGap         int `toml:"screen_gap"`
	ScreenFilter      int `toml:"screen_filter"`
	AspectRatio       int `toml:"aspect_ratio"`
	IntegerScale      int `toml:"integer_scale"`
	GBACrop           int `toml:"gba_crop"`
	ScreenGhost       int `toml:"screen_ghost"`
}

func Default() *Config {
	cfg := &Config{
		UI: UIConfig{
			Theme:    "dark",
			Language: "en",
		},
		Paths: PathsConfig{
			ROMs:     ".",
			BIOS9:    "bios9.bin",
			BIOS7:    "bios7.bin",
			Firmware: "firmware.bin",
			GBABIOS:  "gba_bios.bin",
		},
		Log: LogConfig{
			Level:    "error",
			Filename: "noodle.log",
		},
		Emulation: EmulationConfig{
			DirectBoot:        1,
			FPSLimiter:        1,
			Threaded2D:        1,
			Threaded3D:        1,
			ScreenArrangement: 2,
			ScreenFilter:      2,
			GBACrop:           1,
		},
	}
	cfg.SetBindings(core.DefaultBindings())
	return cfg
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if level := os.Getenv(LogLevelEnvVar); level != "" {
		c.Log.Level = level
	}
	if path := os.Getenv(MappingPathEnvVar); path != "" {
		c.Input.MappingPath = path
	}
	if path := os.Getenv(FontPathEnvVar); path != "" {
		c.UI.FontPath = path
	}
	if constants.IsDevMode() {
		c.Log.Level = "debug"
	}
}

// Save writes the config through a temporary file so a crash never leaves
// a truncated file behind.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// LoadBindings resolves the bindings table. Keys missing from the file keep
// their defaults; unknown keys and buttons are errors.
func (c *Config) LoadBindings() (core.Bindings, error) {
	bindings := core.DefaultBindings()
	for id, names := range c.Bindings {
		key, ok := core.KeyByID(strings.ToLower(id))
		if !ok {
			return bindings, fmt.Errorf("unknown binding %q", id)
		}
		mask, err := constants.ParseButtons(names)
		if err != nil {
			return bindings, fmt.Errorf("binding %q: %w", id, err)
		}
		bindings[key] = mask
	}
	return bindings, nil
}

func (c *Config) SetBindings(b core.Bindings) {
	c.Bindings = make(map[string][]string, core.KeyCount)
	for _, key := range core.Keys() {
		names := b[key].Names()
		if names == nil {
			names = []string{}
		}
		c.Bindings[key.ID()] = names
	}
}

// Booter builds a booter for the configured system files.
func (c *Config) Booter() core.FileBooter {
	return core.FileBooter{
		BIOS9:      c.Paths.BIOS9,
		BIOS7:      c.Paths.BIOS7,
		Firmware:   c.Paths.Firmware,
		GBABIOS:    c.Paths.GBABIOS,
		DirectBoot: c.Emulation.DirectBoot != 0,
	}
}
