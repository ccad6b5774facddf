package noodle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pawndev/noodle/pkg/noodle/config"
	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/core"
	"github.com/pawndev/noodle/pkg/noodle/i18n"
	"github.com/pawndev/noodle/pkg/noodle/internal"
)

type SessionOptions struct {
	Config     *config.Config
	ConfigPath string
	// Booter defaults to one built from Config.
	Booter core.Booter
	// BasePath is the root of the file browser. Defaults to Config.Paths.ROMs.
	BasePath string
}

// Session is the emulator shell: file browser, menus and the running core.
// All methods must be called from the goroutine that owns the Context.
type Session struct {
	ctx     *Context
	cfg     *config.Config
	cfgPath string
	booter  core.Booter
	logger  *slog.Logger

	runner   *core.Runner
	runCtx   context.Context
	bindings core.Bindings

	basePath string
	curPath  string
	ndsPath  string
	gbaPath  string

	fpsLimiterBackup int
}

func NewSession(ctx *Context, options SessionOptions) (*Session, error) {
	if ctx == nil {
		return nil, errors.New("noodle: a context is required")
	}
	cfg := options.Config
	if cfg == nil {
		cfg = config.Default()
	}

	bindings, err := cfg.LoadBindings()
	if err != nil {
		return nil, fmt.Errorf("load bindings: %w", err)
	}

	booter := options.Booter
	if booter == nil {
		booter = cfg.Booter()
	}

	base := options.BasePath
	if base == "" {
		base = cfg.Paths.ROMs
	}
	base = filepath.Clean(base)

	s := &Session{
		ctx:      ctx,
		cfg:      cfg,
		cfgPath:  options.ConfigPath,
		booter:   booter,
		logger:   ctx.logger,
		runner:   core.NewRunner(nil, ctx.logger),
		runCtx:   context.Background(),
		bindings: bindings,
		basePath: base,
		curPath:  base,
	}
	ctx.SetTheme(cfg.UI.Theme)
	return s, nil
}

func (s *Session) Config() *config.Config {
	return s.cfg
}

// Runner exposes the core runner, e.g. for audio output.
func (s *Session) Runner() *core.Runner {
	return s.runner
}

func (s *Session) Bindings() core.Bindings {
	return s.bindings
}

// CurrentPath is the directory the file browser shows next.
func (s *Session) CurrentPath() string {
	return s.curPath
}

// ROMPaths returns the loaded NDS and GBA ROMs.
func (s *Session) ROMPaths() (nds, gba string) {
	return s.ndsPath, s.gbaPath
}

// Close stops emulation and flushes saves.
func (s *Session) Close() error {
	return s.runner.Stop()
}

// FileBrowser lets the user pick a ROM. It returns nil once a ROM is running
// and ErrExit when the user leaves without one.
func (s *Session) FileBrowser() error {
	index := 0
	for {
		res, err := Browse(s.ctx, s.curPath, index)
		if err != nil {
			if errors.Is(err, ErrShutdown) || s.curPath == s.basePath {
				return err
			}
			s.logger.Error("Failed to browse directory", "path", s.curPath, "error", err)
			s.curPath = filepath.Dir(s.curPath)
			index = 0
			continue
		}

		switch res.Action {
		case BrowseActionSelected:
			index = 0
			if res.IsDir {
				s.curPath = res.Path
				continue
			}
			result, err := s.SetPath(res.Path)
			if err != nil {
				return err
			}
			if result == PathLoaded {
				return nil
			}
		case BrowseActionBack:
			if s.curPath != s.basePath {
				s.curPath = filepath.Dir(s.curPath)
				index = 0
			} else {
				index = res.Index
			}
		case BrowseActionSettings:
			index = res.Index
			if err := s.SettingsMenu(); err != nil {
				return err
			}
		case BrowseActionExit:
			return ErrExit
		}
	}
}

// SetPath loads an .nds or .gba ROM and boots it. When the other slot already
// holds a ROM the user chooses whether to keep it.
func (s *Session) SetPath(path string) (PathResult, error) {
	var slot, other *string
	var title, text *i18n.Message

	switch {
	case hasExt(path, ".nds"):
		slot, other = &s.ndsPath, &s.gbaPath
		title, text = msgLoadNDSTitle, msgLoadNDSText
	case hasExt(path, ".gba"):
		slot, other = &s.gbaPath, &s.ndsPath
		title, text = msgLoadGBATitle, msgLoadGBAText
	default:
		return PathIgnored, nil
	}

	if *other != "" {
		keep, err := Message(s.ctx, localize(title), localize(text), true)
		if err != nil {
			return PathIgnored, err
		}
		if !keep {
			*other = ""
		}
	}

	*slot = path
	booted, err := s.createCore()
	if err != nil {
		return PathFailed, err
	}
	if !booted {
		*slot = ""
		return PathFailed, nil
	}

	s.startCore()
	s.logger.Info("ROM loaded", "nds", s.ndsPath, "gba", s.gbaPath)
	return PathLoaded, nil
}

// createCore boots the selected ROMs, replacing any previous core. Boot
// failures are shown to the user and reported as false.
func (s *Session) createCore() (bool, error) {
	s.stopCore()
	if err := s.runner.SetCore(nil); err != nil {
		return false, err
	}

	title := msgLoadNDSTitle
	if s.ndsPath == "" {
		title = msgLoadGBATitle
	}
	c, err := ProcessMessage(s.ctx, localize(title), localize(msgBootingText), func() (core.Core, error) {
		return s.booter.Boot(s.ndsPath, s.gbaPath)
	})
	if err != nil {
		s.logger.Error("Failed to boot core", "nds", s.ndsPath, "gba", s.gbaPath, "error", err)
		title, text := s.bootErrorText(err)
		if _, err := Message(s.ctx, title, text, false); err != nil {
			return false, err
		}
		return false, nil
	}

	c.SetFPSLimiter(s.cfg.Emulation.FPSLimiter != 0)
	if err := s.runner.SetCore(c); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) bootErrorText(err error) (string, string) {
	file := map[string]interface{}{"File": filepath.Base(s.configFile())}

	be, ok := core.AsBootError(err)
	if !ok {
		return localize(msgErrorTitle), err.Error()
	}
	switch be.Kind {
	case core.BootErrorBIOS:
		return localize(msgBIOSErrorTitle), localizeWith(msgBIOSErrorText, file)
	case core.BootErrorFirmware:
		return localize(msgFirmwareErrorTitle), localizeWith(msgFirmwareErrorText, file)
	case core.BootErrorROM:
		return localize(msgROMErrorTitle), localize(msgROMErrorText)
	}
	return localize(msgErrorTitle), err.Error()
}

func (s *Session) configFile() string {
	if s.cfgPath != "" {
		return s.cfgPath
	}
	return config.DefaultFilename
}

func (s *Session) startCore() {
	s.runner.Start(s.runCtx)
}

func (s *Session) stopCore() {
	if err := s.runner.Stop(); err != nil {
		s.logger.Error("Failed to flush saves", "error", err)
	}
}

func (s *Session) saveConfig() {
	if s.cfgPath == "" {
		return
	}
	if err := s.cfg.Save(s.cfgPath); err != nil {
		s.logger.Error("Failed to save config", "path", s.cfgPath, "error", err)
	}
}

// Run browses for a ROM if none is loaded, then emulates until the user
// exits or the host shuts down.
func (s *Session) Run(ctx context.Context) error {
	s.runCtx = ctx
	defer s.stopCore()

	if s.runner.Core() == nil {
		if err := s.FileBrowser(); err != nil {
			return ignoreExit(err)
		}
	}

	for !s.ctx.IsShutdown() && ctx.Err() == nil {
		if err := s.frame(); err != nil {
			return ignoreExit(err)
		}
	}
	return nil
}

func ignoreExit(err error) error {
	if errors.Is(err, ErrExit) || errors.Is(err, ErrShutdown) {
		return nil
	}
	return err
}

// frame draws one emulated frame and handles input and hotkeys.
func (s *Session) frame() error {
	c := s.runner.Core()
	if c == nil {
		return s.FileBrowser()
	}
	renderer := s.ctx.renderer
	emu := s.cfg.Emulation

	renderer.StartFrame(internal.RGBA(0, 0, 0, 0xFF))

	pixels, w, h := c.Framebuffer()
	layout := layoutScreens(emu, c.GBAMode(), s.ctx.width, s.ctx.height)
	tex, err := renderer.CreateTexture(pixels, w, h)
	if err != nil {
		s.logger.Error("Failed to upload frame", "error", err)
	} else {
		defer renderer.DestroyTexture(tex)
		for _, screen := range layout.screens {
			renderer.DrawTexture(tex, screen.src, screen.dst, emu.ScreenFilter != 0, emu.ScreenRotation, internal.RGBA(0xFF, 0xFF, 0xFF, 0xFF))
		}
	}

	if s.cfg.UI.ShowFPSCounter != 0 {
		s.ctx.drawString(fmt.Sprintf("%d FPS", c.FPS()), 5, 0, 48, internal.RGBA(0xFF, 0xFF, 0xFF, 0xFF), false)
	}

	held, pressed := s.ctx.poll()
	for _, key := range core.Keys() {
		if !key.Emulated() {
			continue
		}
		if pressed.Has(s.bindings[key]) {
			c.PressKey(key)
		} else if !held.Has(s.bindings[key]) {
			c.ReleaseKey(key)
		}
	}

	if x, y, ok := layout.touchPoint(s.ctx, s.ctx.input.Touch()); ok {
		c.PressScreen(x, y)
	} else {
		c.ReleaseScreen()
	}

	renderer.EndFrame()
	return s.handleHotkeys(c, held, pressed)
}

func (s *Session) handleHotkeys(c core.Core, held, pressed constants.Button) error {
	emu := &s.cfg.Emulation
	limiter := emu.FPSLimiter

	if (s.fpsLimiterBackup != 0 && pressed.Has(s.bindings[core.KeyMenu])) ||
		(s.fpsLimiterBackup > 0 && s.fpsLimiterBackup < 0x100 && !held.Has(s.bindings[core.KeyFastHold])) {
		emu.FPSLimiter = s.fpsLimiterBackup & 0xFF
		s.fpsLimiterBackup = 0
	}

	switch {
	case pressed.Has(s.bindings[core.KeyMenu]):
		if emu.FPSLimiter != limiter {
			c.SetFPSLimiter(emu.FPSLimiter != 0)
		}
		return s.PauseMenu()
	case pressed.Has(s.bindings[core.KeyFastHold]):
		if emu.FPSLimiter != 0 {
			s.fpsLimiterBackup = emu.FPSLimiter
			emu.FPSLimiter = 0
		}
	case pressed.Has(s.bindings[core.KeyFastToggle]):
		if emu.FPSLimiter != 0 {
			s.fpsLimiterBackup = emu.FPSLimiter | 0x100
			emu.FPSLimiter = 0
		} else if s.fpsLimiterBackup != 0 {
			emu.FPSLimiter = s.fpsLimiterBackup & 0xFF
			s.fpsLimiterBackup = 0
		}
	case pressed.Has(s.bindings[core.KeyScreenSwap]):
		if emu.ScreenSizing == 1 {
			emu.ScreenSizing = 2
		} else {
			emu.ScreenSizing = 1
		}
	}

	if emu.FPSLimiter != limiter {
		c.SetFPSLimiter(emu.FPSLimiter != 0)
	}
	return nil
}
