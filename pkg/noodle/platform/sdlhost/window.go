package sdlhost

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/internal"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

type Options struct {
	Title string
	// FontPath is the TTF used for all text. Required.
	FontPath string
	// MappingPath is an optional JSON input mapping. The default mapping is
	// used when it is empty or cannot be read.
	MappingPath string
	// IconPath is an optional PNG set as the window icon.
	IconPath string
	Logger   *slog.Logger
}

// Host owns the SDL window and the renderer, input and audio built on it.
type Host struct {
	window   *sdl.Window
	renderer *Renderer
	input    *Input
	logger   *slog.Logger
}

// Open initialises SDL and creates a window covering the current display.
// In dev mode the window is 1024x768, or WINDOW_WIDTH by WINDOW_HEIGHT.
func Open(options Options) (*Host, error) {
	logger := options.Logger
	if logger == nil {
		logger = internal.GetInternalLogger()
	}
	if options.FontPath == "" {
		return nil, errors.New("sdlhost: a font path is required")
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK); err != nil {
		return nil, fmt.Errorf("init sdl: %w", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("init ttf: %w", err)
	}
	img.Init(img.INIT_PNG)

	width, height := int32(1280), int32(720)
	if mode, err := sdl.GetCurrentDisplayMode(0); err != nil {
		logger.Error("Failed to get display mode", "error", err)
	} else {
		width, height = mode.W, mode.H
	}

	x, y := int32(0), int32(0)
	flags := uint32(sdl.WINDOW_SHOWN)
	if constants.IsDevMode() {
		x, y = 50, 50
		width = envSize(logger, "WINDOW_WIDTH", 1024)
		height = envSize(logger, "WINDOW_HEIGHT", 768)
		flags |= sdl.WINDOW_BORDERLESS
	}

	logger.Debug("Initializing SDL window", "width", width, "height", height)

	window, err := sdl.CreateWindow(options.Title, x, y, width, height, flags)
	if err != nil {
		quit()
		return nil, fmt.Errorf("create window: %w", err)
	}

	if options.IconPath != "" {
		if icon, err := img.Load(options.IconPath); err == nil {
			window.SetIcon(icon)
			icon.Free()
		} else {
			logger.Warn("Failed to load window icon", "path", options.IconPath, "error", err)
		}
	}

	sdlRenderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC|sdl.RENDERER_TARGETTEXTURE)
	if err != nil {
		window.Destroy()
		quit()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	fonts, err := newFontCache(options.FontPath, logger)
	if err != nil {
		sdlRenderer.Destroy()
		window.Destroy()
		quit()
		return nil, err
	}

	h := &Host{
		window:   window,
		renderer: newRenderer(sdlRenderer, fonts, logger),
		logger:   logger,
	}
	h.input = newInput(loadMapping(options.MappingPath, logger), h.Size, logger)
	h.input.openControllers()
	return h, nil
}

func envSize(logger *slog.Logger, name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		logger.Warn("Invalid window size; using default", "variable", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

func (h *Host) Renderer() *Renderer {
	return h.renderer
}

func (h *Host) Input() *Input {
	return h.input
}

// Size is the drawable size in pixels.
func (h *Host) Size() (int, int) {
	w, ht, err := h.renderer.renderer.GetOutputSize()
	if err != nil {
		w, ht = h.window.GetSize()
	}
	return int(w), int(ht)
}

func (h *Host) Close() {
	h.input.close()
	h.renderer.close()
	h.window.Destroy()
	quit()
}

func quit() {
	img.Quit()
	ttf.Quit()
	sdl.Quit()
}
