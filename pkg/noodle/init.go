package noodle

import (
	"errors"
	"log/slog"
	"os"

	"github.com/pawndev/noodle/pkg/noodle/internal"
)

const LogLevelEnvVar = "NOODLE_LOG_LEVEL"

type Options struct {
	Renderer Renderer
	Input    Input
	Clock    Clock
	// Width and Height are the output size in pixels. Defaults to 1280x720.
	Width  int
	Height int
	// ThemeName selects the "dark" or "light" palette.
	ThemeName   string
	Logger      *slog.Logger
	LogFilename string
}

// NewContext builds the state shared by every menu and dialog drawn on one display.
func NewContext(options Options) (*Context, error) {
	if options.Renderer == nil {
		return nil, errors.New("noodle: a renderer is required")
	}
	if options.Input == nil {
		return nil, errors.New("noodle: an input source is required")
	}

	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Width <= 0 || options.Height <= 0 {
		options.Width, options.Height = 1280, referenceHeight
	}

	logger := options.Logger
	if logger == nil {
		if options.LogFilename != "" {
			internal.SetLogFilename(options.LogFilename)
		}
		if level := os.Getenv(LogLevelEnvVar); level != "" {
			internal.SetInternalLogLevel(internal.ParseLevel(level))
		} else {
			internal.SetInternalLogLevel(slog.LevelError)
		}
		logger = internal.GetInternalLogger()
	}

	ctx := &Context{
		renderer: options.Renderer,
		input:    options.Input,
		clock:    options.Clock,
		width:    options.Width,
		height:   options.Height,
		theme:    internal.ThemeByName(options.ThemeName),
		logger:   logger,
	}

	logger.Debug("Context created", "width", ctx.width, "height", ctx.height, "theme", options.ThemeName)
	return ctx, nil
}

func SetLogFilename(filename string) {
	internal.SetLogFilename(filename)
}

func SetLogDirectory(dir string) {
	internal.SetLogDirectory(dir)
}

func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

func CloseLogger() {
	internal.CloseLogger()
}
