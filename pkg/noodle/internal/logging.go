package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile     *os.File
	logFilename string
	logDir      = "logs"

	setupOnce   sync.Once
	multiWriter io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   *slog.LevelVar

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   *slog.LevelVar
)

// SetLogFilename must be called before the first logger is requested.
func SetLogFilename(filename string) {
	logFilename = filename
}

// SetLogDirectory must be called before the first logger is requested.
func SetLogDirectory(dir string) {
	logDir = dir
}

func setup() {
	setupOnce.Do(func() {
		multiWriter = os.Stdout

		if err := os.MkdirAll(logDir, 0755); err != nil {
			slog.Error("Failed to create logs directory, logging to stdout only", "dir", logDir, "error", err)
			return
		}

		filename := logFilename
		if filename == "" {
			filename = "noodle.log"
		}

		var err error
		logFile, err = os.OpenFile(filepath.Join(logDir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			slog.Error("Failed to open log file, logging to stdout only", "error", err)
			return
		}

		multiWriter = io.MultiWriter(os.Stdout, logFile)
	})
}

func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		levelVar = &slog.LevelVar{}

		setup()

		handler := slog.NewJSONHandler(multiWriter, &slog.HandlerOptions{
			Level:     levelVar,
			AddSource: false,
		})
		logger = slog.New(handler)
	})
	return logger
}

func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		internalLevelVar = &slog.LevelVar{}

		setup()

		handler := slog.NewJSONHandler(multiWriter, &slog.HandlerOptions{
			Level:     internalLevelVar,
			AddSource: false,
		})
		internalLogger = slog.New(handler).With("component", "noodle")
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	GetLogger()
	levelVar.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	GetInternalLogger()
	internalLevelVar.Set(level)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(rawLevel string) slog.Level {
	switch strings.ToLower(rawLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(rawLevel string) {
	SetLogLevel(ParseLevel(rawLevel))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
