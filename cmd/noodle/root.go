package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawndev/noodle/pkg/noodle"
	"github.com/pawndev/noodle/pkg/noodle/config"
	"github.com/pawndev/noodle/pkg/noodle/core"
	"github.com/pawndev/noodle/pkg/noodle/i18n"
	"github.com/pawndev/noodle/pkg/noodle/platform/evdevhost"
	"github.com/pawndev/noodle/pkg/noodle/platform/nextui"
	"github.com/pawndev/noodle/pkg/noodle/platform/sdlhost"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type runOptions struct {
	configPath string
	romDir     string
	logLevel   string
	noAudio    bool
}

func createRootCommand() *cobra.Command {
	var opts runOptions

	rootCmd := &cobra.Command{
		Use:   "noodle [rom]",
		Short: "NooDS front-end for handhelds and desktops",
		Long:  "noodle browses for NDS and GBA ROMs, runs them and provides the settings, controls and pause menus.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom := ""
			if len(args) == 1 {
				rom = args[0]
			}
			return run(cmd.Context(), opts, rom)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultFilename, "Path to the config file")
	rootCmd.Flags().StringVar(&opts.romDir, "roms", "", "ROM directory shown by the file browser")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&opts.noAudio, "no-audio", false, "Disable audio output")

	rootCmd.AddCommand(createInitConfigCommand(&opts))
	return rootCmd
}

func createInitConfigCommand(opts *runOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", opts.configPath)
			}
			if err := config.Default().Save(opts.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func run(parent context.Context, opts runOptions, rom string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.romDir != "" {
		cfg.Paths.ROMs = opts.romDir
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger := setupLogging(cfg)
	defer noodle.CloseLogger()

	if cfg.UI.Theme == nextui.ThemeName {
		nextui.Register(logger)
		if cfg.Input.PowerDevice == "" {
			cfg.Input.PowerDevice = nextui.PowerDevice
		}
	}

	if err := i18n.InitDefault(cfg.UI.Language); err != nil {
		logger.Warn("Failed to load translations", "language", cfg.UI.Language, "error", err)
	}

	host, err := sdlhost.Open(sdlhost.Options{
		Title:       "NooDS",
		FontPath:    cfg.UI.FontPath,
		MappingPath: cfg.Input.MappingPath,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer host.Close()

	width, height := host.Size()
	var input noodle.Input = host.Input()

	var touch *evdevhost.TouchReader
	if cfg.Input.TouchDevice != "" {
		touch, err = evdevhost.OpenTouch(cfg.Input.TouchDevice, width, height, logger)
		if err != nil {
			logger.Warn("Touch device unavailable", "error", err)
		} else {
			defer touch.Close()
			input = evdevhost.WithTouch(input, touch)
		}
	}

	ctx, err := noodle.NewContext(noodle.Options{
		Renderer:  host.Renderer(),
		Input:     input,
		Width:     width,
		Height:    height,
		ThemeName: cfg.UI.Theme,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer ctx.Close()
	host.Input().OnQuit(ctx.Shutdown)

	session, err := noodle.NewSession(ctx, noodle.SessionOptions{
		Config:     cfg,
		ConfigPath: opts.configPath,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	sigCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx, cancel := context.WithCancel(sigCtx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		<-gctx.Done()
		ctx.Shutdown()
		return nil
	})

	if !opts.noAudio {
		audio, err := sdlhost.OpenAudio(core.NewAudioResampler(session.Runner()), logger)
		if err != nil {
			logger.Warn("Audio unavailable", "error", err)
		} else {
			defer audio.Close()
			g.Go(func() error { return audio.Run(gctx) })
		}
	}
	if touch != nil {
		g.Go(func() error {
			if err := touch.Run(gctx); err != nil {
				logger.Warn("Touch reader stopped", "error", err)
			}
			return nil
		})
	}
	if cfg.Input.PowerDevice != "" {
		g.Go(func() error {
			err := evdevhost.WatchPowerButton(gctx, evdevhost.PowerButtonConfig{
				DevicePath:   cfg.Input.PowerDevice,
				CoolDownTime: time.Second,
				OnShortPress: ctx.Shutdown,
			}, logger)
			if err != nil {
				logger.Warn("Power button watcher stopped", "error", err)
			}
			return nil
		})
	}

	if rom != "" {
		if _, err := session.SetPath(rom); err != nil {
			logger.Error("Failed to load ROM", "path", rom, "error", err)
		}
	}

	runErr := session.Run(gctx)
	cancel()
	if err := g.Wait(); err != nil {
		logger.Error("Background task failed", "error", err)
	}
	return runErr
}

func setupLogging(cfg *config.Config) *slog.Logger {
	if cfg.Log.Directory != "" {
		noodle.SetLogDirectory(cfg.Log.Directory)
	}
	if cfg.Log.Filename != "" {
		noodle.SetLogFilename(cfg.Log.Filename)
	}
	noodle.SetRawLogLevel(cfg.Log.Level)
	return noodle.GetLogger()
}
