package evdevhost

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/holoplot/go-evdev"
)

type PowerButtonConfig struct {
	DevicePath string
	// ButtonCode defaults to KEY_POWER.
	ButtonCode evdev.EvCode
	// ShortPressMax separates a short press from a long one. Defaults to 2s.
	ShortPressMax time.Duration
	// CoolDownTime ignores presses that follow a handled one too closely.
	CoolDownTime time.Duration
	OnShortPress func()
	// OnLongPress defaults to OnShortPress.
	OnLongPress func()
}

// powerButton turns key events into short and long presses.
type powerButton struct {
	config      PowerButtonConfig
	pressedAt   time.Time
	pressed     bool
	lastHandled time.Time
}

type pressKind int

const (
	pressNone pressKind = iota
	pressShort
	pressLong
)

func newPowerButton(config PowerButtonConfig) *powerButton {
	if config.ButtonCode == 0 {
		config.ButtonCode = evdev.KEY_POWER
	}
	if config.ShortPressMax <= 0 {
		config.ShortPressMax = 2 * time.Second
	}
	if config.OnLongPress == nil {
		config.OnLongPress = config.OnShortPress
	}
	return &powerButton{config: config}
}

func (p *powerButton) handle(ev *evdev.InputEvent, now time.Time) pressKind {
	if ev.Type != evdev.EV_KEY || ev.Code != p.config.ButtonCode {
		return pressNone
	}

	switch ev.Value {
	case 1:
		p.pressed = true
		p.pressedAt = now
	case 0:
		if !p.pressed {
			return pressNone
		}
		p.pressed = false
		if !p.lastHandled.IsZero() && now.Sub(p.lastHandled) < p.config.CoolDownTime {
			return pressNone
		}
		p.lastHandled = now
		if now.Sub(p.pressedAt) > p.config.ShortPressMax {
			return pressLong
		}
		return pressShort
	}
	return pressNone
}

// WatchPowerButton reads config.DevicePath until ctx is done and runs the
// press callbacks on the reading goroutine.
func WatchPowerButton(ctx context.Context, config PowerButtonConfig, logger *slog.Logger) error {
	device, err := evdev.Open(config.DevicePath)
	if err != nil {
		return fmt.Errorf("open power button device %s: %w", config.DevicePath, err)
	}
	stop := context.AfterFunc(ctx, func() { device.Close() })
	defer stop()

	button := newPowerButton(config)
	logger.Debug("Watching power button", "path", config.DevicePath, "code", button.config.ButtonCode)

	for {
		ev, err := device.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read power button event: %w", err)
		}

		switch button.handle(ev, time.Now()) {
		case pressShort:
			logger.Info("Power button short press")
			if button.config.OnShortPress != nil {
				button.config.OnShortPress()
			}
		case pressLong:
			logger.Info("Power button long press")
			if button.config.OnLongPress != nil {
				button.config.OnLongPress()
			}
		}
	}
}
