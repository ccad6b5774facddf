package evdevhost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/holoplot/go-evdev"
	"github.com/pawndev/noodle/pkg/noodle"
	"go.uber.org/atomic"
)

const referenceHeight = 720

// touchTracker folds multitouch events into single-contact samples. A
// sample is complete at each SYN_REPORT.
type touchTracker struct {
	minX, maxX int32
	minY, maxY int32
	// width and height of the reference space the panel spans.
	width, height float32

	x, y int32
	down bool
}

func newTouchTracker(absX, absY evdev.AbsInfo, screenW, screenH int) touchTracker {
	width := float32(referenceHeight)
	if screenH > 0 {
		width = float32(referenceHeight*screenW) / float32(screenH)
	}
	return touchTracker{
		minX: absX.Minimum, maxX: absX.Maximum,
		minY: absY.Minimum, maxY: absY.Maximum,
		width: width, height: referenceHeight,
	}
}

func (t *touchTracker) handle(ev *evdev.InputEvent) (noodle.TouchSample, bool) {
	switch ev.Type {
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_MT_POSITION_X, evdev.ABS_X:
			t.x = ev.Value
		case evdev.ABS_MT_POSITION_Y, evdev.ABS_Y:
			t.y = ev.Value
		case evdev.ABS_MT_TRACKING_ID:
			t.down = ev.Value >= 0
		}
	case evdev.EV_KEY:
		if ev.Code == evdev.BTN_TOUCH {
			t.down = ev.Value != 0
		}
	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT {
			return t.sample(), true
		}
	}
	return noodle.TouchSample{}, false
}

func (t *touchTracker) sample() noodle.TouchSample {
	return noodle.TouchSample{
		Pressed: t.down,
		X:       scaleAxis(t.x, t.minX, t.maxX, t.width),
		Y:       scaleAxis(t.y, t.minY, t.maxY, t.height),
	}
}

func scaleAxis(v, lo, hi int32, span float32) float32 {
	if hi <= lo {
		return 0
	}
	v = max(lo, min(hi, v))
	return float32(v-lo) * span / float32(hi-lo)
}

// TouchReader reads a touchscreen node and publishes the latest sample.
type TouchReader struct {
	device  *evdev.InputDevice
	tracker touchTracker
	latest  atomic.Pointer[noodle.TouchSample]
	logger  *slog.Logger
}

// OpenTouch opens path and maps its axes onto a screenW by screenH display.
func OpenTouch(path string, screenW, screenH int, logger *slog.Logger) (*TouchReader, error) {
	device, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open touch device %s: %w", path, err)
	}

	infos, err := device.AbsInfos()
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("read touch axes: %w", err)
	}
	absX, okX := infos[evdev.ABS_MT_POSITION_X]
	absY, okY := infos[evdev.ABS_MT_POSITION_Y]
	if !okX || !okY {
		absX, okX = infos[evdev.ABS_X]
		absY, okY = infos[evdev.ABS_Y]
	}
	if !okX || !okY {
		device.Close()
		return nil, fmt.Errorf("touch device %s has no position axes", path)
	}

	name, _ := device.Name()
	logger.Debug("Opened touch device", "path", path, "name", name,
		"x_max", absX.Maximum, "y_max", absY.Maximum)

	r := &TouchReader{
		device:  device,
		tracker: newTouchTracker(absX, absY, screenW, screenH),
		logger:  logger,
	}
	r.latest.Store(&noodle.TouchSample{})
	return r, nil
}

func (r *TouchReader) Touch() noodle.TouchSample {
	return *r.latest.Load()
}

// Run reads events until ctx is done or the device fails.
func (r *TouchReader) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { r.device.Close() })
	defer stop()

	for {
		ev, err := r.device.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read touch event: %w", err)
		}
		if sample, ok := r.tracker.handle(ev); ok {
			r.latest.Store(&sample)
		}
	}
}

func (r *TouchReader) Close() error {
	if err := r.device.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}

// Input overlays a touch reader on another input source. The base source's
// touch wins while it reports a contact.
type Input struct {
	noodle.Input
	touch *TouchReader
}

func WithTouch(base noodle.Input, touch *TouchReader) *Input {
	return &Input{Input: base, touch: touch}
}

// Pump forwards to the base input when it drains host events.
func (in *Input) Pump() {
	if p, ok := in.Input.(noodle.EventPumper); ok {
		p.Pump()
	}
}

func (in *Input) Touch() noodle.TouchSample {
	if t := in.Input.Touch(); t.Pressed {
		return t
	}
	return in.touch.Touch()
}
