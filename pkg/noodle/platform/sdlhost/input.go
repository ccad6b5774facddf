package sdlhost

import (
	"log/slog"

	"github.com/pawndev/noodle/pkg/noodle"
	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/veandco/go-sdl2/sdl"
)

const referenceHeight = 720

// Input implements noodle.Input by draining the SDL event queue once per
// frame, on the goroutine that created the window.
type Input struct {
	mapping *Mapping
	size    func() (int, int)
	logger  *slog.Logger
	onQuit  func()

	keys        constants.Button
	controller  constants.Button
	joystick    constants.Button
	hat         constants.Button
	axisHeld    map[uint8]constants.Button
	touch       noodle.TouchSample
	mouseDown   bool
	controllers []*sdl.GameController
	joysticks   []*sdl.Joystick
}

var _ noodle.Input = (*Input)(nil)

func newInput(mapping *Mapping, size func() (int, int), logger *slog.Logger) *Input {
	return &Input{
		mapping:  mapping,
		size:     size,
		logger:   logger,
		axisHeld: make(map[uint8]constants.Button),
	}
}

// OnQuit registers fn to run when the window is closed.
func (in *Input) OnQuit(fn func()) {
	in.onQuit = fn
}

// Held pumps pending events and returns every button currently down.
func (in *Input) Held() constants.Button {
	in.Pump()
	return in.held()
}

// Pump handles pending events, updating the held state and firing OnQuit.
func (in *Input) Pump() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		in.handle(event)
	}
}

func (in *Input) Touch() noodle.TouchSample {
	return in.touch
}

func (in *Input) held() constants.Button {
	held := in.keys | in.controller | in.joystick | in.hat
	for _, b := range in.axisHeld {
		held |= b
	}
	return held
}

func (in *Input) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		in.logger.Info("Window closed")
		if in.onQuit != nil {
			in.onQuit()
		}
	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return
		}
		if b, ok := in.mapping.Keyboard[e.Keysym.Sym]; ok {
			in.keys = set(in.keys, b, e.Type == sdl.KEYDOWN)
		} else if e.Type == sdl.KEYDOWN {
			in.logger.Debug("Keyboard input not mapped", "key", sdl.GetKeyName(e.Keysym.Sym), "code", e.Keysym.Sym)
		}
	case *sdl.ControllerButtonEvent:
		if b, ok := in.mapping.ControllerButton[sdl.GameControllerButton(e.Button)]; ok {
			in.controller = set(in.controller, b, e.Type == sdl.CONTROLLERBUTTONDOWN)
		}
	case *sdl.ControllerAxisEvent:
		am, ok := in.mapping.ControllerAxis[e.Axis]
		if !ok {
			return
		}
		switch {
		case e.Value > am.Threshold:
			in.axisHeld[e.Axis] = am.Positive
		case e.Value < -am.Threshold:
			in.axisHeld[e.Axis] = am.Negative
		default:
			delete(in.axisHeld, e.Axis)
		}
	case *sdl.JoyButtonEvent:
		if b, ok := in.mapping.JoystickButton[e.Button]; ok {
			in.joystick = set(in.joystick, b, e.State == sdl.PRESSED)
		}
	case *sdl.JoyHatEvent:
		in.hat = constants.ButtonNone
		for bit, b := range in.mapping.JoystickHat {
			if e.Value&bit != 0 {
				in.hat |= b
			}
		}
	case *sdl.ControllerDeviceEvent:
		if e.Type == sdl.CONTROLLERDEVICEADDED {
			in.openController(int(e.Which))
		}
	case *sdl.TouchFingerEvent:
		w, h := in.size()
		in.setTouch(e.Type != sdl.FINGERUP, e.X*float32(w), e.Y*float32(h), h)
	case *sdl.MouseButtonEvent:
		if e.Button != sdl.BUTTON_LEFT || e.Which == sdl.TOUCH_MOUSEID {
			return
		}
		_, h := in.size()
		in.mouseDown = e.Type == sdl.MOUSEBUTTONDOWN
		in.setTouch(in.mouseDown, float32(e.X), float32(e.Y), h)
	case *sdl.MouseMotionEvent:
		if !in.mouseDown || e.Which == sdl.TOUCH_MOUSEID {
			return
		}
		_, h := in.size()
		in.setTouch(true, float32(e.X), float32(e.Y), h)
	}
}

// setTouch stores a contact given in output pixels. Both axes scale by
// height so the reference space keeps square units.
func (in *Input) setTouch(pressed bool, x, y float32, height int) {
	if height <= 0 {
		return
	}
	k := float32(referenceHeight) / float32(height)
	in.touch = noodle.TouchSample{Pressed: pressed, X: x * k, Y: y * k}
}

func set(mask, b constants.Button, down bool) constants.Button {
	if down {
		return mask | b
	}
	return mask &^ b
}

func (in *Input) openControllers() {
	n := sdl.NumJoysticks()
	in.logger.Debug("Detecting controllers", "joystick_count", n)
	for i := 0; i < n; i++ {
		in.openController(i)
	}
}

func (in *Input) openController(index int) {
	if sdl.IsGameController(index) {
		controller := sdl.GameControllerOpen(index)
		if controller == nil {
			in.logger.Error("Failed to open game controller", "index", index)
			return
		}
		in.logger.Debug("Opened game controller", "index", index, "name", controller.Name())
		in.controllers = append(in.controllers, controller)
		return
	}

	joystick := sdl.JoystickOpen(index)
	if joystick == nil {
		in.logger.Debug("Failed to open raw joystick", "index", index)
		return
	}
	in.logger.Debug("Opened raw joystick", "index", index, "name", joystick.Name())
	in.joysticks = append(in.joysticks, joystick)
}

func (in *Input) close() {
	for _, c := range in.controllers {
		c.Close()
	}
	for _, j := range in.joysticks {
		j.Close()
	}
	in.controllers, in.joysticks = nil, nil
}
