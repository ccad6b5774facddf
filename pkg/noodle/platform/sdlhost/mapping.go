package sdlhost

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/veandco/go-sdl2/sdl"
)

type AxisMapping struct {
	Positive  constants.Button
	Negative  constants.Button
	Threshold int16
}

// Mapping translates SDL inputs to host buttons.
type Mapping struct {
	Keyboard         map[sdl.Keycode]constants.Button
	ControllerButton map[sdl.GameControllerButton]constants.Button
	ControllerAxis   map[uint8]AxisMapping
	JoystickButton   map[uint8]constants.Button
	JoystickHat      map[uint8]constants.Button
}

// mappingFile is the JSON form. Keys are SDL codes and values are button names.
type mappingFile struct {
	KeyboardMap         map[int]string `json:"keyboard_map"`
	ControllerButtonMap map[int]string `json:"controller_button_map"`
	ControllerAxisMap   map[int]struct {
		PositiveButton string `json:"positive_button"`
		NegativeButton string `json:"negative_button"`
		Threshold      int16  `json:"threshold"`
	} `json:"controller_axis_map"`
	JoystickButtonMap map[int]string `json:"joystick_button_map"`
	JoystickHatMap    map[int]string `json:"joystick_hat_map"`
}

const defaultAxisThreshold = 16000

func DefaultMapping() *Mapping {
	return &Mapping{
		Keyboard: map[sdl.Keycode]constants.Button{
			sdl.K_UP:        constants.ButtonUp,
			sdl.K_DOWN:      constants.ButtonDown,
			sdl.K_LEFT:      constants.ButtonLeft,
			sdl.K_RIGHT:     constants.ButtonRight,
			sdl.K_a:         constants.ButtonA,
			sdl.K_b:         constants.ButtonB,
			sdl.K_x:         constants.ButtonX,
			sdl.K_y:         constants.ButtonY,
			sdl.K_l:         constants.ButtonL,
			sdl.K_SEMICOLON: constants.ButtonZL,
			sdl.K_r:         constants.ButtonR,
			sdl.K_t:         constants.ButtonZR,
			sdl.K_RETURN:    constants.ButtonPlus,
			sdl.K_SPACE:     constants.ButtonMinus,
			sdl.K_h:         constants.ButtonMenu,
			sdl.K_ESCAPE:    constants.ButtonMenu,
		},
		ControllerButton: map[sdl.GameControllerButton]constants.Button{
			sdl.CONTROLLER_BUTTON_DPAD_UP:       constants.ButtonUp,
			sdl.CONTROLLER_BUTTON_DPAD_DOWN:     constants.ButtonDown,
			sdl.CONTROLLER_BUTTON_DPAD_LEFT:     constants.ButtonLeft,
			sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    constants.ButtonRight,
			sdl.CONTROLLER_BUTTON_A:             constants.ButtonB,
			sdl.CONTROLLER_BUTTON_B:             constants.ButtonA,
			sdl.CONTROLLER_BUTTON_X:             constants.ButtonY,
			sdl.CONTROLLER_BUTTON_Y:             constants.ButtonX,
			sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  constants.ButtonL,
			sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: constants.ButtonR,
			sdl.CONTROLLER_BUTTON_LEFTSTICK:     constants.ButtonLStick,
			sdl.CONTROLLER_BUTTON_RIGHTSTICK:    constants.ButtonRStick,
			sdl.CONTROLLER_BUTTON_START:         constants.ButtonPlus,
			sdl.CONTROLLER_BUTTON_BACK:          constants.ButtonMinus,
			sdl.CONTROLLER_BUTTON_GUIDE:         constants.ButtonMenu,
		},
		ControllerAxis: map[uint8]AxisMapping{
			uint8(sdl.CONTROLLER_AXIS_TRIGGERLEFT):  {Positive: constants.ButtonZL, Threshold: defaultAxisThreshold},
			uint8(sdl.CONTROLLER_AXIS_TRIGGERRIGHT): {Positive: constants.ButtonZR, Threshold: defaultAxisThreshold},
		},
		JoystickButton: map[uint8]constants.Button{},
		JoystickHat: map[uint8]constants.Button{
			sdl.HAT_UP:    constants.ButtonUp,
			sdl.HAT_DOWN:  constants.ButtonDown,
			sdl.HAT_LEFT:  constants.ButtonLeft,
			sdl.HAT_RIGHT: constants.ButtonRight,
		},
	}
}

// loadMapping returns the mapping at path, or the default mapping when path
// is empty or invalid.
func loadMapping(path string, logger *slog.Logger) *Mapping {
	if path == "" {
		return DefaultMapping()
	}
	mapping, err := LoadMappingFile(path)
	if err != nil {
		logger.Warn("Failed to load custom input mapping, using default", "path", path, "error", err)
		return DefaultMapping()
	}
	logger.Info("Loaded custom input mapping", "path", path)
	return mapping
}

func LoadMappingFile(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	return ParseMapping(data)
}

func ParseMapping(data []byte) (*Mapping, error) {
	var file mappingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal mapping: %w", err)
	}

	m := &Mapping{
		Keyboard:         make(map[sdl.Keycode]constants.Button),
		ControllerButton: make(map[sdl.GameControllerButton]constants.Button),
		ControllerAxis:   make(map[uint8]AxisMapping),
		JoystickButton:   make(map[uint8]constants.Button),
		JoystickHat:      make(map[uint8]constants.Button),
	}

	for code, name := range file.KeyboardMap {
		b, err := constants.ParseButton(name)
		if err != nil {
			return nil, fmt.Errorf("keyboard %d: %w", code, err)
		}
		m.Keyboard[sdl.Keycode(code)] = b
	}
	for code, name := range file.ControllerButtonMap {
		b, err := constants.ParseButton(name)
		if err != nil {
			return nil, fmt.Errorf("controller button %d: %w", code, err)
		}
		m.ControllerButton[sdl.GameControllerButton(code)] = b
	}
	for axis, am := range file.ControllerAxisMap {
		mapping := AxisMapping{Threshold: am.Threshold}
		if mapping.Threshold <= 0 {
			mapping.Threshold = defaultAxisThreshold
		}
		if am.PositiveButton != "" {
			b, err := constants.ParseButton(am.PositiveButton)
			if err != nil {
				return nil, fmt.Errorf("axis %d: %w", axis, err)
			}
			mapping.Positive = b
		}
		if am.NegativeButton != "" {
			b, err := constants.ParseButton(am.NegativeButton)
			if err != nil {
				return nil, fmt.Errorf("axis %d: %w", axis, err)
			}
			mapping.Negative = b
		}
		m.ControllerAxis[uint8(axis)] = mapping
	}
	for code, name := range file.JoystickButtonMap {
		b, err := constants.ParseButton(name)
		if err != nil {
			return nil, fmt.Errorf("joystick button %d: %w", code, err)
		}
		m.JoystickButton[uint8(code)] = b
	}
	for hat, name := range file.JoystickHatMap {
		b, err := constants.ParseButton(name)
		if err != nil {
			return nil, fmt.Errorf("joystick hat %d: %w", hat, err)
		}
		m.JoystickHat[uint8(hat)] = b
	}

	return m, nil
}
