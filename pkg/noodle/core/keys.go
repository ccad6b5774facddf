package core

import (
	"strings"

	"github.com/pawndev/noodle/pkg/noodle/constants"
)

// Key is an input the emulator or the shell reacts to. Keys up to KeyMenu are
// forwarded to the core; the rest are shell hotkeys.
type Key int

const (
	KeyA Key = iota
	KeyB
	KeySelect
	KeyStart
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeyR
	KeyL
	KeyX
	KeyY
	KeyMenu
	KeyFastHold
	KeyFastToggle
	KeyScreenSwap

	KeyCount
)

// maxBindingNames caps how many button names Describe lists before eliding.
const maxBindingNames = 8

var keyInfo = [KeyCount]struct {
	id    string
	label string
}{
	KeyA:          {"a", "A Button"},
	KeyB:          {"b", "B Button"},
	KeySelect:     {"select", "Select Button"},
	KeyStart:      {"start", "Start Button"},
	KeyRight:      {"right", "Right Button"},
	KeyLeft:       {"left", "Left Button"},
	KeyUp:         {"up", "Up Button"},
	KeyDown:       {"down", "Down Button"},
	KeyR:          {"r", "R Button"},
	KeyL:          {"l", "L Button"},
	KeyX:          {"x", "X Button"},
	KeyY:          {"y", "Y Button"},
	KeyMenu:       {"menu", "Menu Button"},
	KeyFastHold:   {"fast_hold", "Fast Forward Hold"},
	KeyFastToggle: {"fast_toggle", "Fast Forward Toggle"},
	KeyScreenSwap: {"screen_swap", "Screen Swap Toggle"},
}

// ID is the key's name in configuration files.
func (k Key) ID() string {
	if k < 0 || k >= KeyCount {
		return ""
	}
	return keyInfo[k].id
}

func (k Key) Label() string {
	if k < 0 || k >= KeyCount {
		return ""
	}
	return keyInfo[k].label
}

// Emulated reports whether the key is forwarded to the core.
func (k Key) Emulated() bool {
	return k >= KeyA && k < KeyMenu
}

// Keys returns every key in menu order.
func Keys() []Key {
	keys := make([]Key, KeyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

func KeyByID(id string) (Key, bool) {
	for k, info := range keyInfo {
		if info.id == id {
			return Key(k), true
		}
	}
	return 0, false
}

// Bindings maps each key to the host buttons that trigger it.
type Bindings [KeyCount]constants.Button

func DefaultBindings() Bindings {
	return Bindings{
		KeyA:      constants.ButtonA,
		KeyB:      constants.ButtonB,
		KeySelect: constants.ButtonMinus,
		KeyStart:  constants.ButtonPlus,
		KeyRight:  constants.ButtonRight,
		KeyLeft:   constants.ButtonLeft,
		KeyUp:     constants.ButtonUp,
		KeyDown:   constants.ButtonDown,
		KeyR:      constants.ButtonZR,
		KeyL:      constants.ButtonZL,
		KeyX:      constants.ButtonX,
		KeyY:      constants.ButtonY,
		KeyMenu:   constants.ButtonL | constants.ButtonR | constants.ButtonMenu,
	}
}

// Describe lists the buttons bound to k, eliding after eight names.
func (b Bindings) Describe(k Key) string {
	names := b[k].Names()
	if len(names) == 0 {
		return "None"
	}
	if len(names) > maxBindingNames {
		names = append(names[:maxBindingNames], "...")
	}
	return strings.Join(names, ", ")
}
