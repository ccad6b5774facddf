package constants

import (
	"fmt"
	"os"
	"strings"
)

// Button is a bitmask of host buttons. A single value may carry several
// buttons, e.g. a held mask or a key binding.
type Button uint32

const ButtonNone Button = 0

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonX
	ButtonY
	ButtonL
	ButtonR
	ButtonZL
	ButtonZR
	ButtonPlus
	ButtonMinus
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonLStick
	ButtonRStick
	ButtonMenu
)

// Menu aliases for the buttons a front-end reads as Start and Select.
const (
	ButtonStart  = ButtonPlus
	ButtonSelect = ButtonMinus
)

var buttonNames = []struct {
	button Button
	name   string
}{
	{ButtonA, "A"},
	{ButtonB, "B"},
	{ButtonX, "X"},
	{ButtonY, "Y"},
	{ButtonL, "L"},
	{ButtonR, "R"},
	{ButtonZL, "ZL"},
	{ButtonZR, "ZR"},
	{ButtonPlus, "Plus"},
	{ButtonMinus, "Minus"},
	{ButtonUp, "Up"},
	{ButtonDown, "Down"},
	{ButtonLeft, "Left"},
	{ButtonRight, "Right"},
	{ButtonLStick, "LS"},
	{ButtonRStick, "RS"},
	{ButtonMenu, "Menu"},
}

func (b Button) Has(other Button) bool {
	return b&other != 0
}

// Names lists the buttons set in b in declaration order.
func (b Button) Names() []string {
	var names []string
	for _, bn := range buttonNames {
		if b&bn.button != 0 {
			names = append(names, bn.name)
		}
	}
	return names
}

func (b Button) GetName() string {
	names := b.Names()
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "+")
}

func (b Button) String() string {
	return b.GetName()
}

// ParseButton resolves a single button name, case-insensitively.
func ParseButton(name string) (Button, error) {
	for _, bn := range buttonNames {
		if strings.EqualFold(bn.name, name) {
			return bn.button, nil
		}
	}
	return ButtonNone, fmt.Errorf("unknown button %q", name)
}

// ParseButtons ORs together every named button.
func ParseButtons(names []string) (Button, error) {
	var mask Button
	for _, name := range names {
		b, err := ParseButton(name)
		if err != nil {
			return ButtonNone, err
		}
		mask |= b
	}
	return mask, nil
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

const DevModeEnvVar = "NOODLE_DEV"

func IsDevMode() bool {
	return os.Getenv(DevModeEnvVar) != ""
}
