package core

import (
	"errors"
	"fmt"
)

// StateStatus is the result of probing the save state slot.
type StateStatus int

const (
	StateOK StateStatus = iota
	StateFileMissing
	StateBadFormat
	StateBadVersion
)

func (s StateStatus) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateFileMissing:
		return "file missing"
	case StateBadFormat:
		return "bad format"
	case StateBadVersion:
		return "bad version"
	}
	return fmt.Sprintf("StateStatus(%d)", int(s))
}

// Core is a booted emulator. RunFrame is called from the emulation goroutine;
// everything else from the UI goroutine while the core is stopped, except
// WriteSaves and Samples which must tolerate running concurrently.
type Core interface {
	RunFrame()
	// Framebuffer returns the current output. DS frames stack the top and
	// bottom screens vertically.
	Framebuffer() (pixels []uint32, width, height int)
	FPS() int
	GBAMode() bool

	PressKey(k Key)
	ReleaseKey(k Key)
	PressScreen(x, y int)
	ReleaseScreen()
	SetFPSLimiter(enabled bool)

	Samples(count int) []uint32
	WriteSaves() error
	ResizeSave(size int) error

	CheckState() StateStatus
	SaveState() error
	LoadState() error
}

// Booter creates a core for a ROM pair. Either path may be empty, not both.
type Booter interface {
	Boot(ndsPath, gbaPath string) (Core, error)
}

type BootErrorKind int

const (
	BootErrorBIOS BootErrorKind = iota
	BootErrorFirmware
	BootErrorROM
)

func (k BootErrorKind) String() string {
	switch k {
	case BootErrorBIOS:
		return "bios"
	case BootErrorFirmware:
		return "firmware"
	case BootErrorROM:
		return "rom"
	}
	return fmt.Sprintf("BootErrorKind(%d)", int(k))
}

// BootError reports why a core could not be created.
type BootError struct {
	Kind BootErrorKind
	Path string
	Err  error
}

func (e *BootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("boot %s %q: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("boot %s %q", e.Kind, e.Path)
}

func (e *BootError) Unwrap() error {
	return e.Err
}

// AsBootError extracts a BootError from err's chain.
func AsBootError(err error) (*BootError, bool) {
	var be *BootError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
