package noodle

import (
	"errors"

	"github.com/pawndev/noodle/pkg/noodle/constants"
)

var (
	// ErrShutdown is returned by every blocking call once the host has asked to exit.
	ErrShutdown  = errors.New("host requested shutdown")
	ErrCancelled = errors.New("operation cancelled by user")
	ErrExit      = errors.New("exit requested from menu")
)

// Selection is the terminal result of RunMenu.
type Selection struct {
	Pressed constants.Button
	Index   int
}

type BrowseAction int

const (
	BrowseActionSelected BrowseAction = iota
	BrowseActionBack
	BrowseActionSettings
	BrowseActionExit
)

// PathResult reports what SetPath did with a path.
type PathResult int

const (
	PathIgnored PathResult = iota
	PathFailed
	PathLoaded
)
