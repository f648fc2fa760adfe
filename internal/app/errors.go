package app

import (
	"errors"
	"fmt"
)

// Driver-level errors.
var (
	// ErrSettingsLoad indicates the workspace settings file could not
	// be read or parsed. Nothing runs after this failure.
	ErrSettingsLoad = errors.New("cannot load workspace settings")

	// ErrOther is the catch-all wrapper for command-level failures
	// raised via Throw and for recovered panics.
	ErrOther = errors.New("caide")
)

// Throw raises a free-text command-level error through the common error
// channel.
func Throw(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOther, fmt.Sprintf(format, args...))
}
