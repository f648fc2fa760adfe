package app

import "github.com/dshills/caide/internal/conf"

// SettingsFile is the fixed name of the workspace settings file under
// the root directory.
const SettingsFile = "caide.ini"

// Context is the execution environment threaded through every
// operation of one invocation: the immutable root directory, verbosity
// and settings handle, plus the mutable configuration cache. A Context
// is constructed by the runtime driver, lives for exactly one
// invocation, and is not shared between invocations.
type Context struct {
	// Root is the absolute workspace root directory.
	Root string

	// Verbosity is the invocation's diagnostic level.
	Verbosity Verbosity

	// Settings refers to the cached workspace settings document
	// (caide.ini). Commands may read and mutate it like any other
	// persistent config.
	Settings conf.Handle

	// Conf is the configuration cache for this invocation.
	Conf *conf.Store

	// Log is the invocation logger.
	Log *Logger
}

// GetSetting reads an interpolated value from the workspace settings.
func (c *Context) GetSetting(section, key string) (string, error) {
	return c.Conf.GetProp(c.Settings, section, key)
}

// SetSetting writes a value into the workspace settings.
func (c *Context) SetSetting(section, key, value string) error {
	return c.Conf.SetProp(c.Settings, section, key, value)
}
