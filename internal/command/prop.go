package command

import (
	"errors"

	"github.com/dshills/caide/internal/app"
	"github.com/dshills/caide/internal/conf"
)

// GetProperty reads one interpolated option from a config file under
// the workspace root. An empty file selects the workspace settings.
func GetProperty(verbosity app.Verbosity, dir, file, section, key string) (string, error) {
	var value string
	err := app.RunInDirectory(verbosity, dir, func(ctx *app.Context) error {
		if file == "" || file == app.SettingsFile {
			var err error
			value, err = ctx.GetSetting(section, key)
			return err
		}
		h, err := ctx.Conf.ReadConf(file)
		if err != nil {
			return err
		}
		value, err = ctx.Conf.GetProp(h, section, key)
		return err
	})
	return value, err
}

// SetProperty writes one option to a config file under the workspace
// root, creating the file if it does not already exist. An empty file
// selects the workspace settings.
func SetProperty(verbosity app.Verbosity, dir, file, section, key, value string) error {
	return app.RunInDirectory(verbosity, dir, func(ctx *app.Context) error {
		if file == "" || file == app.SettingsFile {
			return ctx.SetSetting(section, key, value)
		}
		h, err := ctx.Conf.ReadConf(file)
		if errors.Is(err, conf.ErrIO) {
			h, err = ctx.Conf.CreateConf(file, nil)
		}
		if err != nil {
			return err
		}
		return ctx.Conf.SetProp(h, section, key, value)
	})
}
