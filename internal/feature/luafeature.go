package feature

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/dshills/caide/internal/app"
	"github.com/dshills/caide/internal/conf"
	"github.com/dshills/caide/internal/feature/luahost"
)

// Lua hook entry points a feature script may define.
const (
	luaProblemCreated    = "problem_created"
	luaProblemCheckedOut = "problem_checked_out"
)

// LuaFeature is a feature implemented by a sandboxed Lua script. The
// script defines global functions named after the hooks it handles; a
// missing function means the feature ignores that event.
type LuaFeature struct {
	manifest Manifest
	dir      string
	state    *luahost.State
}

// LoadLuaFeature loads the manifest and entry script of a feature
// directory.
func LoadLuaFeature(dir string) (*LuaFeature, error) {
	manifest, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}
	state := luahost.NewState()
	if err := state.DoFile(filepath.Join(dir, manifest.Main)); err != nil {
		state.Close()
		return nil, err
	}
	return &LuaFeature{manifest: manifest, dir: dir, state: state}, nil
}

// Name returns the manifest name.
func (f *LuaFeature) Name() string { return f.manifest.Name }

// Manifest returns the parsed manifest.
func (f *LuaFeature) Manifest() Manifest { return f.manifest }

// Close releases the feature's interpreter.
func (f *LuaFeature) Close() { f.state.Close() }

// ProblemCreated dispatches to the script's problem_created function.
func (f *LuaFeature) ProblemCreated(ctx *app.Context, problemID string) error {
	return f.dispatch(ctx, luaProblemCreated, problemID)
}

// ProblemCheckedOut dispatches to the script's problem_checked_out
// function.
func (f *LuaFeature) ProblemCheckedOut(ctx *app.Context, problemID string) error {
	return f.dispatch(ctx, luaProblemCheckedOut, problemID)
}

func (f *LuaFeature) dispatch(ctx *app.Context, hook, problemID string) error {
	if !f.state.HasFunction(hook) {
		return nil
	}
	// Rebind the host module so script callbacks reach the current
	// invocation's context; contexts never outlive an invocation.
	f.state.RegisterModule("caide", hostModule(ctx))
	_, err := f.state.Call(hook, problemID)
	return err
}

// hostModule exposes the execution context to a feature script.
func hostModule(ctx *app.Context) map[string]luahost.GoFunc {
	return map[string]luahost.GoFunc{
		"root": func(args []string) (string, error) {
			return ctx.Root, nil
		},
		"log": func(args []string) (string, error) {
			ctx.Log.Info("%s", strings.Join(args, " "))
			return "", nil
		},
		"get_setting": func(args []string) (string, error) {
			if len(args) != 2 {
				return "", errors.New("get_setting(section, key)")
			}
			return ctx.GetSetting(args[0], args[1])
		},
		"set_setting": func(args []string) (string, error) {
			if len(args) != 3 {
				return "", errors.New("set_setting(section, key, value)")
			}
			return "", ctx.SetSetting(args[0], args[1], args[2])
		},
		"get_prop": func(args []string) (string, error) {
			if len(args) != 3 {
				return "", errors.New("get_prop(file, section, key)")
			}
			h, err := ctx.Conf.ReadConf(args[0])
			if err != nil {
				return "", err
			}
			return ctx.Conf.GetProp(h, args[1], args[2])
		},
		"set_prop": func(args []string) (string, error) {
			if len(args) != 4 {
				return "", errors.New("set_prop(file, section, key, value)")
			}
			h, err := ctx.Conf.ReadConf(args[0])
			if err != nil {
				if !errors.Is(err, conf.ErrIO) {
					return "", err
				}
				h, err = ctx.Conf.CreateConf(args[0], nil)
				if err != nil {
					return "", err
				}
			}
			return "", ctx.Conf.SetProp(h, args[1], args[2], args[3])
		},
	}
}
