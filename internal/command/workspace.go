package command

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/dshills/caide/internal/app"
	"github.com/dshills/caide/internal/conf"
	"github.com/dshills/caide/internal/feature"
	"github.com/dshills/caide/internal/problem"
)

// ProblemConfFile is the per-problem configuration file name.
const ProblemConfFile = "problem.ini"

// ArchiveDir is the directory archived problems move into.
const ArchiveDir = "caide_archive"

// Init creates a new workspace in dir by writing a fresh settings file.
func Init(verbosity app.Verbosity, dir string) error {
	return app.RunInNewDirectory(verbosity, dir, func(ctx *app.Context) error {
		ctx.Log.Info("initialized workspace in %s", ctx.Root)
		return nil
	})
}

// AddProblem creates a problem directory with its configuration, makes
// it the active problem, and fires the feature hooks. It returns the
// derived problem ID.
func AddProblem(verbosity app.Verbosity, dir, name, typeSpec string, reg *feature.Registry) (string, error) {
	typ, err := resolveType(typeSpec)
	if err != nil {
		return "", err
	}
	id := problem.MakeID(name)
	p := problem.New(name, id, typ)

	err = app.RunInDirectory(verbosity, dir, func(ctx *app.Context) error {
		h, err := ctx.Conf.CreateConf(filepath.Join(id, ProblemConfFile), nil)
		if err != nil {
			if errors.Is(err, conf.ErrAlreadyExists) {
				return app.Throw("problem %q already exists", id)
			}
			return err
		}
		if err := writeProblem(ctx, h, p); err != nil {
			return err
		}
		if err := ctx.SetSetting("core", "problem", id); err != nil {
			return err
		}
		if err := reg.ProblemCreated(ctx, id); err != nil {
			return err
		}
		if err := reg.ProblemCheckedOut(ctx, id); err != nil {
			return err
		}
		ctx.Log.Info("created problem %s", id)
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Checkout makes an existing problem the active one and fires the
// feature hooks.
func Checkout(verbosity app.Verbosity, dir, id string, reg *feature.Registry) error {
	return app.RunInDirectory(verbosity, dir, func(ctx *app.Context) error {
		if _, err := readProblemConf(ctx, id); err != nil {
			return err
		}
		if err := ctx.SetSetting("core", "problem", id); err != nil {
			return err
		}
		if err := reg.ProblemCheckedOut(ctx, id); err != nil {
			return err
		}
		ctx.Log.Info("checked out %s", id)
		return nil
	})
}

// ActiveProblem returns the workspace's active problem ID ("" when none
// is set).
func ActiveProblem(verbosity app.Verbosity, dir string) (string, error) {
	var id string
	err := app.RunInDirectory(verbosity, dir, func(ctx *app.Context) error {
		var err error
		id, err = activeProblem(ctx)
		return err
	})
	return id, err
}

// List returns the IDs of all problems in the workspace, sorted.
func List(verbosity app.Verbosity, dir string) ([]string, error) {
	var ids []string
	err := app.RunInDirectory(verbosity, dir, func(ctx *app.Context) error {
		entries, err := os.ReadDir(ctx.Root)
		if err != nil {
			return fmt.Errorf("%w: %v", conf.ErrIO, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			marker := filepath.Join(ctx.Root, entry.Name(), ProblemConfFile)
			if _, err := os.Stat(marker); err == nil {
				ids = append(ids, entry.Name())
			}
		}
		sort.Strings(ids)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Archive moves a problem directory under the archive directory and
// clears it as the active problem if needed.
func Archive(verbosity app.Verbosity, dir, id string) error {
	return app.RunInDirectory(verbosity, dir, func(ctx *app.Context) error {
		src := filepath.Join(ctx.Root, id)
		if _, err := os.Stat(filepath.Join(src, ProblemConfFile)); err != nil {
			return app.Throw("problem %q not found", id)
		}
		active, err := activeProblem(ctx)
		if err != nil {
			return err
		}
		if active == id {
			if err := ctx.SetSetting("core", "problem", ""); err != nil {
				return err
			}
		}
		dst := filepath.Join(ctx.Root, ArchiveDir, id)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("%w: %v", conf.ErrIO, err)
		}
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("%w: %v", conf.ErrIO, err)
		}
		ctx.Log.Info("archived %s", id)
		return nil
	})
}

// activeProblem reads [core] problem, treating a missing option as
// unset.
func activeProblem(ctx *app.Context) (string, error) {
	id, err := ctx.GetSetting("core", "problem")
	if err != nil {
		if errors.Is(err, conf.ErrNoOption) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

// resolveType parses a problem type spec; an empty spec defaults to a
// stream problem on the standard streams.
func resolveType(spec string) (problem.Type, error) {
	if spec == "" {
		return problem.Stream{Input: problem.StdIn(), Output: problem.StdOut()}, nil
	}
	typ, ok := problem.ParseType(spec)
	if !ok {
		return nil, app.Throw("unrecognized problem type %q", spec)
	}
	return typ, nil
}

// writeProblem stores a problem's fields in its config document.
func writeProblem(ctx *app.Context, h conf.Handle, p problem.Problem) error {
	if err := ctx.Conf.SetProp(h, "problem", "name", p.Name); err != nil {
		return err
	}
	if err := ctx.Conf.SetProp(h, "problem", "id", p.ID); err != nil {
		return err
	}
	if err := ctx.Conf.SetProp(h, "problem", "type", p.Type.Encode()); err != nil {
		return err
	}
	tolerance := strconv.FormatFloat(p.FloatTolerance, 'g', -1, 64)
	return ctx.Conf.SetProp(h, "problem", "double_precision", tolerance)
}

// readProblemConf loads a problem's config, mapping a missing file to a
// friendlier error.
func readProblemConf(ctx *app.Context, id string) (conf.Handle, error) {
	h, err := ctx.Conf.ReadConf(filepath.Join(id, ProblemConfFile))
	if err != nil {
		if errors.Is(err, conf.ErrIO) {
			return conf.Handle{}, app.Throw("problem %q not found", id)
		}
		return conf.Handle{}, err
	}
	return h, nil
}

// ReadProblem loads the full problem record for id.
func ReadProblem(verbosity app.Verbosity, dir, id string) (problem.Problem, error) {
	var p problem.Problem
	err := app.RunInDirectory(verbosity, dir, func(ctx *app.Context) error {
		h, err := readProblemConf(ctx, id)
		if err != nil {
			return err
		}
		if p.Name, err = ctx.Conf.GetProp(h, "problem", "name"); err != nil {
			return err
		}
		if p.ID, err = ctx.Conf.GetProp(h, "problem", "id"); err != nil {
			return err
		}
		p.Type, err = conf.GetTypedProp(ctx.Conf, h, "problem", "type", problem.ParseType)
		if err != nil {
			return err
		}
		p.FloatTolerance, err = conf.GetTypedProp(ctx.Conf, h, "problem", "double_precision",
			func(raw string) (float64, bool) {
				v, err := strconv.ParseFloat(raw, 64)
				return v, err == nil
			})
		return err
	})
	return p, err
}
