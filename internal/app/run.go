package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/caide/internal/conf"
)

// Operation is a unit of work executed against an execution context.
// It may read, mutate and flush cached configuration; returning an
// error aborts the invocation with nothing written to disk.
type Operation func(*Context) error

// RunInDirectory executes op inside the workspace rooted at root.
//
// The driver loads the settings file, constructs the context with an
// empty cache, and runs op. Only when op succeeds are the dirty cached
// documents committed to disk; on any failure — including a recovered
// panic from low-level I/O — no file is modified and the failure is
// returned through the common error channel.
func RunInDirectory(verbosity Verbosity, root string, op Operation) error {
	return run(verbosity, root, op, false)
}

// RunInNewDirectory is the variant used to initialize a workspace: the
// settings file is created in the cache instead of being read from
// disk, and is written out when the operation commits. It fails if the
// workspace already carries a settings file.
func RunInNewDirectory(verbosity Verbosity, root string, op Operation) error {
	return run(verbosity, root, op, true)
}

func run(verbosity Verbosity, root string, op Operation, fresh bool) (err error) {
	logger := NewLogger(verbosity, os.Stderr)

	defer func() {
		if r := recover(); r != nil {
			logger.Debug("recovered panic: %v", r)
			err = fmt.Errorf("%w: %v", ErrOther, r)
		}
	}()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", conf.ErrIO, root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", conf.ErrIO, absRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", conf.ErrIO, absRoot)
	}

	store := conf.NewStore(absRoot)
	settings, err := loadSettings(store, absRoot, fresh)
	if err != nil {
		logger.Debug("settings load failed: %v", err)
		return err
	}

	ctx := &Context{
		Root:      absRoot,
		Verbosity: verbosity,
		Settings:  settings,
		Conf:      store,
		Log:       logger,
	}

	if err := op(ctx); err != nil {
		logger.Debug("operation failed, discarding %d cached change(s): %v",
			len(store.DirtyPaths()), err)
		return err
	}

	for _, path := range store.DirtyPaths() {
		logger.Debug("writing %s", path)
	}
	return store.Commit()
}

// loadSettings reads the settings file into the cache, or seeds a new
// one when initializing a fresh workspace.
func loadSettings(store *conf.Store, root string, fresh bool) (conf.Handle, error) {
	path := filepath.Join(root, SettingsFile)
	if fresh {
		if _, err := os.Stat(path); err == nil {
			return conf.Handle{}, Throw("%s already contains %s", root, SettingsFile)
		}
		h, err := store.CreateConf(SettingsFile, defaultSettings())
		if err != nil {
			return conf.Handle{}, fmt.Errorf("%w: %v", ErrSettingsLoad, err)
		}
		return h, nil
	}
	h, err := store.ReadConf(SettingsFile)
	if err != nil {
		return conf.Handle{}, fmt.Errorf("%w: %v", ErrSettingsLoad, err)
	}
	return h, nil
}

// defaultSettings builds the settings document seeded by workspace
// initialization.
func defaultSettings() *conf.Document {
	doc := conf.NewDocument()
	// Set never fails for non-empty keys on a fresh document.
	_ = doc.Set("core", "language", "cpp")
	_ = doc.Set("core", "features", "")
	_ = doc.Set("core", "problem", "")
	return doc
}
