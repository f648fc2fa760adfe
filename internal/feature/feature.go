package feature

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/caide/internal/app"
	"github.com/dshills/caide/internal/conf"
)

// Feature is an optional hook that reacts to workspace events. Hooks
// run inside the invocation's execution context and may call back into
// the configuration store; a returned error aborts the invocation
// through the common error channel.
type Feature interface {
	// Name is the stable identifier used in [core] features.
	Name() string

	// ProblemCreated runs after a problem's directory and config have
	// been set up.
	ProblemCreated(ctx *app.Context, problemID string) error

	// ProblemCheckedOut runs after a problem becomes the active one.
	ProblemCheckedOut(ctx *app.Context, problemID string) error
}

// Registry holds the known features by name.
type Registry struct {
	features map[string]Feature
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{features: make(map[string]Feature)}
}

// Register adds a feature. Registering a duplicate name is an error.
func (r *Registry) Register(f Feature) error {
	name := f.Name()
	if name == "" {
		return app.Throw("feature with empty name")
	}
	if _, ok := r.features[name]; ok {
		return app.Throw("feature %q registered twice", name)
	}
	r.features[name] = f
	return nil
}

// Close releases every registered feature holding external resources
// (Lua interpreters). The registry must not be used afterwards.
func (r *Registry) Close() {
	for _, f := range r.features {
		if c, ok := f.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

// Get returns a feature by name.
func (r *Registry) Get(name string) (Feature, bool) {
	f, ok := r.features[name]
	return f, ok
}

// Names lists the registered feature names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.features))
	for name := range r.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enabled resolves the [core] features setting to the features that
// should run for this workspace. A missing setting means none; naming
// an unregistered feature is an error.
func (r *Registry) Enabled(ctx *app.Context) ([]Feature, error) {
	raw, err := ctx.GetSetting("core", "features")
	if err != nil {
		if errors.Is(err, conf.ErrNoOption) {
			return nil, nil
		}
		return nil, err
	}
	var enabled []Feature
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, ok := r.features[name]
		if !ok {
			return nil, app.Throw("unknown feature %q in settings", name)
		}
		enabled = append(enabled, f)
	}
	return enabled, nil
}

// ProblemCreated fires the hook on every enabled feature.
func (r *Registry) ProblemCreated(ctx *app.Context, problemID string) error {
	return r.fire(ctx, "problem created", func(f Feature) error {
		return f.ProblemCreated(ctx, problemID)
	})
}

// ProblemCheckedOut fires the hook on every enabled feature.
func (r *Registry) ProblemCheckedOut(ctx *app.Context, problemID string) error {
	return r.fire(ctx, "problem checked out", func(f Feature) error {
		return f.ProblemCheckedOut(ctx, problemID)
	})
}

func (r *Registry) fire(ctx *app.Context, event string, hook func(Feature) error) error {
	enabled, err := r.Enabled(ctx)
	if err != nil {
		return err
	}
	for _, f := range enabled {
		ctx.Log.Debug("feature %s: %s", f.Name(), event)
		if err := hook(f); err != nil {
			return fmt.Errorf("feature %s: %w", f.Name(), err)
		}
	}
	return nil
}
