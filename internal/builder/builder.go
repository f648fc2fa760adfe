// Package builder declares the interface between the runtime and
// external build/test drivers. A Builder compiles or checks a problem's
// solution; its internals (compilers, judges, runners) live outside the
// core and only consume the execution context it is handed.
package builder

import (
	"sort"

	"github.com/dshills/caide/internal/app"
)

// Builder drives an external build or test step for one problem. It
// runs inside the invocation's execution context and may read cached
// configuration; a returned error aborts the invocation.
type Builder interface {
	// Name is the identifier used in the [core] language setting.
	Name() string

	// Build prepares or checks the solution of the given problem.
	Build(ctx *app.Context, problemID string) error
}

// Registry resolves builders by name.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder. Registering a duplicate name is an error.
func (r *Registry) Register(b Builder) error {
	name := b.Name()
	if name == "" {
		return app.Throw("builder with empty name")
	}
	if _, ok := r.builders[name]; ok {
		return app.Throw("builder %q registered twice", name)
	}
	r.builders[name] = b
	return nil
}

// Get returns a builder by name.
func (r *Registry) Get(name string) (Builder, bool) {
	b, ok := r.builders[name]
	return b, ok
}

// Names lists the registered builder names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForLanguage resolves the builder for the workspace's configured
// language.
func (r *Registry) ForLanguage(ctx *app.Context) (Builder, error) {
	lang, err := ctx.GetSetting("core", "language")
	if err != nil {
		return nil, err
	}
	b, ok := r.builders[lang]
	if !ok {
		return nil, app.Throw("no builder for language %q", lang)
	}
	return b, nil
}
