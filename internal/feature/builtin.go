package feature

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/caide/internal/app"
)

// TestDirFeature creates the test-case directory skeleton for every new
// problem so test runners have a fixed place to look.
type TestDirFeature struct{}

// Name returns "testdir".
func (TestDirFeature) Name() string { return "testdir" }

// ProblemCreated creates <root>/<id>/.caideproblem/test.
func (TestDirFeature) ProblemCreated(ctx *app.Context, problemID string) error {
	dir := filepath.Join(ctx.Root, problemID, ".caideproblem", "test")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating test directory: %w", err)
	}
	return nil
}

// ProblemCheckedOut is a no-op.
func (TestDirFeature) ProblemCheckedOut(ctx *app.Context, problemID string) error {
	return nil
}

// BuiltinRegistry returns a registry preloaded with the builtin
// features.
func BuiltinRegistry() *Registry {
	r := NewRegistry()
	// Register never fails for distinct builtin names.
	_ = r.Register(TestDirFeature{})
	return r
}
