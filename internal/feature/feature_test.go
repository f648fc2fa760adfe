package feature

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/caide/internal/app"
)

// fakeFeature records hook invocations.
type fakeFeature struct {
	name    string
	created []string
	out     []string
	fail    error
}

func (f *fakeFeature) Name() string { return f.name }

func (f *fakeFeature) ProblemCreated(ctx *app.Context, id string) error {
	f.created = append(f.created, id)
	return f.fail
}

func (f *fakeFeature) ProblemCheckedOut(ctx *app.Context, id string) error {
	f.out = append(f.out, id)
	return f.fail
}

func workspace(t *testing.T, features string) string {
	t.Helper()
	root := t.TempDir()
	settings := "[core]\nlanguage = cpp\nfeatures = " + features + "\nproblem = \n"
	if err := os.WriteFile(filepath.Join(root, app.SettingsFile), []byte(settings), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeFeature{name: "x"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register(&fakeFeature{name: "x"}); err == nil {
		t.Fatal("duplicate Register succeeded")
	}
}

func TestEnabledFromSettings(t *testing.T) {
	r := NewRegistry()
	a := &fakeFeature{name: "alpha"}
	b := &fakeFeature{name: "beta"}
	if err := r.Register(a); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(b); err != nil {
		t.Fatal(err)
	}

	root := workspace(t, "alpha, beta")
	err := app.RunInDirectory(app.Silent, root, func(ctx *app.Context) error {
		enabled, err := r.Enabled(ctx)
		if err != nil {
			return err
		}
		if len(enabled) != 2 {
			t.Errorf("enabled = %d features, want 2", len(enabled))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestEnabledUnknownFeature(t *testing.T) {
	r := NewRegistry()
	root := workspace(t, "ghost")
	err := app.RunInDirectory(app.Silent, root, func(ctx *app.Context) error {
		_, err := r.Enabled(ctx)
		return err
	})
	if !errors.Is(err, app.ErrOther) {
		t.Fatalf("error = %v, want ErrOther", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error %q does not name the feature", err)
	}
}

func TestEnabledEmptySetting(t *testing.T) {
	r := NewRegistry()
	root := workspace(t, "")
	err := app.RunInDirectory(app.Silent, root, func(ctx *app.Context) error {
		enabled, err := r.Enabled(ctx)
		if err != nil {
			return err
		}
		if len(enabled) != 0 {
			t.Errorf("enabled = %v, want none", enabled)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestFireHooks(t *testing.T) {
	r := NewRegistry()
	f := &fakeFeature{name: "alpha"}
	if err := r.Register(f); err != nil {
		t.Fatal(err)
	}

	root := workspace(t, "alpha")
	err := app.RunInDirectory(app.Silent, root, func(ctx *app.Context) error {
		if err := r.ProblemCreated(ctx, "a1"); err != nil {
			return err
		}
		return r.ProblemCheckedOut(ctx, "a1")
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(f.created) != 1 || f.created[0] != "a1" {
		t.Errorf("created hooks = %v", f.created)
	}
	if len(f.out) != 1 || f.out[0] != "a1" {
		t.Errorf("checkout hooks = %v", f.out)
	}
}

func TestHookFailureAbortsRun(t *testing.T) {
	r := NewRegistry()
	f := &fakeFeature{name: "alpha", fail: errors.New("hook exploded")}
	if err := r.Register(f); err != nil {
		t.Fatal(err)
	}

	root := workspace(t, "alpha")
	err := app.RunInDirectory(app.Silent, root, func(ctx *app.Context) error {
		if err := ctx.SetSetting("core", "problem", "a1"); err != nil {
			return err
		}
		return r.ProblemCreated(ctx, "a1")
	})
	if err == nil || !strings.Contains(err.Error(), "hook exploded") {
		t.Fatalf("error = %v, want hook failure", err)
	}

	// The settings mutation must not have been committed.
	data, readErr := os.ReadFile(filepath.Join(root, app.SettingsFile))
	if readErr != nil {
		t.Fatal(readErr)
	}
	if strings.Contains(string(data), "a1") {
		t.Error("failed hook still committed settings")
	}
}

func TestTestDirFeature(t *testing.T) {
	r := BuiltinRegistry()
	if _, ok := r.Get("testdir"); !ok {
		t.Fatal("builtin registry lacks testdir")
	}

	root := workspace(t, "testdir")
	err := app.RunInDirectory(app.Silent, root, func(ctx *app.Context) error {
		return r.ProblemCreated(ctx, "a1")
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	info, err := os.Stat(filepath.Join(root, "a1", ".caideproblem", "test"))
	if err != nil || !info.IsDir() {
		t.Errorf("test directory missing: %v", err)
	}
}
