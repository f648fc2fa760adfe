package feature

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/caide/internal/app"
)

func writeLuaFeature(t *testing.T, dir, manifest, script string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "init.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeLuaFeature(t, dir, "name = \"notes\"\nversion = \"1.0\"\n", "")
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if m.Name != "notes" || m.Version != "1.0" || m.Main != "init.lua" {
		t.Errorf("manifest = %+v", m)
	}
}

func TestLoadManifestMissingName(t *testing.T) {
	dir := t.TempDir()
	writeLuaFeature(t, dir, "version = \"1.0\"\n", "")
	if _, err := LoadManifest(dir); err == nil {
		t.Fatal("manifest without name accepted")
	}
}

func TestLoadManifestMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	writeLuaFeature(t, dir, "name = [unterminated\n", "")
	if _, err := LoadManifest(dir); err == nil {
		t.Fatal("malformed manifest accepted")
	}
}

func TestLuaFeatureHook(t *testing.T) {
	dir := t.TempDir()
	writeLuaFeature(t, dir,
		"name = \"notes\"\n",
		`function problem_created(id)
  caide.set_prop(id .. "/problem.ini", "problem", "notes", "created by lua")
  caide.log("created", id)
end
`)

	f, err := LoadLuaFeature(dir)
	if err != nil {
		t.Fatalf("LoadLuaFeature failed: %v", err)
	}
	defer f.Close()
	if f.Name() != "notes" {
		t.Fatalf("Name = %q", f.Name())
	}

	r := NewRegistry()
	if err := r.Register(f); err != nil {
		t.Fatal(err)
	}

	root := workspace(t, "notes")
	err = app.RunInDirectory(app.Silent, root, func(ctx *app.Context) error {
		if _, err := ctx.Conf.CreateConf("a1/problem.ini", nil); err != nil {
			return err
		}
		return r.ProblemCreated(ctx, "a1")
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "a1", "problem.ini"))
	if err != nil {
		t.Fatalf("problem.ini missing: %v", err)
	}
	if !strings.Contains(string(data), "created by lua") {
		t.Errorf("lua mutation not committed: %q", data)
	}
}

func TestLuaFeatureIgnoresMissingHook(t *testing.T) {
	dir := t.TempDir()
	writeLuaFeature(t, dir, "name = \"quiet\"\n", "-- defines no hooks\n")

	f, err := LoadLuaFeature(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	root := workspace(t, "")
	err = app.RunInDirectory(app.Silent, root, func(ctx *app.Context) error {
		return f.ProblemCreated(ctx, "a1")
	})
	if err != nil {
		t.Fatalf("missing hook should be a no-op, got %v", err)
	}
}

func TestLuaFeatureScriptError(t *testing.T) {
	dir := t.TempDir()
	writeLuaFeature(t, dir,
		"name = \"angry\"\n",
		"function problem_created(id) error(\"refuse \" .. id) end\n")

	f, err := LoadLuaFeature(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	root := workspace(t, "")
	err = app.RunInDirectory(app.Silent, root, func(ctx *app.Context) error {
		return f.ProblemCreated(ctx, "a1")
	})
	if err == nil || !strings.Contains(err.Error(), "refuse a1") {
		t.Fatalf("error = %v, want script error", err)
	}
}

func TestLoadLuaFeatureBadScript(t *testing.T) {
	dir := t.TempDir()
	writeLuaFeature(t, dir, "name = \"broken\"\n", "this is not lua\n")
	if _, err := LoadLuaFeature(dir); err == nil {
		t.Fatal("broken script accepted")
	}
}
