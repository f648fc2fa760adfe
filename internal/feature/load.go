package feature

import (
	"os"
	"path/filepath"
)

// FeaturesDir is the workspace subdirectory scanned for Lua features.
const FeaturesDir = "caide_features"

// LoadDir builds a registry holding the builtin features plus every Lua
// feature found under root's features directory. A missing directory is
// not an error; a directory entry without a manifest is skipped. The
// caller owns the registry and must Close it to release the feature
// interpreters.
func LoadDir(root string) (*Registry, error) {
	reg := BuiltinRegistry()
	base := filepath.Join(root, FeaturesDir)
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(base, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err != nil {
			continue
		}
		f, err := LoadLuaFeature(dir)
		if err != nil {
			reg.Close()
			return nil, err
		}
		if err := reg.Register(f); err != nil {
			f.Close()
			reg.Close()
			return nil, err
		}
	}
	return reg, nil
}
