package feature

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// ManifestFile is the fixed manifest name inside a feature directory.
const ManifestFile = "feature.toml"

// Manifest describes a scripted feature.
type Manifest struct {
	// Name is the feature's identifier; required.
	Name string `toml:"name"`

	// Version is an informational version string.
	Version string `toml:"version"`

	// Description is human-readable documentation.
	Description string `toml:"description"`

	// Main is the entry script, relative to the feature directory.
	// Defaults to "init.lua".
	Main string `toml:"main"`
}

// LoadManifest reads and validates the manifest of a feature directory.
func LoadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return Manifest{}, fmt.Errorf("feature manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("feature manifest %s: %w", dir, err)
	}
	if m.Name == "" {
		return Manifest{}, fmt.Errorf("feature manifest %s: missing name", dir)
	}
	if m.Main == "" {
		m.Main = "init.lua"
	}
	return m, nil
}
