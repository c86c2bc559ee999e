package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked up next to the sources.
const ManifestFileName = "tarn.yml"

// Manifest is the build-layer project description. The compiler core
// consumes it for source/macro search paths and does not interpret
// anything else in it.
type Manifest struct {
	Name       string   `yaml:"name"`
	SourceDirs []string `yaml:"sources"`
	MacroDirs  []string `yaml:"macros"`
}

// LoadManifest reads and validates the manifest in dir. A missing file
// is not an error: a default manifest rooted at dir is returned.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{Name: filepath.Base(dir), SourceDirs: []string{"."}}, nil
	}
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%s: missing project name", path)
	}
	if len(m.SourceDirs) == 0 {
		m.SourceDirs = []string{"."}
	}
	return &m, nil
}
