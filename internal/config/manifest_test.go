package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tarn-lang/tarn/internal/config"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	content := `name: demo
sources:
    - src
    - vendor/gen
macros:
    - macros
`
	if err := os.WriteFile(filepath.Join(dir, config.ManifestFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := config.LoadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "demo" {
		t.Errorf("expected name demo, got %q", m.Name)
	}
	if len(m.SourceDirs) != 2 || m.SourceDirs[0] != "src" {
		t.Errorf("unexpected source dirs: %v", m.SourceDirs)
	}
	if len(m.MacroDirs) != 1 || m.MacroDirs[0] != "macros" {
		t.Errorf("unexpected macro dirs: %v", m.MacroDirs)
	}
}

func TestLoadManifestMissingFileDefaults(t *testing.T) {
	dir := t.TempDir()
	m, err := config.LoadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != filepath.Base(dir) {
		t.Errorf("expected default name %q, got %q", filepath.Base(dir), m.Name)
	}
	if len(m.SourceDirs) != 1 || m.SourceDirs[0] != "." {
		t.Errorf("expected default source dir, got %v", m.SourceDirs)
	}
}

func TestLoadManifestRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ManifestFileName), []byte("sources:\n    - src\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadManifest(dir); err == nil {
		t.Error("expected an error for a manifest without a name")
	}
}
