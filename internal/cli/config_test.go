package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.ManifestPath != "." {
		t.Errorf("ManifestPath = %q, want %q", cfg.ManifestPath, ".")
	}
	if cfg.Plain {
		t.Error("Plain = true, want false by default")
	}
	if cfg.GraphFormat != "dot" {
		t.Errorf("GraphFormat = %q, want %q", cfg.GraphFormat, "dot")
	}
}

func TestLoadConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "manifest_path: /tmp/workspaces/main\nplain: true\ngraph:\n  format: svg\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.ManifestPath != "/tmp/workspaces/main" {
		t.Errorf("ManifestPath = %q, want configured path", cfg.ManifestPath)
	}
	if !cfg.Plain {
		t.Error("Plain = false, want true from config")
	}
	if cfg.GraphFormat != "svg" {
		t.Errorf("GraphFormat = %q, want %q", cfg.GraphFormat, "svg")
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir failed: %v", err)
	}
	if want := filepath.Join("/custom/config", appName); dir != want {
		t.Errorf("configDir = %q, want %q", dir, want)
	}
}
