package workspace

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/cratescope/pkg/errors"
)

// writeTree creates a workspace layout from relative path -> file content.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func pkgManifest(name string) string {
	return "[package]\nname = \"" + name + "\"\n"
}

func TestDiscoverGlobMembers(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Cargo.toml":              "[workspace]\nmembers = [\"crates/*\"]\n",
		"crates/alpha/Cargo.toml": pkgManifest("alpha"),
		"crates/beta/Cargo.toml":  pkgManifest("beta"),
		"crates/notes/README.md":  "not a package",
	})

	paths, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	want := []string{
		filepath.Join(root, "crates/alpha", ManifestName),
		filepath.Join(root, "crates/beta", ManifestName),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestDiscoverExcludeWins(t *testing.T) {
	// A directory matched by both members and exclude must be excluded.
	root := writeTree(t, map[string]string{
		"Cargo.toml":               "[workspace]\nmembers = [\"crates/*\"]\nexclude = [\"crates/legacy\"]\n",
		"crates/core/Cargo.toml":   pkgManifest("core"),
		"crates/legacy/Cargo.toml": pkgManifest("legacy"),
	})

	paths, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	want := []string{filepath.Join(root, "crates/core", ManifestName)}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestDiscoverRootPackageFirst(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Cargo.toml":     pkgManifest("root") + "\n[workspace]\nmembers = [\"sub\"]\n",
		"sub/Cargo.toml": pkgManifest("sub"),
	})

	paths, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	want := []string{
		filepath.Join(root, ManifestName),
		filepath.Join(root, "sub", ManifestName),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestDiscoverSinglePackage(t *testing.T) {
	// A manifest with a package section and no workspace table is a
	// one-member workspace.
	root := writeTree(t, map[string]string{
		"Cargo.toml": pkgManifest("solo"),
	})

	paths, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	want := []string{filepath.Join(root, ManifestName)}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestDiscoverDedupeOverlappingPatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Cargo.toml":            "[workspace]\nmembers = [\"crates/*\", \"crates/one\"]\n",
		"crates/one/Cargo.toml": pkgManifest("one"),
	})

	paths, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("paths = %v, want exactly one entry", paths)
	}
}

func TestDiscoverErrors(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		wantCode errors.Code
	}{
		{
			name:     "no root manifest",
			files:    map[string]string{},
			wantCode: errors.ErrCodeWorkspaceNotFound,
		},
		{
			name: "neither workspace nor package",
			files: map[string]string{
				"Cargo.toml": "# empty\n",
			},
			wantCode: errors.ErrCodeInvalidWorkspace,
		},
		{
			name: "literal member missing",
			files: map[string]string{
				"Cargo.toml": "[workspace]\nmembers = [\"gone\"]\n",
			},
			wantCode: errors.ErrCodeInvalidWorkspace,
		},
		{
			name: "glob matches nothing",
			files: map[string]string{
				"Cargo.toml": "[workspace]\nmembers = [\"crates/*\"]\n",
			},
			wantCode: errors.ErrCodeInvalidWorkspace,
		},
		{
			name: "malformed root manifest",
			files: map[string]string{
				"Cargo.toml": "[workspace\nmembers = []\n",
			},
			wantCode: errors.ErrCodeInvalidWorkspace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeTree(t, tt.files)
			_, err := Discover(root)
			if err == nil {
				t.Fatal("Discover succeeded, want error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Cargo.toml":             "[workspace]\nmembers = [\"crates/*\"]\n",
		"crates/core/Cargo.toml": pkgManifest("core") + "\n[dependencies]\nserde = \"1.0\"\n",
		"crates/cli/Cargo.toml":  pkgManifest("cli"),
	})

	var logged int
	ws, err := Load(context.Background(), root, Options{
		Logger: func(format string, args ...any) { logged++ },
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var names []string
	for _, p := range ws.Packages {
		names = append(names, p.Name)
	}
	want := []string{"cli", "core"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("package order = %v, want %v", names, want)
	}
	if logged == 0 {
		t.Error("logger never invoked")
	}

	core, ok := ws.Package("core")
	if !ok {
		t.Fatal("Package(core) not found")
	}
	if len(core.Dependencies) != 1 || core.Dependencies[0].Name != "serde" {
		t.Errorf("core dependencies = %+v, want serde", core.Dependencies)
	}
	if _, ok := ws.Package("absent"); ok {
		t.Error("Package(absent) found, want absent")
	}
}

func TestLoadDuplicatePackage(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Cargo.toml":   "[workspace]\nmembers = [\"a\", \"b\"]\n",
		"a/Cargo.toml": pkgManifest("same"),
		"b/Cargo.toml": pkgManifest("same"),
	})

	_, err := Load(context.Background(), root, Options{})
	if !errors.Is(err, errors.ErrCodeDuplicatePackage) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeDuplicatePackage)
	}
}

func TestLoadMemberManifestError(t *testing.T) {
	// One malformed member manifest aborts the whole load.
	root := writeTree(t, map[string]string{
		"Cargo.toml":     "[workspace]\nmembers = [\"ok\", \"bad\"]\n",
		"ok/Cargo.toml":  pkgManifest("ok"),
		"bad/Cargo.toml": "[package\nname = bad\n",
	})

	_, err := Load(context.Background(), root, Options{Concurrency: 1})
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidManifest)
	}
}
