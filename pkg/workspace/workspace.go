// Package workspace discovers and loads all member packages of a multi-package
// workspace.
//
// Discovery starts at the workspace root manifest, expands the member and
// exclude glob patterns against the filesystem, and yields a deterministic,
// duplicate-free list of manifest paths. Loading parses every discovered
// manifest (in parallel, order preserved) and enforces workspace-level
// invariants such as package name uniqueness.
//
// # Membership rules
//
//   - Member patterns are expanded with filepath.Glob relative to the root.
//   - Exclusions are applied after inclusions; a path matching both an
//     include and an exclude pattern is excluded.
//   - Paths are deduplicated by canonical form; the same manifest is never
//     returned twice.
//   - If the root manifest also declares a package, the root package is the
//     first member.
//
// A root manifest that is missing, or that declares no members while not
// being a package itself, fails with a workspace-level error code.
package workspace

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cratescope/pkg/errors"
	"github.com/matzehuels/cratescope/pkg/manifest"
)

// ManifestName is the file name of a package manifest.
const ManifestName = "Cargo.toml"

// Options configures workspace loading.
type Options struct {
	// Logger receives debug-level progress messages. Optional.
	Logger func(format string, args ...any)
	// Concurrency bounds parallel manifest reads. Defaults to GOMAXPROCS.
	// Parallelism never affects ordering: results are slotted back by index.
	Concurrency int
}

func (o Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger(format, args...)
	}
}

// Workspace holds all packages discovered under one root, in discovery order.
type Workspace struct {
	Root     string // Workspace root directory
	Packages []*manifest.Package
}

// Package returns the member with the given name.
func (w *Workspace) Package(name string) (*manifest.Package, bool) {
	for _, p := range w.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// rootFile is the slice of the root manifest that drives membership.
type rootFile struct {
	Package *struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Workspace *struct {
		Members []string `toml:"members"`
		Exclude []string `toml:"exclude"`
	} `toml:"workspace"`
}

// Discover enumerates the manifest paths of all workspace members.
//
// The result is finite, deterministic and free of duplicates: the root
// package first (when present), then members in declaration order of the
// members list, glob matches in lexical order (filepath.Glob ordering).
func Discover(root string) ([]string, error) {
	rootManifest := filepath.Join(root, ManifestName)
	data, err := os.ReadFile(rootManifest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeWorkspaceNotFound, err, "no %s at workspace root %s", ManifestName, root)
		}
		return nil, errors.Wrap(errors.ErrCodeWorkspaceNotFound, err, "reading workspace root %s", root)
	}

	var rf rootFile
	if _, err := toml.Decode(string(data), &rf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "parsing workspace root %s", rootManifest)
	}

	hasRootPackage := rf.Package != nil && rf.Package.Name != ""

	if rf.Workspace == nil {
		if hasRootPackage {
			return []string{rootManifest}, nil
		}
		return nil, errors.New(errors.ErrCodeInvalidWorkspace,
			"%s declares no workspace members and is not itself a package", rootManifest)
	}

	excluded, err := expandDirs(root, rf.Workspace.Exclude)
	if err != nil {
		return nil, err
	}

	var paths []string
	seen := map[string]bool{}
	add := func(manifestPath string) {
		canon := canonical(manifestPath)
		if seen[canon] {
			return
		}
		seen[canon] = true
		paths = append(paths, manifestPath)
	}

	if hasRootPackage {
		add(rootManifest)
	}

	for _, pattern := range rf.Workspace.Members {
		dirs, err := expandMember(root, pattern)
		if err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			// Exclusion takes precedence over inclusion.
			if excluded[canonical(dir)] {
				continue
			}
			add(filepath.Join(dir, ManifestName))
		}
	}

	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidWorkspace,
			"workspace %s has no members", root)
	}
	return paths, nil
}

// expandMember expands a single member pattern to package directories.
// A literal (glob-free) member must exist and contain a manifest; glob
// patterns simply expand to the matching package directories.
func expandMember(root, pattern string) ([]string, error) {
	full := filepath.Join(root, pattern)
	if !hasGlobMeta(pattern) {
		if _, err := os.Stat(filepath.Join(full, ManifestName)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err,
				"workspace member %q has no %s", pattern, ManifestName)
		}
		return []string{full}, nil
	}

	matches, err := filepath.Glob(full)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "bad member pattern %q", pattern)
	}
	var dirs []string
	for _, m := range matches {
		if info, err := os.Stat(m); err != nil || !info.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(m, ManifestName)); err != nil {
			continue
		}
		dirs = append(dirs, m)
	}
	return dirs, nil
}

// expandDirs expands exclude patterns to a canonical directory set.
func expandDirs(root string, patterns []string) (map[string]bool, error) {
	set := map[string]bool{}
	for _, pattern := range patterns {
		full := filepath.Join(root, pattern)
		if !hasGlobMeta(pattern) {
			set[canonical(full)] = true
			continue
		}
		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "bad exclude pattern %q", pattern)
		}
		for _, m := range matches {
			set[canonical(m)] = true
		}
	}
	return set, nil
}

func hasGlobMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[':
			return true
		}
	}
	return false
}

// canonical resolves a path for deduplication. Symlinks are resolved when
// possible; otherwise the cleaned absolute path is used.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// Load discovers and parses all member packages under root.
//
// Manifest reads run concurrently (bounded by Options.Concurrency) but the
// resulting package order always matches Discover's path order: each goroutine
// writes to its own index. A single unreadable or malformed manifest aborts
// the whole load, since aggregate output over a partial workspace would be
// misleading. Duplicate package names abort with ErrCodeDuplicatePackage.
func Load(ctx context.Context, root string, opts Options) (*Workspace, error) {
	paths, err := Discover(root)
	if err != nil {
		return nil, err
	}
	opts.logf("discovered %d manifest(s) under %s", len(paths), root)

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	pkgs := make([]*manifest.Package, len(paths))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			pkg, err := manifest.Load(path)
			if err != nil {
				return err
			}
			opts.logf("loaded %s (%d dependencies)", path, len(pkg.Dependencies))
			pkgs[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := map[string]string{}
	for _, p := range pkgs {
		if prev, ok := names[p.Name]; ok {
			return nil, errors.New(errors.ErrCodeDuplicatePackage,
				"package %q declared by both %s and %s", p.Name, prev, p.ManifestPath)
		}
		names[p.Name] = p.ManifestPath
	}

	return &Workspace{Root: root, Packages: pkgs}, nil
}
