package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cratescope/pkg/errors"
)

// rawManifest mirrors the manifest sections the tool cares about. Dependency
// values are kept as primitives because a declaration is either a bare version
// string or a table; the shape is only known per entry.
type rawManifest struct {
	Package *struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies      map[string]toml.Primitive `toml:"dependencies"`
	DevDependencies   map[string]toml.Primitive `toml:"dev-dependencies"`
	BuildDependencies map[string]toml.Primitive `toml:"build-dependencies"`
	Features          map[string][]string       `toml:"features"`
}

// depTable is the long form of a dependency declaration.
type depTable struct {
	Version         string   `toml:"version"`
	Path            string   `toml:"path"`
	Git             string   `toml:"git"`
	Branch          string   `toml:"branch"`
	Tag             string   `toml:"tag"`
	Rev             string   `toml:"rev"`
	Registry        string   `toml:"registry"`
	Package         string   `toml:"package"`
	Features        []string `toml:"features"`
	Optional        bool     `toml:"optional"`
	DefaultFeatures *bool    `toml:"default-features"`
	Workspace       bool     `toml:"workspace"`
}

// Load reads and parses the manifest at path.
//
// A missing or unreadable file yields ErrCodeManifestNotFound, malformed TOML
// or a missing package name yields ErrCodeInvalidManifest; both carry the
// offending path. Absent optional sections (dependencies, features) default to
// empty collections and are never an error.
func Load(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeManifestNotFound, err, "manifest not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeManifestNotFound, err, "reading manifest: %s", path)
	}

	var raw rawManifest
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parsing manifest: %s", path)
	}

	if raw.Package == nil || raw.Package.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "missing package name in %s", path)
	}
	if err := errors.ValidatePackageName(raw.Package.Name); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "package name in %s", path)
	}

	pkg := &Package{
		Name:         raw.Package.Name,
		Version:      raw.Package.Version,
		ManifestPath: path,
		Dependencies: []Dependency{},
		Features:     []FeatureGroup{},
	}

	sections := []struct {
		key     string
		entries map[string]toml.Primitive
		kind    DependencyKind
	}{
		{"dependencies", raw.Dependencies, KindNormal},
		{"dev-dependencies", raw.DevDependencies, KindDev},
		{"build-dependencies", raw.BuildDependencies, KindBuild},
	}
	for _, sec := range sections {
		for _, name := range sectionKeys(md, sec.key) {
			prim, ok := sec.entries[name]
			if !ok {
				continue
			}
			dep, err := decodeDependency(md, name, sec.kind, prim)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err,
					"dependency %q in %s", name, path)
			}
			pkg.Dependencies = append(pkg.Dependencies, dep)
		}
	}

	for _, name := range sectionKeys(md, "features") {
		targets, ok := raw.Features[name]
		if !ok {
			continue
		}
		pkg.Features = append(pkg.Features, FeatureGroup{
			Name:    name,
			Targets: dedupe(targets),
		})
	}

	return pkg, nil
}

// decodeDependency handles the two declaration shapes: a bare constraint
// string ("1.0") or a table with version/source, features and flags.
func decodeDependency(md toml.MetaData, name string, kind DependencyKind, prim toml.Primitive) (Dependency, error) {
	dep := Dependency{
		Name:            name,
		Kind:            kind,
		Features:        []string{},
		DefaultFeatures: true,
	}

	var constraint string
	if err := md.PrimitiveDecode(prim, &constraint); err == nil {
		dep.Constraint = constraint
		return dep, nil
	}

	var t depTable
	if err := md.PrimitiveDecode(prim, &t); err != nil {
		return Dependency{}, fmt.Errorf("unsupported declaration shape: %w", err)
	}

	dep.Constraint = formatConstraint(t)
	dep.Optional = t.Optional
	dep.Features = dedupe(t.Features)
	if t.DefaultFeatures != nil {
		dep.DefaultFeatures = *t.DefaultFeatures
	}
	return dep, nil
}

// formatConstraint collapses the version/source fields into one opaque
// specifier. The result is display-only and never interpreted.
func formatConstraint(t depTable) string {
	switch {
	case t.Version != "":
		return t.Version
	case t.Git != "":
		ref := t.Branch
		if ref == "" {
			ref = t.Tag
		}
		if ref == "" {
			ref = t.Rev
		}
		if ref != "" {
			return fmt.Sprintf("git:%s#%s", t.Git, ref)
		}
		return "git:" + t.Git
	case t.Path != "":
		return "path:" + t.Path
	case t.Workspace:
		return "workspace"
	default:
		return "*"
	}
}

// sectionKeys returns the entry names declared directly under the given
// top-level section, in file order. MetaData.Keys reports every defined key
// path, so nested keys (inline table fields) are filtered out and repeated
// prefixes collapse to their first occurrence.
func sectionKeys(md toml.MetaData, section string) []string {
	var names []string
	seen := map[string]bool{}
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != section {
			continue
		}
		name := key[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// dedupe drops repeated names, keeping first-occurrence order (set semantics).
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
