// Package manifest loads a single package manifest (Cargo.toml) into a fixed,
// typed schema.
//
// The loader is the trust boundary between raw TOML and the rest of the
// application: low-level syntax is delegated to [github.com/BurntSushi/toml],
// and everything downstream only ever sees [Package] values with defaulted
// collections. Declaration order of dependencies and feature groups is
// preserved so that repeated runs over unchanged input produce byte-identical
// output.
package manifest

// DependencyKind identifies which manifest section declared a dependency.
type DependencyKind string

const (
	// KindNormal is a regular [dependencies] entry.
	KindNormal DependencyKind = "normal"
	// KindDev is a [dev-dependencies] entry (tests, benches, examples).
	KindDev DependencyKind = "dev"
	// KindBuild is a [build-dependencies] entry (build scripts).
	KindBuild DependencyKind = "build"
)

// Dependency is a single dependency declaration from a manifest.
//
// The version/source constraint is carried as an opaque string; the tool
// never interprets it (no semver resolution).
type Dependency struct {
	Name            string         // Dependency name as used by the depending package
	Kind            DependencyKind // Section the declaration came from
	Constraint      string         // Opaque version/source specifier (e.g. "1.0", "path:../core")
	Optional        bool           // Declared with optional = true
	Features        []string       // Explicitly enabled features, declaration order, no duplicates
	DefaultFeatures bool           // false only when default-features = false was declared
}

// HasFeature reports whether name is in the explicitly enabled feature set.
func (d *Dependency) HasFeature(name string) bool {
	for _, f := range d.Features {
		if f == name {
			return true
		}
	}
	return false
}

// FeatureGroup is a package-level named feature and the targets it activates.
// Targets are either "dependency/feature" references or bare names
// (conventionally optional dependency names).
type FeatureGroup struct {
	Name    string
	Targets []string
}

// Package is the structured representation of one manifest.
//
// Dependencies and Features preserve declaration order. Both are never nil
// after a successful Load, only possibly empty.
type Package struct {
	Name         string
	Version      string
	ManifestPath string // Path the package was loaded from
	Dependencies []Dependency
	Features     []FeatureGroup
}

// Dependency returns the declaration for the named dependency.
func (p *Package) Dependency(name string) (*Dependency, bool) {
	for i := range p.Dependencies {
		if p.Dependencies[i].Name == name {
			return &p.Dependencies[i], true
		}
	}
	return nil, false
}

// FeatureGroup returns the named feature group definition.
func (p *Package) FeatureGroup(name string) (*FeatureGroup, bool) {
	for i := range p.Features {
		if p.Features[i].Name == name {
			return &p.Features[i], true
		}
	}
	return nil, false
}
