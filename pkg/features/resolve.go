// Package features computes the per-package view of enabled dependency
// features, and filters the aggregated result for display.
//
// Resolution is a local, display-level merge: for every dependency
// declaration the enabled set is the union of the explicitly listed features,
// features switched on by the package's own feature groups, and the "default"
// sentinel when default features are in effect. Feature groups expand one
// level only; group-to-group chaining is not supported, and a target that
// references no declared dependency degrades to a warning instead of failing
// the computation.
//
// The resolver is a pure function of its input: output ordering follows
// declaration order, so re-running on unchanged manifests is byte-stable.
package features

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/cratescope/pkg/manifest"
)

// DefaultSentinel marks that a dependency's default feature set is active.
// It is a display marker, not a real feature resolved against the registry.
const DefaultSentinel = "default"

// Target is a parsed feature-group activation target.
type Target struct {
	Raw        string // Original target text
	Dependency string // Referenced dependency name
	Feature    string // Dependency feature to enable; empty for bare activations
	Weak       bool   // "dep?/feature" form: only applies if the dependency is enabled
	Unresolved bool   // True when Dependency matches no declaration
}

// Warning records a feature-group target that references no declared
// dependency. Warnings annotate the output; they never abort resolution.
type Warning struct {
	Feature string // Feature group the target belongs to
	Target  string // Raw target text
}

func (w Warning) String() string {
	return fmt.Sprintf("feature %q: target %q references no declared dependency", w.Feature, w.Target)
}

// DepFeatures is the resolved, display-ready feature set of one dependency.
type DepFeatures struct {
	Name       string
	Kind       manifest.DependencyKind
	Constraint string
	Optional   bool
	Enabled    []string // Explicit features, then group-activated, then the sentinel
}

// View is the resolved feature table of one package.
// Deps preserves the manifest's declaration order.
type View struct {
	Package  string
	Version  string
	Deps     []DepFeatures
	Warnings []Warning
}

// Dep returns the resolved entry for the named dependency.
func (v *View) Dep(name string) (*DepFeatures, bool) {
	for i := range v.Deps {
		if v.Deps[i].Name == name {
			return &v.Deps[i], true
		}
	}
	return nil, false
}

// ParseTarget interprets a single feature-group target against a package's
// dependency declarations.
//
// Supported forms:
//
//	"serde/derive"   enable feature "derive" on dependency "serde"
//	"serde?/derive"  weak variant, same display semantics
//	"dep:serde"      explicit bare activation of an optional dependency
//	"serde"          bare activation of an optional dependency
//
// A bare name that matches no dependency (including references to other
// feature groups, since chaining is unsupported) comes back Unresolved.
func ParseTarget(pkg *manifest.Package, raw string) Target {
	t := Target{Raw: raw}

	name := raw
	if dep, feature, ok := strings.Cut(raw, "/"); ok {
		name = dep
		t.Feature = feature
	}
	if strings.HasSuffix(name, "?") {
		t.Weak = true
		name = strings.TrimSuffix(name, "?")
	}
	name = strings.TrimPrefix(name, "dep:")
	t.Dependency = name

	if _, ok := pkg.Dependency(name); !ok {
		t.Unresolved = true
	}
	return t
}

// Resolve computes the feature view for one package.
//
// Per declaration the enabled set is assembled in a fixed order: explicitly
// declared features first (declaration order), then features contributed by
// feature groups (group declaration order), then the "default" sentinel when
// default-features is true. Duplicates collapse, first position wins.
//
// The same crate may be declared separately in the dependencies,
// dev-dependencies and build-dependencies sections; each declaration keeps
// its own feature set. Feature-group targets name crates, not sections, and
// apply to the first declaration of that name (the [dependencies] one when
// present, since sections load in that order).
func Resolve(pkg *manifest.Package) *View {
	view := &View{
		Package:  pkg.Name,
		Version:  pkg.Version,
		Deps:     make([]DepFeatures, 0, len(pkg.Dependencies)),
		Warnings: []Warning{},
	}

	enabled := make([][]string, len(pkg.Dependencies))
	byName := make(map[string]int, len(pkg.Dependencies))
	for i, dep := range pkg.Dependencies {
		enabled[i] = slices.Clone(dep.Features)
		if _, ok := byName[dep.Name]; !ok {
			byName[dep.Name] = i
		}
	}

	for _, group := range pkg.Features {
		for _, raw := range group.Targets {
			t := ParseTarget(pkg, raw)
			if t.Unresolved {
				view.Warnings = append(view.Warnings, Warning{Feature: group.Name, Target: raw})
				continue
			}
			if t.Feature == "" {
				// Bare activation of an optional dependency: nothing to add
				// to the feature set, the dependency itself is the target.
				continue
			}
			i := byName[t.Dependency]
			if !slices.Contains(enabled[i], t.Feature) {
				enabled[i] = append(enabled[i], t.Feature)
			}
		}
	}

	for i, dep := range pkg.Dependencies {
		set := enabled[i]
		if dep.DefaultFeatures && !slices.Contains(set, DefaultSentinel) {
			set = append(set, DefaultSentinel)
		}
		view.Deps = append(view.Deps, DepFeatures{
			Name:       dep.Name,
			Kind:       dep.Kind,
			Constraint: dep.Constraint,
			Optional:   dep.Optional,
			Enabled:    set,
		})
	}

	return view
}

// ResolveAll resolves every package, preserving workspace discovery order.
func ResolveAll(pkgs []*manifest.Package) []*View {
	views := make([]*View, len(pkgs))
	for i, pkg := range pkgs {
		views[i] = Resolve(pkg)
	}
	return views
}
