package features

// Filter selects which package/dependency pairs a query returns.
//
// Matching is exact and case-sensitive. When both Package and Dependency are
// set, both must match. All overrides both filters and returns every pair.
type Filter struct {
	Package    string
	Dependency string
	All        bool
}

// Row is one (package, dependency, feature set) result handed to the
// presentation layer. Warnings carries the package-level unresolved-reference
// annotations; rows of the same package share the same slice so the
// presentation can report them once.
type Row struct {
	Package    string
	Dependency string
	Kind       string
	Constraint string
	Optional   bool
	Features   []string
	Warnings   []Warning
}

// Select applies the filter to the resolved views.
//
// An empty result is a normal outcome, not an error: a package filter that
// matches nothing yields an empty slice. Row order follows view order and,
// within a view, dependency declaration order.
func Select(views []*View, f Filter) []Row {
	rows := []Row{}
	for _, view := range views {
		if !f.All && f.Package != "" && view.Package != f.Package {
			continue
		}
		for _, dep := range view.Deps {
			if !f.All && f.Dependency != "" && dep.Name != f.Dependency {
				continue
			}
			rows = append(rows, Row{
				Package:    view.Package,
				Dependency: dep.Name,
				Kind:       string(dep.Kind),
				Constraint: dep.Constraint,
				Optional:   dep.Optional,
				Features:   dep.Enabled,
				Warnings:   view.Warnings,
			})
		}
	}
	return rows
}
