package features

import (
	"github.com/matzehuels/cratescope/pkg/dag"
	"github.com/matzehuels/cratescope/pkg/manifest"
)

// BuildGraph constructs the feature-activation graph of one package: the
// package node points at its feature groups, each group points at the
// targets it activates. Unresolved targets become their own nodes, marked
// with Meta["unresolved"] so renderers can style them distinctly.
//
// Node IDs are namespaced (pkg:, feat:, dep:) because a feature group and a
// dependency may legally share a name; labels carry the display text.
func BuildGraph(pkg *manifest.Package) (*dag.DAG, error) {
	g := dag.New()

	pkgID := "pkg:" + pkg.Name
	if err := g.AddNode(dag.Node{ID: pkgID, Label: pkg.Name, Kind: dag.NodeKindPackage}); err != nil {
		return nil, err
	}

	for _, group := range pkg.Features {
		featID := "feat:" + group.Name
		if err := g.AddNode(dag.Node{ID: featID, Label: group.Name, Kind: dag.NodeKindFeature}); err != nil {
			return nil, err
		}
		if err := g.AddEdge(dag.Edge{From: pkgID, To: featID}); err != nil {
			return nil, err
		}

		for _, raw := range group.Targets {
			t := ParseTarget(pkg, raw)

			id := "dep:" + t.Dependency
			label := t.Dependency
			if t.Feature != "" {
				id += "/" + t.Feature
				label += "/" + t.Feature
			}

			if _, ok := g.Node(id); !ok {
				meta := dag.Metadata{}
				if t.Unresolved {
					meta["unresolved"] = true
				}
				if t.Weak {
					meta["weak"] = true
				}
				node := dag.Node{ID: id, Label: label, Kind: dag.NodeKindTarget, Meta: meta}
				if err := g.AddNode(node); err != nil {
					return nil, err
				}
			}
			if err := g.AddEdge(dag.Edge{From: featID, To: id}); err != nil {
				return nil, err
			}
		}
	}

	return g, g.Validate()
}
