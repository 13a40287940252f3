package features

import (
	"reflect"
	"testing"

	"github.com/matzehuels/cratescope/pkg/dag"
	"github.com/matzehuels/cratescope/pkg/manifest"
)

func TestBuildGraph(t *testing.T) {
	g, err := BuildGraph(testPackage())
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	// One package node, three feature groups, five distinct targets
	// (plotting, serde/rc, tracing/log, tracing/std, plus "charts" from the
	// default group as an unresolved target node of its own).
	if g.NodeCount() != 9 {
		t.Errorf("NodeCount = %d, want 9", g.NodeCount())
	}

	pkgNode, ok := g.Node("pkg:core")
	if !ok {
		t.Fatal("package node missing")
	}
	if pkgNode.Kind != dag.NodeKindPackage {
		t.Errorf("package node kind = %v, want %v", pkgNode.Kind, dag.NodeKindPackage)
	}

	children := g.Children("pkg:core")
	want := []string{"feat:default", "feat:charts", "feat:tracing-log"}
	if !reflect.DeepEqual(children, want) {
		t.Errorf("package children = %v, want %v", children, want)
	}

	ghost, ok := g.Node("dep:charts")
	if !ok {
		t.Fatal("unresolved target node missing")
	}
	if unresolved, _ := ghost.Meta["unresolved"].(bool); !unresolved {
		t.Errorf("unresolved meta = %v, want true", ghost.Meta["unresolved"])
	}

	std, ok := g.Node("dep:tracing/std")
	if !ok {
		t.Fatal("weak target node missing")
	}
	if weak, _ := std.Meta["weak"].(bool); !weak {
		t.Errorf("weak meta = %v, want true", std.Meta["weak"])
	}

	if err := g.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestBuildGraphSharedTarget(t *testing.T) {
	// Two groups activating the same target share one node.
	pkg := testPackage()
	pkg.Features = append(pkg.Features, manifest.FeatureGroup{Name: "more-charts", Targets: []string{"serde/rc"}})

	g, err := BuildGraph(pkg)
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	parents := g.Parents("dep:serde/rc")
	if len(parents) != 2 {
		t.Errorf("parents of shared target = %d, want 2", len(parents))
	}
}
