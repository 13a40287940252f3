package dag

import (
	"reflect"
	"testing"
)

func buildActivationGraph(t *testing.T) *DAG {
	t.Helper()
	g := New()
	nodes := []Node{
		{ID: "pkg:core", Label: "core", Kind: NodeKindPackage},
		{ID: "feat:default", Label: "default", Kind: NodeKindFeature},
		{ID: "feat:charts", Label: "charts", Kind: NodeKindFeature},
		{ID: "dep:serde/rc", Label: "serde/rc", Kind: NodeKindTarget},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s) failed: %v", n.ID, err)
		}
	}
	edges := []Edge{
		{From: "pkg:core", To: "feat:default"},
		{From: "pkg:core", To: "feat:charts"},
		{From: "feat:charts", To: "dep:serde/rc"},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s -> %s) failed: %v", e.From, e.To, err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New()

	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}
	if err := g.AddNode(Node{ID: ""}); err != ErrInvalidNodeID {
		t.Errorf("empty ID error = %v, want %v", err, ErrInvalidNodeID)
	}
	if err := g.AddNode(Node{ID: "a"}); err != ErrDuplicateNodeID {
		t.Errorf("duplicate ID error = %v, want %v", err, ErrDuplicateNodeID)
	}

	n, ok := g.Node("a")
	if !ok {
		t.Fatal("Node(a) not found")
	}
	if n.Meta == nil {
		t.Error("Meta not initialized on insert")
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(Node{ID: "b"}); err != nil {
		t.Fatal(err)
	}

	if err := g.AddEdge(Edge{From: "missing", To: "b"}); err != ErrUnknownSourceNode {
		t.Errorf("unknown source error = %v, want %v", err, ErrUnknownSourceNode)
	}
	if err := g.AddEdge(Edge{From: "a", To: "missing"}); err != ErrUnknownTargetNode {
		t.Errorf("unknown target error = %v, want %v", err, ErrUnknownTargetNode)
	}

	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge failed: %v", err)
	}
	// Repeating the same edge is a no-op, not an error.
	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("duplicate AddEdge failed: %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := buildActivationGraph(t)

	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	want := []string{"pkg:core", "feat:default", "feat:charts", "dep:serde/rc"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("node order = %v, want %v", ids, want)
	}
}

func TestChildrenParents(t *testing.T) {
	g := buildActivationGraph(t)

	if got := g.Children("pkg:core"); !reflect.DeepEqual(got, []string{"feat:default", "feat:charts"}) {
		t.Errorf("Children(pkg:core) = %v", got)
	}
	if got := g.Parents("dep:serde/rc"); !reflect.DeepEqual(got, []string{"feat:charts"}) {
		t.Errorf("Parents(dep:serde/rc) = %v", got)
	}
	if got := g.Children("dep:serde/rc"); len(got) != 0 {
		t.Errorf("Children(leaf) = %v, want none", got)
	}
}

func TestSourcesSinks(t *testing.T) {
	g := buildActivationGraph(t)

	sources := g.Sources()
	if len(sources) != 1 || sources[0].ID != "pkg:core" {
		t.Errorf("Sources = %v, want only pkg:core", sources)
	}

	var sinkIDs []string
	for _, n := range g.Sinks() {
		sinkIDs = append(sinkIDs, n.ID)
	}
	want := []string{"feat:default", "dep:serde/rc"}
	if !reflect.DeepEqual(sinkIDs, want) {
		t.Errorf("Sinks = %v, want %v", sinkIDs, want)
	}
}

func TestValidate(t *testing.T) {
	g := buildActivationGraph(t)
	if err := g.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}

	cyclic := New()
	for _, id := range []string{"a", "b", "c"} {
		if err := cyclic.AddNode(Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "c", To: "a"}} {
		if err := cyclic.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := cyclic.Validate(); err != ErrGraphHasCycle {
		t.Errorf("Validate = %v, want %v", err, ErrGraphHasCycle)
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Node{ID: "dep:serde", Label: "serde"}).DisplayLabel(); got != "serde" {
		t.Errorf("DisplayLabel = %q, want %q", got, "serde")
	}
	if got := (Node{ID: "dep:serde"}).DisplayLabel(); got != "dep:serde" {
		t.Errorf("DisplayLabel = %q, want %q", got, "dep:serde")
	}
}
