package scene

import (
	"context"
	"testing"
)

func TestCollapseCyclesAcyclic(t *testing.T) {
	const input = `
[[datablocks]]
name = "A"
[[datablocks]]
name = "B"
depends_on = ["A"]
[[datablocks]]
name = "C"
depends_on = ["B"]
`
	m, err := ParseManifest([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}

	merges, err := CollapseCycles(context.Background(), g)
	if err != nil {
		t.Fatalf("collapse failed: %v", err)
	}
	if merges != 0 {
		t.Errorf("got %d merges on acyclic graph, want 0", merges)
	}
	if g.NodeCount() != 3 {
		t.Errorf("node count changed to %d, want 3", g.NodeCount())
	}
}

func TestCollapseCyclesPair(t *testing.T) {
	const input = `
[[datablocks]]
name = "A"
depends_on = ["B"]
[[datablocks]]
name = "B"
depends_on = ["A"]
[[datablocks]]
name = "C"
depends_on = ["A"]
`
	m, err := ParseManifest([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}

	merges, err := CollapseCycles(context.Background(), g)
	if err != nil {
		t.Fatalf("collapse failed: %v", err)
	}
	if merges != 1 {
		t.Errorf("got %d merges, want 1", merges)
	}

	// A and B collapse into one group; C survives.
	if g.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", g.NodeCount())
	}
	// All three identities still resolve.
	if g.IdentityCount() != 3 {
		t.Errorf("identity count = %d, want 3", g.IdentityCount())
	}

	if err := g.Validate(); err != nil {
		t.Errorf("collapsed graph is invalid: %v", err)
	}

	// No back edges remain between distinct outer nodes.
	if _, _, found := findBackEdge(g); found {
		t.Error("back edge remains after collapse")
	}
}

func TestCollapseCyclesChain(t *testing.T) {
	// Three datablocks in one cycle: A -> B -> C -> A. Collapsing needs
	// two merges and ends with a single group carrying all identities.
	const input = `
[[datablocks]]
name = "A"
depends_on = ["C"]
[[datablocks]]
name = "B"
depends_on = ["A"]
[[datablocks]]
name = "C"
depends_on = ["B"]
`
	m, err := ParseManifest([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}

	merges, err := CollapseCycles(context.Background(), g)
	if err != nil {
		t.Fatalf("collapse failed: %v", err)
	}
	if merges != 2 {
		t.Errorf("got %d merges, want 2", merges)
	}
	if g.NodeCount() != 1 {
		t.Fatalf("node count = %d, want 1", g.NodeCount())
	}
	if got := len(g.Nodes()[0].IDs()); got != 3 {
		t.Errorf("survivor carries %d identities, want 3", got)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("collapsed graph is invalid: %v", err)
	}
}

func TestCollapseCyclesTwoIndependentCycles(t *testing.T) {
	const input = `
[[datablocks]]
name = "A"
depends_on = ["B"]
[[datablocks]]
name = "B"
depends_on = ["A"]
[[datablocks]]
name = "C"
depends_on = ["D"]
[[datablocks]]
name = "D"
depends_on = ["C"]
`
	m, err := ParseManifest([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}

	merges, err := CollapseCycles(context.Background(), g)
	if err != nil {
		t.Fatalf("collapse failed: %v", err)
	}
	if merges != 2 {
		t.Errorf("got %d merges, want 2", merges)
	}
	if g.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", g.NodeCount())
	}
}
