package graphio

import (
	"bytes"
	"context"
	"testing"

	"github.com/sceneforge/depsgraph/pkg/deg"
	"github.com/sceneforge/depsgraph/pkg/scene"
)

const testManifest = `
[scene]
name = "demo"

[[datablocks]]
name = "Cube"
kind = "object"
components = ["transform"]
depends_on = ["CubeMesh"]

[[datablocks]]
name = "CubeMesh"
kind = "mesh"
components = ["geometry"]
`

func buildTestGraph(t *testing.T, input string) *deg.Graph {
	t.Helper()
	m, err := scene.ParseManifest([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	g, err := scene.Build(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := buildTestGraph(t, testManifest)

	snap := FromGraph(g, "demo")
	if snap.Scene != "demo" {
		t.Errorf("scene = %q, want %q", snap.Scene, "demo")
	}
	// 2 outer + 2 data nodes.
	if len(snap.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(snap.Nodes))
	}
	if len(snap.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(snap.Edges))
	}

	restored, err := ToGraph(snap)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.NodeCount() != g.NodeCount() {
		t.Errorf("node count = %d, want %d", restored.NodeCount(), g.NodeCount())
	}
	if restored.IdentityCount() != g.IdentityCount() {
		t.Errorf("identity count = %d, want %d", restored.IdentityCount(), g.IdentityCount())
	}
	if len(restored.Relations()) != 1 {
		t.Errorf("got %d relations, want 1", len(restored.Relations()))
	}
	if err := restored.Validate(); err != nil {
		t.Errorf("restored graph is invalid: %v", err)
	}

	// Re-export produces identical output.
	first, err := Marshal(g, "demo")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Marshal(restored, "demo")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("re-exported snapshot differs from original")
	}
}

func TestSnapshotGroupRoundTrip(t *testing.T) {
	const cyclic = `
[[datablocks]]
name = "A"
components = ["data"]
depends_on = ["B"]

[[datablocks]]
name = "B"
depends_on = ["A"]
`
	g := buildTestGraph(t, cyclic)
	if _, err := scene.CollapseCycles(context.Background(), g); err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 1 {
		t.Fatalf("expected one group after collapse, got %d nodes", g.NodeCount())
	}

	snap := FromGraph(g, "")
	restored, err := ToGraph(snap)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if restored.NodeCount() != 1 {
		t.Fatalf("restored node count = %d, want 1", restored.NodeCount())
	}
	group, ok := restored.Nodes()[0].(*deg.GroupNode)
	if !ok {
		t.Fatalf("restored node is %T, want *deg.GroupNode", restored.Nodes()[0])
	}
	if got := len(group.IDs()); got != 2 {
		t.Errorf("group carries %d identities, want 2", got)
	}
	if restored.IdentityCount() != 2 {
		t.Errorf("identity count = %d, want 2", restored.IdentityCount())
	}
	if err := restored.Validate(); err != nil {
		t.Errorf("restored graph is invalid: %v", err)
	}
}

func TestToGraphErrors(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{
			name: "unknown type",
			snap: Snapshot{Nodes: []Node{{Key: "x", Type: "mystery", Identities: []Identity{{UID: "4f3b2a60-9f6e-4a0d-8c2e-1d2f3a4b5c6d"}}}}},
		},
		{
			name: "no identities",
			snap: Snapshot{Nodes: []Node{{Key: "x", Type: TypeID}}},
		},
		{
			name: "bad uid",
			snap: Snapshot{Nodes: []Node{{Key: "x", Type: TypeID, Identities: []Identity{{UID: "nope"}}}}},
		},
		{
			name: "data node with unknown owner",
			snap: Snapshot{Nodes: []Node{{Key: "x/y", Type: TypeData, Name: "y", Owner: "x"}}},
		},
		{
			name: "edge with unknown endpoint",
			snap: Snapshot{Edges: []Edge{{From: "a", To: "b"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToGraph(tt.snap); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	g := buildTestGraph(t, testManifest)

	var buf bytes.Buffer
	if err := Write(g, "demo", &buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	restored, snap, err := Read(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if snap.Scene != "demo" {
		t.Errorf("scene = %q, want %q", snap.Scene, "demo")
	}
	if restored.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", restored.NodeCount())
	}
}
