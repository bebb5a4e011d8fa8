package scene

import (
	"context"
	"testing"

	"github.com/sceneforge/depsgraph/pkg/deg"
)

func TestBuild(t *testing.T) {
	m, err := ParseManifest([]byte(validManifest))
	if err != nil {
		t.Fatal(err)
	}

	g, err := Build(context.Background(), m)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if got := g.NodeCount(); got != 2 {
		t.Errorf("node count = %d, want 2", got)
	}
	if got := g.IdentityCount(); got != 2 {
		t.Errorf("identity count = %d, want 2", got)
	}

	// Components attach as data nodes under their datablock.
	var cube deg.OuterNode
	for _, n := range g.Nodes() {
		if n.Name() == "Cube" {
			cube = n
		}
	}
	if cube == nil {
		t.Fatal("Cube datablock not in graph")
	}
	if got := len(cube.SubData()); got != 2 {
		t.Errorf("Cube has %d components, want 2", got)
	}

	// CubeMesh -> Cube from depends_on.
	rels := g.Relations()
	if len(rels) != 1 {
		t.Fatalf("got %d relations, want 1", len(rels))
	}
	if rels[0].From.Name() != "CubeMesh" || rels[0].To.Name() != "Cube" {
		t.Errorf("relation %s -> %s, want CubeMesh -> Cube", rels[0].From.Name(), rels[0].To.Name())
	}

	if err := g.Validate(); err != nil {
		t.Errorf("built graph is invalid: %v", err)
	}
}

func TestBuildStableUID(t *testing.T) {
	const input = `
[[datablocks]]
name = "A"
uid = "4f3b2a60-9f6e-4a0d-8c2e-1d2f3a4b5c6d"
`
	m, err := ParseManifest([]byte(input))
	if err != nil {
		t.Fatal(err)
	}

	g, err := Build(context.Background(), m)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	node := g.Nodes()[0]
	ids := node.IDs()
	if len(ids) != 1 {
		t.Fatalf("got %d identities, want 1", len(ids))
	}
	if ids[0].UID.String() != "4f3b2a60-9f6e-4a0d-8c2e-1d2f3a4b5c6d" {
		t.Errorf("uid = %s, want manifest uid", ids[0].UID)
	}
}

func TestBuildGeneratesUIDs(t *testing.T) {
	const input = `
[[datablocks]]
name = "A"
[[datablocks]]
name = "B"
`
	m, err := ParseManifest([]byte(input))
	if err != nil {
		t.Fatal(err)
	}

	g, err := Build(context.Background(), m)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	uids := make(map[string]bool)
	for _, n := range g.Nodes() {
		for _, id := range n.IDs() {
			if id.UID.String() == "00000000-0000-0000-0000-000000000000" {
				t.Errorf("datablock %s has zero uid", n.Name())
			}
			uids[id.UID.String()] = true
		}
	}
	if len(uids) != 2 {
		t.Errorf("got %d distinct uids, want 2", len(uids))
	}
}
