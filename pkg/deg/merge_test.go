package deg

import (
	"errors"
	"slices"
	"testing"
)

// hasIdentity reports whether the outer node represents id.
func hasIdentity(n OuterNode, id ID) bool {
	return slices.ContainsFunc(n.IDs(), func(have ID) bool { return have.UID == id.UID })
}

// mustResolve fails the test unless both identities map to want.
func mustResolve(t *testing.T, g *Graph, want OuterNode, ids ...ID) {
	t.Helper()
	for _, id := range ids {
		got, ok := g.NodeForID(id)
		if !ok {
			t.Fatalf("identity %s lost after merge", id)
		}
		if got != want {
			t.Errorf("identity %s maps to %q, want the survivor", id, got.Name())
		}
	}
}

func TestMergeIDPair(t *testing.T) {
	g := New()
	a, idA := addIDNode(t, g, "Rig")
	b, idB := addIDNode(t, g, "Mesh")
	c, _ := addIDNode(t, g, "Scene")

	// c -> a <-> b: the a/b cycle forces a merge, c's edge must survive.
	if _, err := g.AddRelation(c, a); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	if _, err := g.AddRelation(a, b); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	if _, err := g.AddRelation(b, a); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}

	survivor, err := g.MergeCyclicPair(a, b)
	if err != nil {
		t.Fatalf("MergeCyclicPair: %v", err)
	}

	group, ok := survivor.(*GroupNode)
	if !ok {
		t.Fatalf("survivor is %T, want *GroupNode", survivor)
	}
	if len(group.IDs()) != 2 || !hasIdentity(group, idA) || !hasIdentity(group, idB) {
		t.Errorf("group identities = %v, want {Rig, Mesh}", group.IDs())
	}
	mustResolve(t, g, group, idA, idB)

	// Neither old node remains reachable from the top-level list.
	for _, n := range g.Nodes() {
		if n == OuterNode(a) || n == OuterNode(b) {
			t.Error("merged-away node still in top-level list")
		}
	}
	if !a.Core().Freed() || !b.Core().Freed() {
		t.Error("merged-away nodes were not freed")
	}

	// c's outgoing relation now targets the group.
	if len(c.OutLinks()) != 1 || c.OutLinks()[0].To != Node(group) {
		t.Error("external relation was not redirected to the survivor")
	}

	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after merge = %v", err)
	}
}

func TestMergeGroupWithID(t *testing.T) {
	g := New()
	a, idA := addIDNode(t, g, "Rig")
	b, idB := addIDNode(t, g, "Mesh")
	if _, err := g.AddRelation(a, b); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	if _, err := g.AddRelation(b, a); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	groupNode, err := g.MergeCyclicPair(a, b)
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}

	c, idC := addIDNode(t, g, "Curve")
	relIn, err := g.AddRelation(groupNode, c)
	if err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	relOut, err := g.AddRelation(c, groupNode)
	if err != nil {
		t.Fatalf("AddRelation: %v", err)
	}

	tests := []struct {
		name    string
		argA    Node
		argB    Node
	}{
		{name: "GroupFirst", argA: groupNode, argB: c},
		{name: "IDFirst", argA: c, argB: groupNode},
	}
	// Only run one order against the live graph; the second subtest
	// rebuilds an equivalent graph to exercise the flipped argument order.
	t.Run(tests[0].name, func(t *testing.T) {
		survivor, err := g.MergeCyclicPair(tests[0].argA, tests[0].argB)
		if err != nil {
			t.Fatalf("MergeCyclicPair: %v", err)
		}
		if survivor != groupNode {
			t.Error("survivor is not the existing group")
		}
		if len(survivor.IDs()) != 3 {
			t.Errorf("survivor identities = %v, want {Rig, Mesh, Curve}", survivor.IDs())
		}
		mustResolve(t, g, survivor, idA, idB, idC)

		// Every relation that pointed at the ID node points at the group.
		if relIn.To != Node(survivor) {
			t.Error("inbound relation still targets the merged-away ID node")
		}
		if relOut.From != Node(survivor) {
			t.Error("outbound relation still leaves the merged-away ID node")
		}
		if err := g.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})

	t.Run(tests[1].name, func(t *testing.T) {
		g2 := New()
		x, idX := addIDNode(t, g2, "Rig")
		y, idY := addIDNode(t, g2, "Mesh")
		if _, err := g2.AddRelation(x, y); err != nil {
			t.Fatalf("AddRelation: %v", err)
		}
		if _, err := g2.AddRelation(y, x); err != nil {
			t.Fatalf("AddRelation: %v", err)
		}
		grp, err := g2.MergeCyclicPair(x, y)
		if err != nil {
			t.Fatalf("first merge: %v", err)
		}
		z, idZ := addIDNode(t, g2, "Curve")

		survivor, err := g2.MergeCyclicPair(z, grp)
		if err != nil {
			t.Fatalf("MergeCyclicPair(ID, group): %v", err)
		}
		if survivor != grp {
			t.Error("survivor is not the group when the ID node comes first")
		}
		mustResolve(t, g2, survivor, idX, idY, idZ)
		if err := g2.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})
}

func TestMergeGroupPair(t *testing.T) {
	g := New()
	a, idA := addIDNode(t, g, "Rig")
	b, idB := addIDNode(t, g, "Mesh")
	c, idC := addIDNode(t, g, "Curve")
	d, idD := addIDNode(t, g, "Lattice")

	for _, pair := range [][2]Node{{a, b}, {b, a}, {c, d}, {d, c}} {
		if _, err := g.AddRelation(pair[0], pair[1]); err != nil {
			t.Fatalf("AddRelation: %v", err)
		}
	}

	g1, err := g.MergeCyclicPair(a, b)
	if err != nil {
		t.Fatalf("merge a/b: %v", err)
	}
	g2, err := g.MergeCyclicPair(c, d)
	if err != nil {
		t.Fatalf("merge c/d: %v", err)
	}

	survivor, err := g.MergeCyclicPair(g1, g2)
	if err != nil {
		t.Fatalf("merge groups: %v", err)
	}
	if survivor != g1 {
		t.Error("first group must survive a group/group merge")
	}
	if len(survivor.IDs()) != 4 {
		t.Errorf("survivor identities = %d, want 4", len(survivor.IDs()))
	}
	mustResolve(t, g, survivor, idA, idB, idC, idD)
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d after folding everything into one group", g.NodeCount())
	}
	if !g2.Core().Freed() {
		t.Error("absorbed group was not freed")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMergeReparentsDataNodes(t *testing.T) {
	g := New()
	x1, idX1 := addIDNode(t, g, "X1")
	data := addDataNode(t, g, "geometry", idX1)
	if data.Owner() != Node(x1) {
		t.Fatalf("data owner = %v before merge, want X1", data.Owner())
	}

	x2, idX2 := addIDNode(t, g, "X2")
	if _, err := g.AddRelation(x1, x2); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	if _, err := g.AddRelation(x2, x1); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}

	survivor, err := g.MergeCyclicPair(x1, x2)
	if err != nil {
		t.Fatalf("MergeCyclicPair: %v", err)
	}

	sub := survivor.SubData()
	if len(sub) != 1 || sub[0] != Node(data) {
		t.Fatalf("survivor SubData = %v, want the original data node", sub)
	}
	if data.Owner() != Node(survivor) {
		t.Errorf("data owner = %v, want the group", data.Owner())
	}
	mustResolve(t, g, survivor, idX1, idX2)
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMergeRejectsBadArguments(t *testing.T) {
	g := New()
	a, idA := addIDNode(t, g, "Rig")
	data := addDataNode(t, g, "pose", idA)
	detached, err := NewNode(NodeTypeOuterID)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}

	tests := []struct {
		name    string
		a, b    Node
		wantErr error
	}{
		{name: "DataNode", a: a, b: data, wantErr: ErrNotOuterNode},
		{name: "SameNode", a: a, b: a, wantErr: ErrNodeNotInGraph},
		{name: "Detached", a: a, b: detached, wantErr: ErrNodeNotInGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.MergeCyclicPair(tt.a, tt.b); !errors.Is(err, tt.wantErr) {
				t.Errorf("MergeCyclicPair() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestMergeKeepsRelationsLive walks every relation after a chain of merges
// and checks that no endpoint references a node absent from the graph.
func TestMergeKeepsRelationsLive(t *testing.T) {
	g := New()
	names := []string{"A", "B", "C", "D", "E"}
	nodes := make([]*IDNode, len(names))
	for i, name := range names {
		nodes[i], _ = addIDNode(t, g, name)
	}
	// Ring with an extra chord: plenty of cycles.
	for i := range nodes {
		if _, err := g.AddRelation(nodes[i], nodes[(i+1)%len(nodes)]); err != nil {
			t.Fatalf("AddRelation: %v", err)
		}
	}
	if _, err := g.AddRelation(nodes[3], nodes[0]); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}

	s1, err := g.MergeCyclicPair(nodes[0], nodes[1])
	if err != nil {
		t.Fatalf("merge 1: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() after merge 1: %v", err)
	}
	s2, err := g.MergeCyclicPair(s1, nodes[2])
	if err != nil {
		t.Fatalf("merge 2: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() after merge 2: %v", err)
	}
	if _, err := g.MergeCyclicPair(nodes[3], s2); err != nil {
		t.Fatalf("merge 3: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() after merge 3: %v", err)
	}

	for _, rel := range g.Relations() {
		if g.outerOf(rel.From) == nil || g.outerOf(rel.To) == nil {
			t.Fatalf("relation %v references a node absent from the graph", rel)
		}
	}
}
