// Package graphio serializes dependency graphs to a stable snapshot
// format used for API responses, storage, caching and file export.
//
// The format is human-readable and designed for round-trip fidelity:
// build, collapse, export, re-import produces an equivalent graph.
package graphio

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/sceneforge/depsgraph/pkg/deg"
)

// Node type tags in the snapshot format.
const (
	TypeID    = "id"
	TypeGroup = "group"
	TypeData  = "data"
)

// Snapshot is the canonical serialization format for dependency graphs.
type Snapshot struct {
	Scene string `json:"scene,omitempty" bson:"scene,omitempty"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is one serialized graph node. Outer nodes are keyed by their
// primary identity UID; inner data nodes by "<owner-key>/<name>".
type Node struct {
	Key        string     `json:"key" bson:"key"`
	Type       string     `json:"type" bson:"type"`
	Name       string     `json:"name,omitempty" bson:"name,omitempty"`
	Identities []Identity `json:"identities,omitempty" bson:"identities,omitempty"`
	Owner      string     `json:"owner,omitempty" bson:"owner,omitempty"`
}

// Identity is one serialized external identity.
type Identity struct {
	UID  string `json:"uid" bson:"uid"`
	Name string `json:"name,omitempty" bson:"name,omitempty"`
}

// Edge is one serialized relation, referencing node keys.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// FromGraph converts a graph to its snapshot form. Nodes and edges are
// sorted by key for deterministic output.
func FromGraph(g *deg.Graph, scene string) Snapshot {
	outers := g.Nodes()
	slices.SortFunc(outers, func(a, b deg.OuterNode) int {
		return strings.Compare(outerKey(a), outerKey(b))
	})

	snap := Snapshot{Scene: scene}
	keys := make(map[deg.Node]string)

	for _, outer := range outers {
		key := outerKey(outer)
		keys[outer] = key
		node := Node{
			Key:  key,
			Type: TypeID,
			Name: outer.Name(),
		}
		if outer.Type() == deg.NodeTypeOuterGroup {
			node.Type = TypeGroup
		}
		for _, id := range outer.IDs() {
			node.Identities = append(node.Identities, Identity{
				UID:  id.UID.String(),
				Name: id.Name,
			})
		}
		snap.Nodes = append(snap.Nodes, node)

		// Inner names can repeat after a merge pulls same-named
		// components into one owner, so keys get a disambiguating
		// suffix on collision.
		taken := make(map[string]int)
		for _, child := range children(outer) {
			childKey := key + "/" + child.Name()
			taken[childKey]++
			if n := taken[childKey]; n > 1 {
				childKey = fmt.Sprintf("%s#%d", childKey, n)
			}
			keys[child] = childKey
			snap.Nodes = append(snap.Nodes, Node{
				Key:   childKey,
				Type:  TypeData,
				Name:  child.Name(),
				Owner: key,
			})
		}
	}

	for _, rel := range g.Relations() {
		snap.Edges = append(snap.Edges, Edge{
			From: keys[rel.From],
			To:   keys[rel.To],
		})
	}
	slices.SortFunc(snap.Edges, func(a, b Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})

	return snap
}

// ToGraph reconstructs a graph from its snapshot form.
func ToGraph(snap Snapshot) (*deg.Graph, error) {
	g := deg.New()
	byKey := make(map[string]deg.Node, len(snap.Nodes))

	// Outer nodes first so data nodes and edges can resolve owners.
	for _, sn := range snap.Nodes {
		if sn.Type == TypeData {
			continue
		}
		node, err := restoreOuter(g, sn)
		if err != nil {
			return nil, err
		}
		byKey[sn.Key] = node
	}

	for _, sn := range snap.Nodes {
		if sn.Type != TypeData {
			continue
		}
		owner, ok := byKey[sn.Owner].(deg.OuterNode)
		if !ok {
			return nil, fmt.Errorf("data node %s: unknown owner %q", sn.Key, sn.Owner)
		}
		data, err := deg.NewNode(deg.NodeTypeData)
		if err != nil {
			return nil, err
		}
		data.SetName(sn.Name)
		if err := g.AddNode(data, owner.IDs()[0]); err != nil {
			return nil, fmt.Errorf("attach %s: %w", sn.Key, err)
		}
		byKey[sn.Key] = data
	}

	for _, se := range snap.Edges {
		from, ok := byKey[se.From]
		if !ok {
			return nil, fmt.Errorf("edge %s -> %s: unknown node %q", se.From, se.To, se.From)
		}
		to, ok := byKey[se.To]
		if !ok {
			return nil, fmt.Errorf("edge %s -> %s: unknown node %q", se.From, se.To, se.To)
		}
		if _, err := g.AddRelation(from, to); err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", se.From, se.To, err)
		}
	}

	return g, nil
}

func restoreOuter(g *deg.Graph, sn Node) (deg.Node, error) {
	if len(sn.Identities) == 0 {
		return nil, fmt.Errorf("node %s: no identities", sn.Key)
	}

	ids := make([]deg.ID, len(sn.Identities))
	for i, si := range sn.Identities {
		uid, err := uuid.Parse(si.UID)
		if err != nil {
			return nil, fmt.Errorf("node %s: invalid uid %q: %w", sn.Key, si.UID, err)
		}
		ids[i] = deg.ID{UID: uid, Name: si.Name}
	}

	switch sn.Type {
	case TypeID:
		node, err := deg.NewNode(deg.NodeTypeOuterID)
		if err != nil {
			return nil, err
		}
		node.SetName(sn.Name)
		if err := g.AddNode(node, ids[0]); err != nil {
			return nil, fmt.Errorf("add node %s: %w", sn.Key, err)
		}
		return node, nil

	case TypeGroup:
		node, err := deg.NewNode(deg.NodeTypeOuterGroup)
		if err != nil {
			return nil, err
		}
		group := node.(*deg.GroupNode)
		group.SetName(sn.Name)
		for _, id := range ids {
			group.AddIdentity(id)
		}
		if err := g.AddNode(group, deg.ID{}); err != nil {
			return nil, fmt.Errorf("add group %s: %w", sn.Key, err)
		}
		return group, nil

	default:
		return nil, fmt.Errorf("node %s: unknown type %q", sn.Key, sn.Type)
	}
}

// outerKey returns the stable key of an outer node: its primary identity
// UID.
func outerKey(n deg.OuterNode) string {
	ids := n.IDs()
	if len(ids) == 0 {
		return n.Name()
	}
	return ids[0].UID.String()
}

// children returns an outer node's inner nodes: attached data plus any
// owned units absorbed by merges.
func children(n deg.OuterNode) []deg.Node {
	out := slices.Clone(n.SubData())
	for _, child := range n.Nodes() {
		out = append(out, child)
	}
	return out
}
