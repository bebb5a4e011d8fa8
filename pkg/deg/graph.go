package deg

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrZeroIdentity is returned when adding an ID node with the zero
	// identity. Every top-level unit must be keyed by a real data-block
	// reference.
	ErrZeroIdentity = errors.New("identity must not be the zero value")

	// ErrDuplicateIdentity is returned when adding an outer node for an
	// identity that is already indexed. Each identity maps to exactly one
	// live outer node.
	ErrDuplicateIdentity = errors.New("identity already indexed")

	// ErrUnknownIdentity is returned when attaching a data node whose
	// owner identity has no outer node yet. Callers must create the outer
	// node first; the attachment is never guessed.
	ErrUnknownIdentity = errors.New("no outer node for identity")

	// ErrNodeNotInGraph is returned by removal and merge operations for a
	// node that is not (or no longer) part of the graph. Removing a node
	// twice is a defect in the caller; the guard exists so the second
	// call fails instead of corrupting the identity index.
	ErrNodeNotInGraph = errors.New("node not in graph")

	// ErrNotOuterNode is returned when an operation that requires a
	// top-level unit is handed an inner node.
	ErrNotOuterNode = errors.New("node is not an outer node")

	// ErrMismatchedTypes is returned by CopyData when source and
	// destination are different variants.
	ErrMismatchedTypes = errors.New("mismatched node types")

	// ErrGroupTooSmall is returned when adding a group that represents
	// fewer than two identities. A one-identity group must never exist.
	ErrGroupTooSmall = errors.New("group must represent at least two identities")

	// ErrNoSuchNode is returned by [Graph.FindNode] when no node of the
	// requested type represents the identity.
	ErrNoSuchNode = errors.New("no matching node")
)

// Graph is the dependency-graph container. It owns the ordered list of
// top-level outer nodes and the identity index mapping each external
// data-block to the outer node that currently represents it.
//
// Graphs are not safe for concurrent use. All operations are in-memory
// and synchronous; none of them block or perform I/O.
type Graph struct {
	nodes    []OuterNode
	nodehash map[uuid.UUID]OuterNode
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodehash: make(map[uuid.UUID]OuterNode)}
}

// Nodes returns the live top-level nodes in insertion order. The returned
// slice is a copy; the nodes themselves are shared.
func (g *Graph) Nodes() []OuterNode { return slices.Clone(g.nodes) }

// NodeCount returns the number of live top-level nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// IdentityCount returns the number of indexed identities.
func (g *Graph) IdentityCount() int { return len(g.nodehash) }

// AddNode inserts a node into the graph via the variant's AddToGraph
// hook. For outer variants id is the identity to index the node under
// (ignored by groups, which carry their own identity set); for data
// variants id selects the owning outer node.
func (g *Graph) AddNode(n Node, id ID) error {
	return n.AddToGraph(g, id)
}

// RemoveNode detaches a node from the graph via the variant's
// RemoveFromGraph hook. The node's own relations are left in place so a
// merge can redirect them; use FreeNode once nothing references the node.
func (g *Graph) RemoveNode(n Node) error {
	return n.RemoveFromGraph(g)
}

// FreeNode releases a node's own storage: the FreeData hook runs and the
// node's link lists are dropped. Children are not freed; they must
// already have been detached or transferred. Freeing a node that is still
// referenced by a live relation, collection, or index entry is a defect,
// which [Graph.Validate] detects.
func (g *Graph) FreeNode(n Node) {
	if info, err := NodeTypeInfo(n); err == nil && info.FreeData != nil {
		info.FreeData(n)
	}
	b := n.Core()
	b.inlinks = nil
	b.outlinks = nil
	b.owner = nil
	b.freed = true
}

// Free tears the graph down: every top-level node is freed along with its
// attached children, then the node list and identity index are cleared.
// The graph is empty and reusable afterwards.
func (g *Graph) Free() {
	for _, outer := range g.nodes {
		o := outer.outer()
		for _, child := range o.subdata {
			g.FreeNode(child)
		}
		for _, child := range o.nodes {
			g.FreeNode(child)
		}
		o.subdata = nil
		o.nodes = nil
		g.FreeNode(outer)
	}
	g.nodes = nil
	g.nodehash = make(map[uuid.UUID]OuterNode)
}

// NodeForID returns the outer node currently representing id.
func (g *Graph) NodeForID(id ID) (OuterNode, bool) {
	n, ok := g.nodehash[id.UID]
	return n, ok
}

// FindNode returns the node of type t representing id. When the indexed
// outer node is of a different variant, its MatchOuter hook decides
// whether it still matches; absent a hook the lookup fails. Lookups are
// linear-or-hashed and only used during construction and merging, which
// are not hot paths.
func (g *Graph) FindNode(t NodeType, id ID) (Node, error) {
	n, ok := g.nodehash[id.UID]
	if !ok {
		return nil, ErrNoSuchNode
	}
	if n.Type() == t {
		return n, nil
	}
	if info, err := TypeInfoFor(n.Type()); err == nil && info.MatchOuter != nil && info.MatchOuter(n, id) {
		return n, nil
	}
	return nil, ErrNoSuchNode
}

// AddRelation creates a directed relation from one node to another and
// appends it to both endpoints' link lists. Both endpoints must currently
// be part of the graph, either as top-level nodes or attached beneath one.
func (g *Graph) AddRelation(from, to Node) (*Relation, error) {
	if g.outerOf(from) == nil || g.outerOf(to) == nil {
		return nil, ErrNodeNotInGraph
	}
	rel := &Relation{From: from, To: to}
	from.Core().outlinks = append(from.Core().outlinks, rel)
	to.Core().inlinks = append(to.Core().inlinks, rel)
	return rel, nil
}

// Relations returns every relation reachable from the graph's nodes, in
// outlink order per node. Each relation appears once.
func (g *Graph) Relations() []*Relation {
	var rels []*Relation
	walk := func(n Node) { rels = append(rels, n.Core().outlinks...) }
	for _, outer := range g.nodes {
		walk(outer)
		o := outer.outer()
		for _, child := range o.subdata {
			walk(child)
		}
		for _, child := range o.nodes {
			walk(child)
		}
	}
	return rels
}

// BuildSubgraph expands a composite node into its internal subgraph via
// the type's BuildSubgraph hook. Node types without the hook return
// ErrUnsupported.
func (g *Graph) BuildSubgraph(n Node) error {
	info, err := NodeTypeInfo(n)
	if err != nil {
		return err
	}
	if info.BuildSubgraph == nil {
		return ErrUnsupported
	}
	return info.BuildSubgraph(g, n)
}

// outerOf resolves the top-level node a node currently belongs to by
// walking owner back-references, returning nil when the chain does not
// end at a live top-level node of this graph.
func (g *Graph) outerOf(n Node) OuterNode {
	for n != nil {
		if outer, ok := n.(OuterNode); ok && n.Owner() == nil {
			if g.containsOuter(outer) {
				return outer
			}
			return nil
		}
		n = n.Owner()
	}
	return nil
}

// containsOuter reports whether the node is in the top-level list.
// Linear scan; graph sizes are small and this never runs on a hot path.
func (g *Graph) containsOuter(n OuterNode) bool {
	return slices.Contains(g.nodes, n)
}

// removeOuter drops the node from the top-level list, preserving order.
func (g *Graph) removeOuter(n OuterNode) {
	g.nodes = slices.DeleteFunc(g.nodes, func(have OuterNode) bool { return have == n })
}
