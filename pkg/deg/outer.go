package deg

import "slices"

// IDNode is an outer node representing exactly one external data-block
// identity. It is created on the first reference to a previously-unseen
// identity and destroyed when merged into a group or when the graph is
// torn down.
type IDNode struct {
	Base
	outerData
	id ID
}

// ID returns the identity this node represents. The zero value is
// returned before the node has been added to a graph.
func (n *IDNode) ID() ID { return n.id }

// IDs returns the node's identity as a one-element slice, or nil for an
// unattached node.
func (n *IDNode) IDs() []ID {
	if n.id.IsZero() {
		return nil
	}
	return []ID{n.id}
}

// AddToGraph inserts the node as a top-level unit representing id.
// The identity must not already be indexed.
func (n *IDNode) AddToGraph(g *Graph, id ID) error {
	if id.IsZero() {
		return ErrZeroIdentity
	}
	if _, exists := g.nodehash[id.UID]; exists {
		return ErrDuplicateIdentity
	}
	n.id = id
	if n.name == "" {
		n.name = id.Name
	}
	g.nodehash[id.UID] = n
	g.nodes = append(g.nodes, n)
	return nil
}

// RemoveFromGraph removes the node from the top-level list and erases its
// identity hash entry. The node's relations and children are left intact
// so a merge can redirect them non-destructively afterwards.
func (n *IDNode) RemoveFromGraph(g *Graph) error {
	if !g.containsOuter(n) {
		return ErrNodeNotInGraph
	}
	if g.nodehash[n.id.UID] == OuterNode(n) {
		delete(g.nodehash, n.id.UID)
	}
	g.removeOuter(n)
	return nil
}

// CopyData deep-copies src's identity and child collections. src must be
// an *IDNode.
func (n *IDNode) CopyData(src Node) error {
	s, ok := src.(*IDNode)
	if !ok {
		return ErrMismatchedTypes
	}
	n.id = s.id
	return n.copyOuter(n, s)
}

// GroupNode is an outer node representing a set of external identities.
// Groups exist only as the result of a cyclic merge: once two top-level
// units depend on each other, they are fused into one group so the cycle
// becomes internal to a single atomic evaluation unit. A live group always
// represents at least two identities; a one-identity group would be
// indistinguishable from an [IDNode] and must never exist.
type GroupNode struct {
	Base
	outerData
	idBlocks []ID // insertion-ordered, no duplicates
}

// IDs returns the identities the group represents, in insertion order.
func (n *GroupNode) IDs() []ID { return n.idBlocks }

// AddToGraph inserts the group as a top-level unit and indexes every
// identity in its block list. The id argument is ignored; groups carry
// their own identity set. None of the group's identities may already be
// indexed.
func (n *GroupNode) AddToGraph(g *Graph, _ ID) error {
	if len(n.idBlocks) < 2 {
		return ErrGroupTooSmall
	}
	for _, id := range n.idBlocks {
		if _, exists := g.nodehash[id.UID]; exists {
			return ErrDuplicateIdentity
		}
	}
	g.nodes = append(g.nodes, n)
	for _, id := range n.idBlocks {
		g.nodehash[id.UID] = n
	}
	return nil
}

// RemoveFromGraph removes the group from the top-level list and erases
// every identity hash entry still pointing at it. When the group is being
// merged away, its identity list has already been transferred and this
// erases nothing.
func (n *GroupNode) RemoveFromGraph(g *Graph) error {
	if !g.containsOuter(n) {
		return ErrNodeNotInGraph
	}
	for _, id := range n.idBlocks {
		if g.nodehash[id.UID] == OuterNode(n) {
			delete(g.nodehash, id.UID)
		}
	}
	g.removeOuter(n)
	return nil
}

// CopyData deep-copies src's identity list and child collections. src
// must be a *GroupNode.
func (n *GroupNode) CopyData(src Node) error {
	s, ok := src.(*GroupNode)
	if !ok {
		return ErrMismatchedTypes
	}
	n.idBlocks = slices.Clone(s.idBlocks)
	return n.copyOuter(n, s)
}

// AddIdentity appends an identity to a detached group's block list,
// skipping duplicates. It is intended for reconstructing a group from
// serialized form; the identities are indexed when the group is added
// to a graph.
func (n *GroupNode) AddIdentity(id ID) { n.addIDRef(nil, id) }

// addIDRef appends an identity to the group's block list, skipping
// duplicates. When g is non-nil the identity hash is re-pointed at the
// group; a nil g is used while the group is not yet part of a graph.
func (n *GroupNode) addIDRef(g *Graph, id ID) {
	if !slices.ContainsFunc(n.idBlocks, func(have ID) bool { return have.UID == id.UID }) {
		n.idBlocks = append(n.idBlocks, id)
	}
	if g != nil {
		g.nodehash[id.UID] = n
	}
}
