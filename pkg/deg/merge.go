package deg

// MergeCyclicPair fuses two top-level nodes that participate in a
// dependency cycle into a single group and returns the survivor. The
// cycle becomes internal to the group, which the evaluator treats as one
// atomic unit, and the rest of the graph is untouched.
//
// The case table by variant pair:
//
//   - ID + ID: a new group is created, both nodes' relations and children
//     are transferred into it, both identities join the group's block
//     list, and both old nodes are removed and freed.
//   - Group + Group: the first group survives and absorbs the second's
//     identities, relations, and children.
//   - Group + ID (either order): the group survives, absorbs the ID
//     node's relations and children, and takes over its identity.
//
// In every case the identity index afterwards maps each identity formerly
// owned by either input to the survivor, and no relation, collection, or
// index entry references a freed node. There is no partial-success path:
// once the preconditions hold, every sub-step is a pointer and collection
// operation that cannot fail.
func (g *Graph) MergeCyclicPair(node1, node2 Node) (OuterNode, error) {
	a, ok := node1.(OuterNode)
	if !ok {
		return nil, ErrNotOuterNode
	}
	b, ok := node2.(OuterNode)
	if !ok {
		return nil, ErrNotOuterNode
	}
	if a == b {
		return nil, ErrNodeNotInGraph
	}
	if !g.containsOuter(a) || !g.containsOuter(b) {
		return nil, ErrNodeNotInGraph
	}

	switch {
	case a.Type() == NodeTypeOuterID && b.Type() == NodeTypeOuterID:
		return g.mergeIDPair(a.(*IDNode), b.(*IDNode))
	case a.Type() == NodeTypeOuterGroup && b.Type() == NodeTypeOuterGroup:
		return g.mergeGroups(a.(*GroupNode), b.(*GroupNode))
	case a.Type() == NodeTypeOuterGroup:
		return g.mergeIntoGroup(a.(*GroupNode), b)
	case b.Type() == NodeTypeOuterGroup:
		return g.mergeIntoGroup(b.(*GroupNode), a)
	default:
		return nil, ErrNotOuterNode
	}
}

// mergeIDPair creates a fresh group from two stand-alone ID nodes.
func (g *Graph) mergeIDPair(id1, id2 *IDNode) (OuterNode, error) {
	n, err := NewNode(NodeTypeOuterGroup)
	if err != nil {
		return nil, err
	}
	group := n.(*GroupNode)
	group.name = id1.name + "+" + id2.name

	transferToGroup(group, id1)
	transferToGroup(group, id2)

	if err := id1.RemoveFromGraph(g); err != nil {
		return nil, err
	}
	if err := id2.RemoveFromGraph(g); err != nil {
		return nil, err
	}

	// The group is not part of the graph yet, so the identities join its
	// block list without touching the index; AddToGraph flushes them.
	group.addIDRef(nil, id1.id)
	group.addIDRef(nil, id2.id)

	g.FreeNode(id1)
	g.FreeNode(id2)

	if err := group.AddToGraph(g, ID{}); err != nil {
		return nil, err
	}
	return group, nil
}

// mergeGroups folds g2 into g1, which survives.
func (g *Graph) mergeGroups(g1, g2 *GroupNode) (OuterNode, error) {
	// Re-point the index first; the identities are shifting owner, not
	// being created or destroyed.
	for _, id := range g2.idBlocks {
		g.nodehash[id.UID] = g1
	}
	g1.idBlocks = append(g1.idBlocks, g2.idBlocks...)
	g2.idBlocks = nil

	transferToGroup(g1, g2)

	// g2's identity list is empty now, so removal erases no index entries.
	if err := g2.RemoveFromGraph(g); err != nil {
		return nil, err
	}
	g.FreeNode(g2)
	return g1, nil
}

// mergeIntoGroup absorbs a stand-alone outer node into an existing group.
func (g *Graph) mergeIntoGroup(group *GroupNode, src OuterNode) (OuterNode, error) {
	idn, ok := src.(*IDNode)
	if !ok {
		return nil, ErrNotOuterNode
	}

	transferToGroup(group, idn)

	if err := idn.RemoveFromGraph(g); err != nil {
		return nil, err
	}
	group.addIDRef(g, idn.id)

	g.FreeNode(idn)
	return group, nil
}

// transferToGroup moves everything a source outer node holds into the
// destination group: relation endpoints equal to the source are rewritten
// to the group before the link lists are concatenated, so no relation
// ever references the source once it is freed, even transiently. Children
// are re-parented the same way. Collections are concatenated, not copied,
// preserving relative order; order across merges is insertion order.
func transferToGroup(group *GroupNode, src OuterNode) {
	sb := src.Core()
	for _, rel := range sb.inlinks {
		if rel.To == src {
			rel.To = group
		}
	}
	for _, rel := range sb.outlinks {
		if rel.From == src {
			rel.From = group
		}
	}

	so := src.outer()
	for _, child := range so.subdata {
		child.Core().owner = group
	}
	for _, child := range so.nodes {
		// Some inner nodes hang off a subdata node rather than the outer
		// node itself; those carry across untouched.
		if child.Owner() == Node(src) {
			child.Core().owner = group
		}
	}

	group.inlinks = append(group.inlinks, sb.inlinks...)
	group.outlinks = append(group.outlinks, sb.outlinks...)
	group.subdata = append(group.subdata, so.subdata...)
	group.nodes = append(group.nodes, so.nodes...)

	sb.inlinks = nil
	sb.outlinks = nil
	so.subdata = nil
	so.nodes = nil
}
