package deg

import "slices"

// DataNode is an inner node representing one sub-component of a
// data-block (a mesh's geometry, an object's transform). It is owned by
// exactly one outer node and attached via the owner identity.
type DataNode struct {
	Base
}

// AddToGraph attaches the node beneath the outer node currently
// representing id. It is a contract violation to attach a data node
// before an outer node exists for its identity; the operation fails
// rather than creating one implicitly.
func (n *DataNode) AddToGraph(g *Graph, id ID) error {
	owner, ok := g.nodehash[id.UID]
	if !ok {
		return ErrUnknownIdentity
	}
	n.owner = owner
	// Both outer variants keep attached data in subdata; enumeration code
	// must not care which variant owns the node.
	owner.outer().subdata = append(owner.outer().subdata, n)
	return nil
}

// RemoveFromGraph detaches the node from its owner's child collections
// and clears the owner back-reference.
func (n *DataNode) RemoveFromGraph(g *Graph) error {
	owner, ok := n.owner.(OuterNode)
	if !ok {
		return ErrNodeNotInGraph
	}
	o := owner.outer()
	before := len(o.subdata) + len(o.nodes)
	o.subdata = slices.DeleteFunc(o.subdata, func(c Node) bool { return c == Node(n) })
	o.nodes = slices.DeleteFunc(o.nodes, func(c Node) bool { return c == Node(n) })
	if len(o.subdata)+len(o.nodes) == before {
		return ErrNodeNotInGraph
	}
	n.owner = nil
	return nil
}

// CopyData is a no-op: a data node's payload is its identity-independent
// state in Base, which [CopyNode] already duplicates.
func (n *DataNode) CopyData(src Node) error {
	if _, ok := src.(*DataNode); !ok {
		return ErrMismatchedTypes
	}
	return nil
}
