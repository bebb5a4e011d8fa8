package deg

import "errors"

var (
	// ErrDanglingIdentity is returned by [Graph.Validate] when an
	// identity index entry points at a node that is not a live top-level
	// node, or at one that no longer represents the identity. This
	// indicates index corruption.
	ErrDanglingIdentity = errors.New("identity index entry points at dead node")

	// ErrUnindexedIdentity is returned by [Graph.Validate] when a live
	// outer node represents an identity the index does not map to it.
	ErrUnindexedIdentity = errors.New("outer node identity missing from index")

	// ErrInvalidRelationEndpoint is returned by [Graph.Validate] when a
	// relation references a freed node or one not attached to the graph.
	ErrInvalidRelationEndpoint = errors.New("relation references node absent from graph")

	// ErrDanglingOwner is returned by [Graph.Validate] when a non-top-level
	// node's owner back-reference does not lead to a live top-level node.
	ErrDanglingOwner = errors.New("owner reference does not reach a live node")
)

// Validate checks the graph's structural invariants and returns nil if
// they hold:
//
//  1. Every indexed identity maps to a live top-level node that
//     represents it, and every identity a live outer node represents is
//     indexed to that node.
//  2. Every group represents at least two identities.
//  3. Every relation's endpoints resolve to live nodes of this graph and
//     none is freed.
//  4. Every attached child's owner back-reference leads to a live
//     top-level node.
//
// A violation is a defect in the sequence of structural operations that
// produced the graph, not a recoverable runtime condition. Use Validate
// after construction or merging, before handing the graph to an evaluator.
func (g *Graph) Validate() error {
	if err := g.validateIndex(); err != nil {
		return err
	}
	return g.validateAttachment()
}

func (g *Graph) validateIndex() error {
	for uid, n := range g.nodehash {
		if n.Core().freed || !g.containsOuter(n) {
			return ErrDanglingIdentity
		}
		found := false
		for _, id := range n.IDs() {
			if id.UID == uid {
				found = true
				break
			}
		}
		if !found {
			return ErrDanglingIdentity
		}
	}
	for _, n := range g.nodes {
		ids := n.IDs()
		if n.Type() == NodeTypeOuterGroup && len(ids) < 2 {
			return ErrGroupTooSmall
		}
		for _, id := range ids {
			if g.nodehash[id.UID] != n {
				return ErrUnindexedIdentity
			}
		}
	}
	return nil
}

func (g *Graph) validateAttachment() error {
	check := func(n Node) error {
		for _, rel := range n.Core().outlinks {
			if err := g.checkEndpoint(rel.From); err != nil {
				return err
			}
			if err := g.checkEndpoint(rel.To); err != nil {
				return err
			}
		}
		return nil
	}
	for _, outer := range g.nodes {
		if err := check(outer); err != nil {
			return err
		}
		o := outer.outer()
		for _, children := range [][]Node{o.subdata, o.nodes} {
			for _, child := range children {
				if child.Core().freed || g.outerOf(child) == nil {
					return ErrDanglingOwner
				}
				if err := check(child); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *Graph) checkEndpoint(n Node) error {
	if n == nil || n.Core().freed || g.outerOf(n) == nil {
		return ErrInvalidRelationEndpoint
	}
	return nil
}
