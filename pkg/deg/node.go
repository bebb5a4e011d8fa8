package deg

// Relation is a directed edge expressing that From must be evaluated
// before To. A relation carries no payload beyond its endpoints and is
// stored on the outlink list of From and the inlink list of To.
type Relation struct {
	From Node
	To   Node
}

// Node is the interface implemented by every node variant. The structural
// hooks (AddToGraph, RemoveFromGraph, CopyData) dispatch on the concrete
// variant; shared state lives in the embedded [Base].
type Node interface {
	// Core returns the node's shared state. It exists so that graph-level
	// operations can reach the link lists and owner reference of any
	// variant; applications should treat the returned Base as read-only.
	Core() *Base

	// Type returns the variant's registered type tag.
	Type() NodeType

	// Name returns the node's display name.
	Name() string

	// SetName sets the node's display name.
	SetName(name string)

	// Owner returns the outer node this node is attached beneath, or nil
	// for top-level nodes. The reference is a weak back-link used for
	// lookup and validation, never an ownership edge.
	Owner() Node

	// InLinks returns the relations targeting this node, in insertion order.
	InLinks() []*Relation

	// OutLinks returns the relations leaving this node, in insertion order.
	OutLinks() []*Relation

	// AddToGraph inserts the node into g. Outer variants index themselves
	// in the identity hash; data variants attach beneath the outer node
	// currently representing id.
	AddToGraph(g *Graph, id ID) error

	// RemoveFromGraph detaches the node from g, erasing every identity
	// hash entry that points at it. Calling it on a node that is not in
	// the graph returns ErrNodeNotInGraph; it must be called at most once
	// per live node.
	RemoveFromGraph(g *Graph) error

	// CopyData deep-copies the variant's payload (child collections,
	// identity sets) from src, which must be of the same variant.
	// Relations are not copied: the copy and its children start with
	// empty link lists and must be re-linked by the caller.
	CopyData(src Node) error
}

// Base carries the state shared by every node variant. Concrete node types
// embed it; the embedded Core method satisfies that part of the [Node]
// interface.
type Base struct {
	typ      NodeType
	name     string
	owner    Node
	inlinks  []*Relation
	outlinks []*Relation
	freed    bool
}

// Core returns b itself.
func (b *Base) Core() *Base { return b }

// Type returns the node's type tag.
func (b *Base) Type() NodeType { return b.typ }

// Name returns the node's display name.
func (b *Base) Name() string { return b.name }

// SetName sets the node's display name.
func (b *Base) SetName(name string) { b.name = name }

// Owner returns the containing outer node, or nil for top-level nodes.
func (b *Base) Owner() Node { return b.owner }

// InLinks returns the relations targeting this node.
func (b *Base) InLinks() []*Relation { return b.inlinks }

// OutLinks returns the relations leaving this node.
func (b *Base) OutLinks() []*Relation { return b.outlinks }

// Freed reports whether the node's storage has been released with
// [Graph.FreeNode]. A freed node must never be reachable from a live
// graph; [Graph.Validate] flags any freed node still referenced.
func (b *Base) Freed() bool { return b.freed }

// OuterNode is implemented by top-level node variants ([IDNode] and
// [GroupNode]) that represent one or more external identities and may have
// inner nodes attached beneath them.
type OuterNode interface {
	Node

	// IDs returns the identities this node currently represents, in
	// insertion order.
	IDs() []ID

	// SubData returns the data nodes logically inside the data-block(s).
	SubData() []Node

	// Nodes returns the other inner nodes attached to this outer node.
	Nodes() []Node

	outer() *outerData
}

// outerData holds the child collections shared by the outer variants.
// Code that enumerates "all data attached to this outer node" must treat
// subdata and nodes uniformly regardless of the variant.
type outerData struct {
	subdata []Node
	nodes   []Node
}

// SubData returns the attached data nodes in insertion order.
func (o *outerData) SubData() []Node { return o.subdata }

// Nodes returns the attached inner nodes in insertion order.
func (o *outerData) Nodes() []Node { return o.nodes }

func (o *outerData) outer() *outerData { return o }

// copyOuter deep-copies src's child collections into o, re-parenting each
// copied child to dst. Relation endpoints of the copied children are not
// re-linked; see the CopyData contract on [Node].
func (o *outerData) copyOuter(dst OuterNode, src OuterNode) error {
	so := src.outer()
	for _, child := range so.subdata {
		c, err := CopyNode(child)
		if err != nil {
			return err
		}
		c.Core().owner = dst
		o.subdata = append(o.subdata, c)
	}
	for _, child := range so.nodes {
		c, err := CopyNode(child)
		if err != nil {
			return err
		}
		if child.Owner() == Node(src) {
			c.Core().owner = dst
		}
		o.nodes = append(o.nodes, c)
	}
	return nil
}
