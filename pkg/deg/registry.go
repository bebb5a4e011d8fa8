package deg

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidTypeInfo is returned by [RegisterNodeType] when the type
	// info is nil, carries an unset type tag, or has no constructor.
	// Registration happens once at startup, so this is a programming
	// error, not a recoverable condition.
	ErrInvalidTypeInfo = errors.New("type info must have a type tag and constructor")

	// ErrUnknownNodeType is returned by [TypeInfoFor] and [NewNode] when
	// no type info is registered for the tag. Every node type must be
	// registered before any node of that type is constructed.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrUnsupported is returned by [Graph.BuildSubgraph] for node types
	// whose type info declares no subgraph hook.
	ErrUnsupported = errors.New("operation not supported by node type")
)

// NodeType tags a node variant and selects its registered [TypeInfo].
type NodeType int

// Node type tags for the built-in variants.
const (
	NodeTypeUnknown NodeType = iota
	NodeTypeOuterID
	NodeTypeOuterGroup
	NodeTypeData
)

// String returns the registered display name for the tag, or "unknown".
func (t NodeType) String() string {
	if info, err := TypeInfoFor(t); err == nil {
		return info.Name
	}
	return "unknown"
}

// TypeInfo describes a node variant: its tag, constructor, and optional
// lifecycle hooks. The structural operations (add, remove, copy) dispatch
// through the [Node] interface instead; TypeInfo covers what interface
// dispatch cannot, namely construction and the optional extension hooks.
type TypeInfo struct {
	// Type is the tag this info is registered under.
	Type NodeType

	// Name is the variant's display name.
	Name string

	// New constructs a zero node of the variant. Required.
	New func() Node

	// InitData initializes variant payload after construction. Optional.
	InitData func(n Node)

	// FreeData releases variant payload when the node is freed. Optional.
	FreeData func(n Node)

	// MatchOuter reports whether an existing outer node matches an
	// identity during incremental rebuilds. Optional; a nil hook means
	// "no match".
	MatchOuter func(n Node, id ID) bool

	// BuildSubgraph expands a composite node into an internal subgraph.
	// Optional; a nil hook means the operation is unsupported.
	BuildSubgraph func(g *Graph, n Node) error
}

// The registry is process-wide: every graph shares one table of type
// dispatch info. It is populated during startup and read-only afterwards,
// which is what makes sharing it across graphs safe.
var (
	registryMu sync.RWMutex
	registry   = make(map[NodeType]*TypeInfo)
)

// RegisterNodeType inserts or replaces the type info for its tag.
// The last registration for a tag wins. Built-in variants are registered
// during package initialization; callers only register custom composite
// types, and must do so before constructing any node of that type.
func RegisterNodeType(info *TypeInfo) error {
	if info == nil || info.Type == NodeTypeUnknown || info.New == nil {
		return ErrInvalidTypeInfo
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[info.Type] = info
	return nil
}

// TypeInfoFor returns the type info registered for the tag.
func TypeInfoFor(t NodeType) (*TypeInfo, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	info, ok := registry[t]
	if !ok {
		return nil, ErrUnknownNodeType
	}
	return info, nil
}

// NodeTypeInfo returns the type info for the node's tag.
func NodeTypeInfo(n Node) (*TypeInfo, error) {
	if n == nil {
		return nil, ErrUnknownNodeType
	}
	return TypeInfoFor(n.Type())
}

// NewNode constructs a node of the given type through its registered
// constructor and runs the InitData hook if one is declared. The node is
// not attached to any graph.
func NewNode(t NodeType) (Node, error) {
	info, err := TypeInfoFor(t)
	if err != nil {
		return nil, err
	}
	n := info.New()
	if info.InitData != nil {
		info.InitData(n)
	}
	return n, nil
}

// CopyNode constructs a new node of src's type and deep-copies src's
// payload into it via the variant's CopyData hook. The copy shares no
// relations with the original and is not attached to any graph.
func CopyNode(src Node) (Node, error) {
	dst, err := NewNode(src.Type())
	if err != nil {
		return nil, err
	}
	dst.SetName(src.Name())
	if err := dst.CopyData(src); err != nil {
		return nil, err
	}
	return dst, nil
}

func init() {
	for _, info := range []*TypeInfo{
		{
			Type: NodeTypeOuterID,
			Name: "ID Node",
			New:  func() Node { return &IDNode{Base: Base{typ: NodeTypeOuterID}} },
		},
		{
			Type: NodeTypeOuterGroup,
			Name: "ID Group Node",
			New:  func() Node { return &GroupNode{Base: Base{typ: NodeTypeOuterGroup}} },
		},
		{
			Type: NodeTypeData,
			Name: "Data Node",
			New:  func() Node { return &DataNode{Base: Base{typ: NodeTypeData}} },
		},
	} {
		if err := RegisterNodeType(info); err != nil {
			panic(err)
		}
	}
}
