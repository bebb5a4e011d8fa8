// Package deg provides the typed dependency-graph core that determines
// evaluation order for a 3D scene.
//
// # Overview
//
// A scene is a collection of data-blocks (objects, meshes, rigs) whose
// evaluation must respect "must run before" ordering. The depsgraph models
// each data-block as an outer node indexed by its identity, attaches data
// nodes for the block's sub-components beneath it, and connects nodes with
// directed relations. The finished graph is handed to an evaluator, which
// walks it in dependency order; this package only guarantees that the graph
// it hands over is structurally consistent.
//
// # Node Variants
//
// The package defines a closed set of node variants, dispatched through the
// [Node] interface and described by a process-wide type registry:
//
//   - [IDNode]: a top-level unit representing exactly one external identity
//   - [GroupNode]: a top-level unit representing a set of identities, formed
//     only by merging nodes that participate in a dependency cycle
//   - [DataNode]: an inner node owned by an outer node, representing one
//     sub-component of that data-block
//
// Each variant's [TypeInfo] is registered once at startup with
// [RegisterNodeType] and looked up with [TypeInfoFor]. The built-in variants
// register themselves during package initialization; registering a type that
// is already present replaces the previous entry.
//
// # Identity Index
//
// Every identity ever added to a [Graph] maps to exactly one live outer
// node, never two and never a freed one. All structural operations preserve
// this invariant, including [Graph.MergeCyclicPair], which rewrites every
// affected relation and ownership link before the superseded nodes are
// freed. [Graph.Validate] checks the invariant along with relation endpoint
// and owner liveness.
//
// # Cyclic Merge
//
// The evaluator cannot tolerate a dependency cycle spanning two distinct
// top-level nodes. [Graph.MergeCyclicPair] fuses the pair into a single
// [GroupNode] so the cycle becomes internal to one atomic evaluation unit:
//
//	g := deg.New()
//	a, _ := deg.NewNode(deg.NodeTypeOuterID)
//	b, _ := deg.NewNode(deg.NodeTypeOuterID)
//	g.AddNode(a, deg.NewID("Rig"))
//	g.AddNode(b, deg.NewID("Mesh"))
//	g.AddRelation(a, b)
//	g.AddRelation(b, a)
//	group, _ := g.MergeCyclicPair(a, b) // group now represents both identities
//
// # Concurrency
//
// Graph construction and merging are single-threaded, synchronous, in-memory
// operations. Graph instances are not safe for concurrent use. The type
// registry is shared by all graphs and is safe to read concurrently because
// it is never mutated after startup registration.
package deg
