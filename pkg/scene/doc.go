// Package scene loads scene manifests and builds dependency graphs from them.
//
// A manifest is a TOML file describing the datablocks of a scene: each
// datablock becomes an outer node in the graph, each of its components
// becomes an inner data node, and depends_on entries become relations.
//
// After building, CollapseCycles repeatedly merges mutually-dependent
// datablocks into group nodes until the outer graph is acyclic.
package scene
