// Package pkg provides the libraries behind the depsgraph tooling.
//
// # Overview
//
// The depsgraph determines the evaluation order of a 3D scene: data-blocks
// become typed graph nodes, directed relations express "must be evaluated
// before" ordering, and cyclic dependencies between top-level units are
// collapsed into atomic groups. The pkg directory is organized into:
//
//  1. [deg] - the graph core (node types, identity index, cyclic merge)
//  2. [scene] - scene manifests and the build driver that populates a graph
//  3. [graphio] - snapshot serialization for graphs
//  4. [render] - DOT export and Graphviz rendering
//  5. [cache], [store] - artifact caching and snapshot archival
//  6. [errors], [observability], [buildinfo] - cross-cutting support
//
// # Architecture
//
// The typical data flow through the tooling:
//
//	Scene manifest (TOML)
//	         ↓
//	    [scene] package (build nodes + relations, collapse cycles)
//	         ↓
//	    [deg] package (graph structure, identity index, merging)
//	         ↓
//	    [graphio] / [render] (snapshot JSON, DOT, SVG/PNG)
//
// [deg]: github.com/sceneforge/depsgraph/pkg/deg
// [scene]: github.com/sceneforge/depsgraph/pkg/scene
// [graphio]: github.com/sceneforge/depsgraph/pkg/graphio
// [render]: github.com/sceneforge/depsgraph/pkg/render
// [cache]: github.com/sceneforge/depsgraph/pkg/cache
// [store]: github.com/sceneforge/depsgraph/pkg/store
// [errors]: github.com/sceneforge/depsgraph/pkg/errors
// [observability]: github.com/sceneforge/depsgraph/pkg/observability
// [buildinfo]: github.com/sceneforge/depsgraph/pkg/buildinfo
package pkg
