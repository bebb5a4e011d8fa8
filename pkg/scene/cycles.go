package scene

import (
	"context"
	"time"

	"github.com/sceneforge/depsgraph/pkg/deg"
	"github.com/sceneforge/depsgraph/pkg/errors"
	"github.com/sceneforge/depsgraph/pkg/observability"
)

// CollapseCycles merges mutually-dependent outer nodes into group nodes
// until the outer graph is acyclic. Each collapsed pair fires an OnMerge
// hook; the return value is the total number of merges performed.
//
// Self-relations left behind by a merge (a group depending on itself) do
// not count as cycles and are kept as-is.
func CollapseCycles(ctx context.Context, g *deg.Graph) (int, error) {
	start := time.Now()
	merges := 0

	for {
		from, to, found := findBackEdge(g)
		if !found {
			break
		}

		survivor, err := g.MergeCyclicPair(from, to)
		if err != nil {
			return merges, errors.Wrap(errors.ErrCodeInvalidGraph, err, "failed to collapse cycle")
		}
		merges++
		observability.Graph().OnMerge(ctx, survivor.Name(), len(survivor.IDs()))
	}

	observability.Graph().OnCollapseComplete(ctx, merges, time.Since(start))
	return merges, nil
}

// findBackEdge runs a coloring DFS over the outer-node condensation of
// the graph and reports the first back edge between two distinct outer
// nodes. Relations between inner nodes are lifted to their owning outer
// nodes.
func findBackEdge(g *deg.Graph) (from, to deg.OuterNode, found bool) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[deg.OuterNode]int)
	adj := outerAdjacency(g)

	var dfs func(node deg.OuterNode) bool
	dfs = func(node deg.OuterNode) bool {
		color[node] = gray
		for _, child := range adj[node] {
			if child == node {
				continue
			}
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				from, to = node, child
				found = true
				return true
			}
		}
		color[node] = black
		return false
	}

	for _, n := range g.Nodes() {
		if color[n] == white {
			if dfs(n) {
				return from, to, true
			}
		}
	}
	return nil, nil, false
}

// outerAdjacency lifts every relation to its endpoints' owning outer
// nodes and returns the resulting adjacency lists, deduplicated.
func outerAdjacency(g *deg.Graph) map[deg.OuterNode][]deg.OuterNode {
	adj := make(map[deg.OuterNode][]deg.OuterNode, g.NodeCount())
	seen := make(map[[2]deg.OuterNode]bool)

	for _, rel := range g.Relations() {
		from := ownerOf(rel.From)
		to := ownerOf(rel.To)
		if from == nil || to == nil {
			continue
		}
		key := [2]deg.OuterNode{from, to}
		if seen[key] {
			continue
		}
		seen[key] = true
		adj[from] = append(adj[from], to)
	}
	return adj
}

// ownerOf walks the owner chain of a node up to its top-level outer node.
func ownerOf(n deg.Node) deg.OuterNode {
	for n != nil && n.Owner() != nil {
		n = n.Owner()
	}
	outer, ok := n.(deg.OuterNode)
	if !ok {
		return nil
	}
	return outer
}
