package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sceneforge/depsgraph/pkg/deg"
)

// Options configures DOT export.
type Options struct {
	// Detailed includes identity UIDs in node labels. When false, only
	// names are shown.
	Detailed bool
}

// ToDOT converts a dependency graph to Graphviz DOT format. The
// resulting string can be rendered with [RenderSVG] or [RenderPNG].
//
// Outer nodes become clusters holding their data nodes. Group nodes
// (cycle merges) get a dashed grey cluster labeled with every identity
// they represent.
func ToDOT(g *deg.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph depsgraph {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := dotIDs(g)

	for i, outer := range g.Nodes() {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", clusterLabel(outer, opts.Detailed))
		if outer.Type() == deg.NodeTypeOuterGroup {
			buf.WriteString("    style=\"dashed,filled\";\n")
			buf.WriteString("    fillcolor=lightgrey;\n")
		}
		// Anchor node so relations on the outer node itself have an
		// endpoint inside the cluster.
		fmt.Fprintf(&buf, "    %s [label=%q];\n", ids[outer], outer.Name())
		for _, child := range outer.SubData() {
			fmt.Fprintf(&buf, "    %s [label=%q, shape=ellipse];\n", ids[child], child.Name())
		}
		for _, child := range outer.Nodes() {
			fmt.Fprintf(&buf, "    %s [label=%q];\n", ids[child], child.Name())
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, rel := range g.Relations() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", ids[rel.From], ids[rel.To])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotIDs assigns a stable DOT identifier to every node in the graph.
func dotIDs(g *deg.Graph) map[deg.Node]string {
	ids := make(map[deg.Node]string)
	next := 0
	assign := func(n deg.Node) {
		if _, ok := ids[n]; !ok {
			ids[n] = fmt.Sprintf("n%d", next)
			next++
		}
	}
	for _, outer := range g.Nodes() {
		assign(outer)
		for _, child := range outer.SubData() {
			assign(child)
		}
		for _, child := range outer.Nodes() {
			assign(child)
		}
	}
	return ids
}

func clusterLabel(n deg.OuterNode, detailed bool) string {
	if n.Type() != deg.NodeTypeOuterGroup && !detailed {
		return n.Name()
	}

	parts := make([]string, 0, len(n.IDs()))
	for _, id := range n.IDs() {
		if detailed {
			parts = append(parts, fmt.Sprintf("%s (%s)", id.Name, id.UID))
		} else {
			parts = append(parts, id.Name)
		}
	}
	if n.Type() == deg.NodeTypeOuterGroup {
		return "group: " + strings.Join(parts, ", ")
	}
	return strings.Join(parts, "\n")
}
