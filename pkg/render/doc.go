// Package render exports dependency graphs as Graphviz DOT and renders
// them to SVG or PNG.
//
// Each outer node becomes a cluster: identity nodes show their single
// datablock with components inside, group nodes list every identity
// they represent. Relations are drawn between the innermost endpoints.
package render
