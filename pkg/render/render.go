package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/sceneforge/depsgraph/pkg/deg"
	"github.com/sceneforge/depsgraph/pkg/errors"
	"github.com/sceneforge/depsgraph/pkg/observability"
)

// Supported output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Render exports a graph in the requested format and fires render hooks.
func Render(ctx context.Context, g *deg.Graph, format string, opts Options) ([]byte, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, format, g.NodeCount())

	out, err := render(ctx, g, format, opts)

	observability.Render().OnRenderComplete(ctx, format, time.Since(start), err)
	return out, err
}

func render(ctx context.Context, g *deg.Graph, format string, opts Options) ([]byte, error) {
	dot := ToDOT(g, opts)

	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return renderVia(ctx, dot, graphviz.SVG)
	case FormatPNG:
		return renderVia(ctx, dot, graphviz.PNG)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderVia(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderVia(ctx, dot, graphviz.PNG)
}

func renderVia(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
