package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sceneforge/depsgraph/pkg/cache"
	"github.com/sceneforge/depsgraph/pkg/deg"
	"github.com/sceneforge/depsgraph/pkg/graphio"
	"github.com/sceneforge/depsgraph/pkg/observability"
	"github.com/sceneforge/depsgraph/pkg/render"
)

// renderCacheTTL bounds how long rendered artifacts stay cached.
const renderCacheTTL = 24 * time.Hour

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: "dot", "svg", "png"
	detailed bool     // include identity UIDs in labels
	noCache  bool     // bypass the render cache
	redisURL string   // optional shared Redis cache
}

// newRenderCmd creates the render command for generating graph
// visualizations from a snapshot file.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [snapshot]",
		Short: "Render a graph snapshot to DOT, SVG, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include identity UIDs in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared render cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{
	render.FormatDOT: true,
	render.FormatSVG: true,
	render.FormatPNG: true,
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", f)
		}
	}
	return nil
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	g, snap, err := graphio.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded snapshot: %d nodes, %d edges", len(snap.Nodes), len(snap.Edges))

	c, err := newCache(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return err
	}
	defer c.Close()

	snapHash, err := snapshotHash(snap)
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		data, cached, err := renderCached(ctx, c, g, snapHash, format, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}

		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}

		if cached {
			logger.Debugf("Used cached %s", format)
		}
		printFile(path)
	}

	printSuccess("Rendered %d format(s)", len(opts.formats))
	return nil
}

// renderCached renders one format, serving from and populating the
// render cache keyed by snapshot content.
func renderCached(ctx context.Context, c cache.Cache, g *deg.Graph, snapHash, format string, opts *renderOpts) ([]byte, bool, error) {
	key := cache.RenderKey(snapHash, cacheKeySuffix(format, opts.detailed))

	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	data, err := render.Render(ctx, g, format, render.Options{Detailed: opts.detailed})
	if err != nil {
		return nil, false, err
	}

	if err := c.Set(ctx, key, data, renderCacheTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, false, nil
}

func cacheKeySuffix(format string, detailed bool) string {
	if detailed {
		return format + ":detailed"
	}
	return format
}

// snapshotHash computes the content hash of a snapshot for cache keys.
func snapshotHash(snap graphio.Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If
// output has a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
