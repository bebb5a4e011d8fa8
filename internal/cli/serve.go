package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sceneforge/depsgraph/internal/server"
	"github.com/sceneforge/depsgraph/pkg/graphio"
)

// newServeCmd creates the serve command for exposing a graph snapshot
// over HTTP.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [snapshot]",
		Short: "Serve a graph snapshot over HTTP for debugging",
		Long: `Serve exposes a graph snapshot on a local HTTP port:

  GET /healthz        liveness probe
  GET /api/graph      snapshot JSON
  GET /api/graph.dot  Graphviz DOT
  GET /api/graph.svg  rendered SVG`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8420", "listen address")

	return cmd
}

func runServe(ctx context.Context, input, addr string) error {
	logger := loggerFromContext(ctx)

	g, snap, err := graphio.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %s: %d nodes", input, g.NodeCount())

	srv := server.New(g, snap, logger)
	logger.Infof("Serving on %s", addr)
	return srv.ListenAndServe(ctx, addr)
}
