package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sceneforge/depsgraph/pkg/graphio"
	"github.com/sceneforge/depsgraph/pkg/scene"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output   string // output snapshot path
	collapse bool   // merge cyclic datablocks into groups
	validate bool   // run structural validation after building
}

// newBuildCmd creates the build command for turning a scene manifest
// into a graph snapshot.
func newBuildCmd() *cobra.Command {
	opts := buildOpts{
		collapse: true,
		validate: true,
	}

	cmd := &cobra.Command{
		Use:   "build [manifest]",
		Short: "Build a dependency graph from a scene manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output snapshot file (default: manifest name with .json)")
	cmd.Flags().BoolVar(&opts.collapse, "collapse", opts.collapse, "collapse cyclic datablocks into groups")
	cmd.Flags().BoolVar(&opts.validate, "validate", opts.validate, "validate graph structure after building")

	return cmd
}

func runBuild(ctx context.Context, input string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	m, err := scene.LoadManifest(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded manifest: %d datablocks", len(m.Datablocks))

	g, err := scene.Build(ctx, m)
	if err != nil {
		return err
	}

	if opts.collapse {
		merges, err := scene.CollapseCycles(ctx, g)
		if err != nil {
			return err
		}
		if merges > 0 {
			logger.Infof("Collapsed %d cyclic pair(s)", merges)
		}
	}

	if opts.validate {
		if err := g.Validate(); err != nil {
			return err
		}
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
	}
	if err := graphio.WriteFile(g, m.Scene.Name, output); err != nil {
		return err
	}

	prog.done("Built graph")
	printSuccess("Built %s", output)
	printStats(g.NodeCount(), g.IdentityCount(), len(g.Relations()))
	return nil
}
