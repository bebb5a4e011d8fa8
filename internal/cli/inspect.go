package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sceneforge/depsgraph/pkg/deg"
	"github.com/sceneforge/depsgraph/pkg/graphio"
)

// newInspectCmd creates the inspect command for examining a graph
// snapshot.
func newInspectCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect [snapshot]",
		Short: "Show graph statistics or browse nodes interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse nodes in an interactive list")

	return cmd
}

func runInspect(ctx context.Context, input string, interactive bool) error {
	g, snap, err := graphio.ReadFile(input)
	if err != nil {
		return err
	}

	if interactive {
		model := newNodeListModel(g)
		_, err := tea.NewProgram(model).Run()
		return err
	}

	groups := 0
	dataNodes := 0
	for _, outer := range g.Nodes() {
		if outer.Type() == deg.NodeTypeOuterGroup {
			groups++
		}
		dataNodes += len(outer.SubData())
	}

	if snap.Scene != "" {
		printKeyValue("scene", snap.Scene)
	}
	printKeyValue("nodes", fmt.Sprintf("%d", g.NodeCount()))
	printKeyValue("groups", fmt.Sprintf("%d", groups))
	printKeyValue("identities", fmt.Sprintf("%d", g.IdentityCount()))
	printKeyValue("data nodes", fmt.Sprintf("%d", dataNodes))
	printKeyValue("relations", fmt.Sprintf("%d", len(g.Relations())))

	if err := g.Validate(); err != nil {
		printError("Validation: %v", err)
		return err
	}
	printSuccess("Graph is structurally valid")
	return nil
}
