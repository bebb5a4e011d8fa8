package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sceneforge/depsgraph/pkg/graphio"
	"github.com/sceneforge/depsgraph/pkg/store"
)

// archiveOpts holds the MongoDB connection flags shared by all archive
// subcommands.
type archiveOpts struct {
	uri        string
	database   string
	collection string
}

// newArchiveCmd creates the archive command for managing snapshots in
// MongoDB.
func newArchiveCmd() *cobra.Command {
	var opts archiveOpts

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage graph snapshots in a MongoDB archive",
	}

	cmd.PersistentFlags().StringVar(&opts.uri, "mongo", "mongodb://localhost:27017", "MongoDB connection URI")
	cmd.PersistentFlags().StringVar(&opts.database, "db", "depsgraph", "MongoDB database name")
	cmd.PersistentFlags().StringVar(&opts.collection, "collection", "snapshots", "MongoDB collection name")

	cmd.AddCommand(newArchiveSaveCmd(&opts))
	cmd.AddCommand(newArchiveLoadCmd(&opts))
	cmd.AddCommand(newArchiveListCmd(&opts))
	cmd.AddCommand(newArchiveDeleteCmd(&opts))

	return cmd
}

func openStore(ctx context.Context, opts *archiveOpts) (store.Store, error) {
	return store.NewMongoStore(ctx, opts.uri, opts.database, opts.collection)
}

func newArchiveSaveCmd(opts *archiveOpts) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [snapshot]",
		Short: "Archive a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, snap, err := graphio.ReadFile(args[0])
			if err != nil {
				return err
			}

			if name == "" {
				name = snap.Scene
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			s, err := openStore(ctx, opts)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			if err := s.Save(ctx, name, snap); err != nil {
				return err
			}
			printSuccess("Archived %s", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "archive name (default: scene name)")
	return cmd
}

func newArchiveLoadCmd(opts *archiveOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load [name]",
		Short: "Restore an archived snapshot to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openStore(ctx, opts)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			entry, err := s.Load(ctx, args[0])
			if err != nil {
				return err
			}

			g, err := graphio.ToGraph(entry.Snapshot)
			if err != nil {
				return err
			}

			if output == "" {
				output = args[0] + ".json"
			}
			if err := graphio.WriteFile(g, entry.Snapshot.Scene, output); err != nil {
				return err
			}

			printSuccess("Restored %s", output)
			printStats(g.NodeCount(), g.IdentityCount(), len(g.Relations()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")
	return cmd
}

func newArchiveListCmd(opts *archiveOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openStore(ctx, opts)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			entries, err := s.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Archive is empty")
				return nil
			}

			for _, e := range entries {
				fmt.Println(StyleValue.Render(e.Name) + " " +
					StyleDim.Render(fmt.Sprintf("%d nodes · %s",
						len(e.Snapshot.Nodes), e.CreatedAt.Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}
}

func newArchiveDeleteCmd(opts *archiveOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete an archived snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openStore(ctx, opts)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			if err := s.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
