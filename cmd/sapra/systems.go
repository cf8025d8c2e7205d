package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/sapra/internal/cli"
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func systemsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "systems",
		Short: "Show the system and subsystem tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			loader, err := newLoader(viper.GetViper(), nil)
			if err != nil {
				return err
			}
			ds, err := loader.LoadMain(ctx)
			if err != nil {
				return err
			}
			return runSystems(ctx, cmd.OutOrStdout(), ds, search)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "only show systems and subsystems matching this text")

	return cmd
}

func runSystems(_ context.Context, out io.Writer, ds engine.Dataset, search string) error {
	tree := engine.NavigationTree(ds.Hierarchy).Filter(search)
	if search != "" && len(tree.Root.Children) == 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("No systems match %q", search))) //nolint:forbidigo // User-facing output
		return nil
	}
	systems, subsystems := ds.Hierarchy.Len()
	title := fmt.Sprintf("%d systems, %d subsystems", systems, subsystems)
	fmt.Fprintln(out, cli.RenderBox(title, cli.Tree(tree))) //nolint:forbidigo // User-facing output
	return nil
}
