package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/sapra/internal/cli"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/feed"
	"github.com/Veraticus/sapra/internal/state"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func tableCmd() *cobra.Command {
	var (
		scope    scopeFlags
		exportTo string
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show the detail table for a scope",
		Long: `Show one row per system, subsystem and discipline in scope.

With --export the full table for the scope is written as a report, including
rows whose scope has nothing to do.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w, err := newExporter(ctx, viper.GetViper(), exportTo)
			if err != nil {
				return err
			}
			res, err := loadAll(ctx, viper.GetViper(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runTable(ctx, cmd.OutOrStdout(), res, scope, w, time.Now())
		},
	}
	scope.register(cmd)
	cmd.Flags().StringVar(&exportTo, "export", "", "export the report ("+exportKinds+")")

	return cmd
}

// runTable prints the detail table and, when w is set, exports the report.
func runTable(ctx context.Context, out io.Writer, res *feed.Result, scope scopeFlags, w export.Writer, now time.Time) error {
	sel, err := scope.selection(res.Dataset.Hierarchy)
	if err != nil {
		return err
	}
	st := state.New(res.Dataset, res.Items, sel)

	fmt.Fprintln(out, cli.FormatTitle(sel.Label()))   //nolint:forbidigo // User-facing output
	fmt.Fprintln(out, cli.DetailTable(st.Table, sel)) //nolint:forbidigo // User-facing output

	if w == nil {
		return nil
	}
	return writeSheet(ctx, out, w, export.TableSheet(st.ExportRows(), sel, now))
}
