package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/sapra/internal/cli"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/feed"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/state"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// drillOptions are the flags of the drill command.
type drillOptions struct {
	scope   scopeFlags
	status  string
	dataset string
	row     string
	export  string
	copy    bool
}

func drillCmd() *cobra.Command {
	var opts drillOptions

	cmd := &cobra.Command{
		Use:   "drill",
		Short: "List the items behind a counter",
		Long: `List the items behind a summary counter or a detail-table cell.

Without --row the items are limited to the selected scope, as when clicking a
summary tile. With --row subsystem/discipline they are limited to that table
row regardless of scope. The last slash separates subsystem from discipline.

Statuses: TOTAL, DONE, PENDING, OTHER (or REMAINING), PUNCH, HOLD.`,
		Example: `  sapra drill --status pending --system S1
  sapra drill --status punch --row SS-01/Piping --export xlsx
  sapra drill --status hold --row A/B-02/Elec`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w, err := newExporter(ctx, viper.GetViper(), opts.export)
			if err != nil {
				return err
			}
			res, err := loadAll(ctx, viper.GetViper(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runDrill(ctx, cmd.OutOrStdout(), res, opts, w, time.Now())
		},
	}
	opts.scope.register(cmd)
	cmd.Flags().StringVar(&opts.status, "status", "", "status to drill into (required)")
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "item list to search: items, punch or hold (default depends on status)")
	cmd.Flags().StringVar(&opts.row, "row", "", "table row as subsystem/discipline (split at the last slash)")
	cmd.Flags().StringVar(&opts.export, "export", "", "export the items ("+exportKinds+")")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "copy the items to the clipboard")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

func runDrill(ctx context.Context, out io.Writer, res *feed.Result, opts drillOptions, w export.Writer, now time.Time) error {
	status, err := model.ParseStatus(opts.status)
	if err != nil {
		return err
	}
	dataset := status.DefaultDataset()
	if opts.dataset != "" {
		if dataset, err = model.ParseDataset(opts.dataset); err != nil {
			return err
		}
	}
	drillCtx, err := drillContext(status, opts.row)
	if err != nil {
		return err
	}
	sel, err := opts.scope.selection(res.Dataset.Hierarchy)
	if err != nil {
		return err
	}

	st := state.New(res.Dataset, res.Items, sel)
	result := st.Drill(drillCtx, dataset)
	fmt.Fprintln(out, cli.Drill(result)) //nolint:forbidigo // User-facing output

	sheet := export.ItemSheet(result, now)
	if opts.copy {
		if err := copySheet(out, clipboardWrite, sheet); err != nil {
			return err
		}
	}
	if w != nil {
		return writeSheet(ctx, out, w, sheet)
	}
	return nil
}
