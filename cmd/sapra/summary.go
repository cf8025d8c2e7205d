package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/sapra/internal/cli"
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/feed"
	"github.com/Veraticus/sapra/internal/state"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	chartWidth    = 40
	markdownWidth = 100
)

// summaryOptions are the flags of the summary command.
type summaryOptions struct {
	scope    scopeFlags
	markdown bool
	raw      bool
}

func summaryCmd() *cobra.Command {
	var opts summaryOptions

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show progress totals for a scope",
		Long: `Show the rolled-up counters for all systems, one system or one subsystem,
with progress and open-issue charts and a breakdown by child scope.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			res, err := loadAll(ctx, viper.GetViper(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runSummary(ctx, cmd.OutOrStdout(), res, opts)
		},
	}
	opts.scope.register(cmd)
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "print the summary as a markdown report")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "with --markdown, print the markdown source without rendering")

	return cmd
}

func runSummary(_ context.Context, out io.Writer, res *feed.Result, opts summaryOptions) error {
	sel, err := opts.scope.selection(res.Dataset.Hierarchy)
	if err != nil {
		return err
	}
	st := state.New(res.Dataset, res.Items, sel)
	h := st.Dataset.Hierarchy

	if opts.markdown {
		md := cli.SummaryMarkdown(sel, st.Stats, h)
		if !opts.raw {
			if md, err = cli.RenderMarkdown(md, markdownWidth); err != nil {
				return err
			}
		}
		fmt.Fprint(out, md) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Fprintln(out, cli.Summary(engine.ScopeTitle(sel, h), st.Stats))                    //nolint:forbidigo // User-facing output
	fmt.Fprintln(out, cli.Series("Progress", engine.OverviewSeries(st.Stats), chartWidth)) //nolint:forbidigo // User-facing output
	fmt.Fprintln(out, cli.Series("Open issues", engine.IssueSeries(st.Stats), chartWidth)) //nolint:forbidigo // User-facing output

	if disciplines := engine.DisciplineBreakdown(sel, h); len(disciplines) > 0 {
		fmt.Fprintln(out, cli.Disciplines(disciplines)) //nolint:forbidigo // User-facing output
	} else if children := engine.ChildBreakdown(sel, h); len(children) > 0 {
		fmt.Fprintln(out, cli.Breakdown(children)) //nolint:forbidigo // User-facing output
	}
	return nil
}
