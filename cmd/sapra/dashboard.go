package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/config"
	"github.com/Veraticus/sapra/internal/state"
	"github.com/Veraticus/sapra/internal/tui"
	"github.com/Veraticus/sapra/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	var (
		scope    scopeFlags
		exportTo string
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive dashboard. The main feed is loaded first; the item,
punch and hold point lists keep loading in the background while you browse.

Keys: tab switches panes, / searches the tree, enter selects or drills down,
e exports, c copies a drill-down, q quits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), viper.GetViper(), scope, exportTo)
		},
	}
	scope.register(cmd)
	cmd.Flags().StringVar(&exportTo, "export", exportXLSX, "export target for e ("+exportKinds+")")
	cmd.Flags().String("theme", "default", fmt.Sprintf("color theme %v", themes.Names))
	cmd.Flags().String("log-file", "", "write logs here while the dashboard runs")

	_ = viper.BindPFlag("dashboard.theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("dashboard.log_file", cmd.Flags().Lookup("log-file"))

	return cmd
}

func runDashboard(ctx context.Context, v *viper.Viper, scope scopeFlags, exportTo string) error {
	w, err := newExporter(ctx, v, exportTo)
	if err != nil {
		return err
	}

	loader, err := newLoader(v, nil)
	if err != nil {
		return err
	}
	ds, err := loader.LoadMain(ctx)
	if err != nil {
		return err
	}

	store := state.NewStore(ds)
	sel, err := scope.selection(ds.Hierarchy)
	if err != nil {
		return err
	}
	store.Select(sel)

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	logger, closeLog, err := dashboardLogger(v)
	if err != nil {
		return err
	}
	defer closeLog()
	previous := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(previous)

	return tui.Run(ctx, store,
		tui.WithTheme(themes.GetTheme(v.GetString("dashboard.theme"))),
		tui.WithSecondaryLoader(loader),
		tui.WithExporter(w),
		tui.WithLogger(logger),
	)
}

func dashboardLogger(v *viper.Viper) (*slog.Logger, func(), error) {
	level, err := common.ParseLevel(v.GetString("logging.level"))
	if err != nil {
		return nil, nil, err
	}

	path := config.ExpandPath(v.GetString("dashboard.log_file"))
	if path == "" {
		logger, err := common.NewLogger(io.Discard, level, v.GetString("logging.format"))
		return logger, func() {}, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger, err := common.NewLogger(f, level, v.GetString("logging.format"))
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return logger, func() { _ = f.Close() }, nil
}
