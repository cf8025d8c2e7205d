package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/sapra/internal/cli"
	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/config"
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/feed"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/sheets"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exporter kinds accepted by --export.
const (
	exportXLSX   = "xlsx"
	exportCSV    = "csv"
	exportSheets = "sheets"
)

// exportKinds lists the --export values for flag help.
const exportKinds = exportXLSX + ", " + exportCSV + ", " + exportSheets

// scopeFlags are the --system/--subsystem flags shared by the reporting commands.
type scopeFlags struct {
	system    string
	subsystem string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.system, "system", "s", "", "limit to one system id")
	cmd.Flags().StringVar(&f.subsystem, "subsystem", "", "limit to one subsystem id")
}

// selection maps the flags to a scope, checking the ids exist in h.
func (f scopeFlags) selection(h *model.Hierarchy) (model.Selection, error) {
	system := strings.TrimSpace(f.system)
	subsystem := strings.TrimSpace(f.subsystem)

	switch {
	case subsystem != "":
		sub, ok := h.Subsystem(subsystem)
		if !ok {
			return model.Selection{}, fmt.Errorf("%w: subsystem %q", common.ErrUnknownScope, subsystem)
		}
		if system != "" && system != sub.SystemID {
			return model.Selection{}, fmt.Errorf("%w: subsystem %q does not belong to system %q",
				common.ErrUnknownScope, subsystem, system)
		}
		return model.SubsystemScope(sub.ID, sub.SystemID), nil
	case system != "":
		if _, ok := h.System(system); !ok {
			return model.Selection{}, fmt.Errorf("%w: system %q", common.ErrUnknownScope, system)
		}
		return model.SystemScope(system), nil
	default:
		return model.AllSystems(), nil
	}
}

// newLoader builds a feed loader from the configured feed locations. Progress
// is drawn on progressOut when it is not nil.
func newLoader(v *viper.Viper, progressOut io.Writer) (*feed.Loader, error) {
	feeds, err := config.LoadFeedsConfig(v)
	if err != nil {
		return nil, err
	}

	opts := []feed.Option{feed.WithLogger(slog.Default())}
	if progressOut != nil {
		opts = append(opts, feed.WithProgress(cli.NewFeedProgress(progressOut)))
	}
	return feed.NewLoader(feed.NewDefaultSource(feeds.Timeout), feeds, opts...), nil
}

// loadAll fetches every feed. Secondary failures are reported by the progress
// display and leave their lists empty.
func loadAll(ctx context.Context, v *viper.Viper, progressOut io.Writer) (*feed.Result, error) {
	loader, err := newLoader(v, progressOut)
	if err != nil {
		return nil, err
	}

	handler := cli.NewInterruptHandler(progressOut, "Feed loading")
	ctx, stop := handler.HandleInterrupts(ctx)
	defer stop()

	res, err := loader.Load(ctx)
	if err != nil && handler.WasInterrupted() {
		return nil, common.NewUserError("feed loading was interrupted", err)
	}
	return res, err
}

// newExporter returns the writer for an --export kind. An empty kind means no
// export was requested.
func newExporter(ctx context.Context, v *viper.Viper, kind string) (export.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "":
		return nil, nil
	case exportXLSX:
		return export.NewXLSXWriter(config.ExpandPath(v.GetString("export.dir")), slog.Default()), nil
	case exportCSV:
		return export.NewCSVWriter(config.ExpandPath(v.GetString("export.dir")), slog.Default()), nil
	case exportSheets:
		cfg, err := config.LoadSheetsConfig(v)
		if err != nil {
			return nil, err
		}
		w, err := sheets.NewWriter(ctx, *cfg, slog.Default())
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Sheets writer: %w", err)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: unknown export target %q (use %s)",
			common.ErrInvalidConfig, kind, exportKinds)
	}
}

// writeSheet exports sheet and reports the outcome on out.
func writeSheet(ctx context.Context, out io.Writer, w export.Writer, sheet export.Sheet) error {
	err := w.Write(ctx, sheet)
	switch {
	case errors.Is(err, common.ErrNothingToExport):
		fmt.Fprintln(out, cli.FormatWarning("Nothing to export")) //nolint:forbidigo // User-facing output
		return nil
	case err != nil:
		common.LogError(err, "Export failed", common.Fields{"sheet": sheet.Name, "file": sheet.File})
		return fmt.Errorf("export failed: %w", err)
	}

	target := sheet.File
	if fw, ok := w.(export.FileWriter); ok {
		target = fw.Path(sheet)
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Exported %d rows to %s", sheet.Len(), target))) //nolint:forbidigo // User-facing output
	return nil
}

// copySheet puts sheet on the clipboard as tab-separated text.
func copySheet(out io.Writer, write func(string) error, sheet export.Sheet) error {
	if sheet.Len() == 0 {
		fmt.Fprintln(out, cli.FormatWarning("Nothing to copy")) //nolint:forbidigo // User-facing output
		return nil
	}
	text, err := export.TSV(sheet)
	if err != nil {
		return err
	}
	if err := write(text); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Copied %d rows to the clipboard", sheet.Len()))) //nolint:forbidigo // User-facing output
	return nil
}

// parseRow parses a --row value of the form subsystem/discipline. The last
// slash separates the two, so subsystem ids may contain slashes.
func parseRow(s string) (model.TableRow, error) {
	i := strings.LastIndex(s, "/")
	if i < 0 {
		return model.TableRow{}, fmt.Errorf("invalid row %q: expected subsystem/discipline", s)
	}
	subsystem := strings.TrimSpace(s[:i])
	discipline := strings.TrimSpace(s[i+1:])
	if subsystem == "" || discipline == "" {
		return model.TableRow{}, fmt.Errorf("invalid row %q: expected subsystem/discipline", s)
	}
	return model.TableRow{Subsystem: subsystem, Discipline: discipline}, nil
}

// drillContext builds the click context for the drill command: a table cell
// when row is set, a summary tile otherwise.
func drillContext(status model.Status, row string) (engine.Context, error) {
	if row == "" {
		return engine.SummaryContext{Status: status}, nil
	}
	r, err := parseRow(row)
	if err != nil {
		return nil, err
	}
	return engine.TableContext{Row: r, Status: status}, nil
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll
