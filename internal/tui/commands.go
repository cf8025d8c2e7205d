package tui

import (
	"context"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/feed"
	tea "github.com/charmbracelet/bubbletea"
)

// loadSecondary runs the background load, feeding each finished feed into ch.
// ch is closed once every feed has reported.
func loadSecondary(ctx context.Context, loader SecondaryLoader, ch chan<- feed.Secondary) tea.Cmd {
	return func() tea.Msg {
		loader.LoadSecondary(ctx, func(s feed.Secondary) {
			ch <- s
		})
		close(ch)
		return nil
	}
}

// waitForSecondary delivers the next finished feed.
func waitForSecondary(ch <-chan feed.Secondary) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return secondaryDoneMsg{}
		}
		return secondaryLoadedMsg{secondary: s}
	}
}

// copySheet copies sheet to the clipboard as tab-separated text.
func copySheet(write func(string) error, sheet export.Sheet) tea.Cmd {
	return func() tea.Msg {
		if sheet.Len() == 0 {
			return copiedMsg{err: common.ErrNothingToExport}
		}
		text, err := export.TSV(sheet)
		if err != nil {
			return copiedMsg{err: err}
		}
		if err := write(text); err != nil {
			return copiedMsg{err: err}
		}
		return copiedMsg{rows: sheet.Len()}
	}
}

// exportSheet writes sheet with the configured exporter. File exporters report
// the written path instead of the bare file name.
func exportSheet(ctx context.Context, w export.Writer, sheet export.Sheet) tea.Cmd {
	target := sheet.File
	if fw, ok := w.(export.FileWriter); ok {
		target = fw.Path(sheet)
	}
	return func() tea.Msg {
		if err := w.Write(ctx, sheet); err != nil {
			return exportedMsg{sheet: target, err: err}
		}
		return exportedMsg{sheet: target, rows: sheet.Len()}
	}
}
