// Package components holds the panes of the interactive dashboard. Each pane
// is a small bubbletea model that reports user intent to the dashboard through
// the messages in this file.
package components

import (
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// SelectionChangedMsg reports a scope picked in the navigation tree.
type SelectionChangedMsg struct {
	Selection model.Selection
}

// DrillRequestMsg asks the dashboard to open a drill-down.
type DrillRequestMsg struct {
	Context engine.Context
	Dataset model.Dataset
}

// DrillClosedMsg closes the drill-down modal.
type DrillClosedMsg struct{}

// CopyRequestMsg asks for a sheet to be copied to the clipboard.
type CopyRequestMsg struct {
	Sheet export.Sheet
}

// ExportRequestMsg asks for a sheet to be written by the configured exporter.
type ExportRequestMsg struct {
	Sheet export.Sheet
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
