package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/xuri/excelize/v2"
)

const (
	maxSheetNameLen = 31
	xlsxColWidth    = 16
)

// FileWriter is a Writer that saves each sheet as a file.
type FileWriter interface {
	Writer
	Path(sheet Sheet) string
}

// XLSXWriter writes each sheet to <Dir>/<File>.xlsx as a single-sheet workbook.
type XLSXWriter struct {
	logger *slog.Logger
	dir    string
}

// NewXLSXWriter creates a writer that places workbooks in dir.
func NewXLSXWriter(dir string, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{dir: dir, logger: logger}
}

// Path returns the file a sheet is written to.
func (w *XLSXWriter) Path(sheet Sheet) string {
	return filepath.Join(w.dir, sheet.File+".xlsx")
}

// Write implements Writer. The worksheet is named after sheet.Name, the first
// row holds the columns and counts are stored as numbers. Empty sheets are
// rejected with common.ErrNothingToExport and no file is created.
func (w *XLSXWriter) Write(ctx context.Context, sheet Sheet) error {
	if sheet.Len() == 0 {
		return common.ErrNothingToExport
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	name := WorksheetName(sheet.Name)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}
	if err := fillWorksheet(f, name, sheet); err != nil {
		return fmt.Errorf("failed to fill worksheet %q: %w", name, err)
	}

	path := w.Path(sheet)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.logger.Info("exported sheet", "sheet", sheet.Name, "rows", sheet.Len(), "path", path)
	return nil
}

func fillWorksheet(f *excelize.File, name string, sheet Sheet) error {
	header := make([]any, len(sheet.Columns))
	for i, col := range sheet.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := cellValues(row)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(max(len(sheet.Columns), 1))
	if err != nil {
		return err
	}
	return f.SetColWidth(name, "A", lastCol, xlsxColWidth)
}

// cellValues stores canonical integers as numbers and everything else as text.
// "007" stays text so leading zeros in tags survive.
func cellValues(row []string) []any {
	values := make([]any, len(row))
	for i, s := range row {
		if n, err := strconv.Atoi(s); err == nil && strconv.Itoa(n) == s {
			values[i] = n
			continue
		}
		values[i] = s
	}
	return values
}

// WorksheetName makes name acceptable as an Excel worksheet name.
func WorksheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return "Sheet1"
	}
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	return name
}
