package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/sapra/internal/common"
)

// CSVWriter writes each sheet to <Dir>/<File>.csv.
type CSVWriter struct {
	logger *slog.Logger
	dir    string
}

// NewCSVWriter creates a writer that places files in dir.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// Path returns the file a sheet is written to.
func (w *CSVWriter) Path(sheet Sheet) string {
	return filepath.Join(w.dir, sheet.File+".csv")
}

// Write implements Writer. Empty sheets are rejected with
// common.ErrNothingToExport and no file is created.
func (w *CSVWriter) Write(ctx context.Context, sheet Sheet) error {
	if sheet.Len() == 0 {
		return common.ErrNothingToExport
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	path := w.Path(sheet)
	f, err := os.Create(path) //nolint:gosec // path is built from the configured export dir
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := encode(f, sheet, ','); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	w.logger.Info("exported sheet", "sheet", sheet.Name, "rows", sheet.Len(), "path", path)
	return nil
}

// TSV renders a sheet as tab-separated text for pasting into a spreadsheet.
func TSV(sheet Sheet) (string, error) {
	if sheet.Len() == 0 {
		return "", common.ErrNothingToExport
	}
	var buf bytes.Buffer
	if err := encode(&buf, sheet, '\t'); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encode(out io.Writer, sheet Sheet, comma rune) error {
	cw := csv.NewWriter(out)
	cw.Comma = comma
	if err := cw.Write(sheet.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(sheet.Rows); err != nil {
		return err
	}
	return cw.Error()
}
