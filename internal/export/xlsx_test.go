package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	_ FileWriter = (*XLSXWriter)(nil)
	_ FileWriter = (*CSVWriter)(nil)
)

func readWorkbook(t *testing.T, path string) (sheets []string, rows [][]string) {
	t.Helper()

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets = f.GetSheetList()
	require.NotEmpty(t, sheets)
	rows, err = f.GetRows(sheets[0])
	require.NoError(t, err)
	return sheets, rows
}

func TestXLSXWriter_Report(t *testing.T) {
	dir := t.TempDir()
	w := NewXLSXWriter(dir, nil)

	sheet := TableSheet([]model.TableRow{
		{System: "S1", SystemName: "Power", Subsystem: "SS1", SubsystemName: "Switchgear", Discipline: "Elec",
			TotalItems: 4, Completed: 1, Pending: 2, Punch: 1, StatusPercent: 25},
		{System: "S1", SystemName: "Power", Subsystem: "SS2", SubsystemName: "Cables", Discipline: "Mech",
			TotalItems: 10, Completed: 10, StatusPercent: 100},
	}, model.SystemScope("S1"), exportDay)
	require.NoError(t, w.Write(context.Background(), sheet))

	path := filepath.Join(dir, "SAPRA_Report_System_S1_2024-03-09.xlsx")
	assert.Equal(t, path, w.Path(sheet))

	sheets, rows := readWorkbook(t, path)
	assert.Equal(t, []string{ReportSheetName}, sheets)
	require.Len(t, rows, 3)
	assert.Equal(t, sheet.Columns, rows[0])
	assert.Equal(t, []string{"S1", "Power", "SS1", "Switchgear", "Elec", "4", "1", "2", "1", "0", "25%"}, rows[1])
	assert.Equal(t, []string{"S1", "Power", "SS2", "Cables", "Mech", "10", "10", "0", "0", "0", "100%"}, rows[2])
}

func TestXLSXWriter_ItemDetails(t *testing.T) {
	dir := t.TempDir()
	w := NewXLSXWriter(dir, nil)

	sheet := ItemSheet(engine.Result{Dataset: model.DatasetHold, Hold: []model.HoldPointItem{
		{Subsystem: "SS1", Discipline: "Elec", TagNo: "007", Priority: "1"},
	}}, exportDay)
	require.NoError(t, w.Write(context.Background(), sheet))

	sheets, rows := readWorkbook(t, filepath.Join(dir, "SAPRA_Hold_Point_Details_2024-03-09.xlsx"))
	assert.Equal(t, []string{"Hold_Point_Details"}, sheets)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "SS1", "Elec", "007", "N/A", "1", "N/A", "N/A"}, rows[1])
}

func TestXLSXWriter_NothingToExport(t *testing.T) {
	dir := t.TempDir()
	w := NewXLSXWriter(dir, nil)

	err := w.Write(context.Background(), TableSheet(nil, model.AllSystems(), exportDay))
	assert.ErrorIs(t, err, common.ErrNothingToExport)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestXLSXWriter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	sheet := Sheet{Name: "X", File: "x", Columns: []string{"A"}, Rows: [][]string{{"1"}}}
	assert.ErrorIs(t, NewXLSXWriter(dir, nil).Write(ctx, sheet), context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "x.xlsx"))
}

func TestWorksheetName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "SAPRA Report", want: "SAPRA Report"},
		{name: "forbidden chars", in: "A/B:C[1]?", want: "A_B_C_1__"},
		{name: "blank", in: "  ", want: "Sheet1"},
		{name: "too long", in: strings.Repeat("x", 40), want: strings.Repeat("x", 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorksheetName(tt.in))
		})
	}
}
