package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportDay = time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)

func TestReportFileName(t *testing.T) {
	tests := []struct {
		name string
		sel  model.Selection
		want string
	}{
		{name: "all", sel: model.AllSystems(), want: "SAPRA_Report_AllSystems_2024-03-09"},
		{name: "system", sel: model.SystemScope("S-1"), want: "SAPRA_Report_System_S_1_2024-03-09"},
		{name: "subsystem", sel: model.SubsystemScope("SS 01/A", "S-1"), want: "SAPRA_Report_SubSystem_SS_01_A_2024-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReportFileName(tt.sel, exportDay))
		})
	}
}

func TestDetailFileName(t *testing.T) {
	assert.Equal(t, "SAPRA_Item_Details_2024-03-09", DetailFileName(model.DatasetItems, exportDay))
	assert.Equal(t, "SAPRA_Punch_Details_2024-03-09", DetailFileName(model.DatasetPunch, exportDay))
	assert.Equal(t, "SAPRA_Hold_Point_Details_2024-03-09", DetailFileName(model.DatasetHold, exportDay))
}

func TestTableSheet(t *testing.T) {
	rows := []model.TableRow{{
		System: "S1", SystemName: "Power", Subsystem: "SS1", SubsystemName: "Switchgear", Discipline: "Elec",
		TotalItems: 10, Completed: 6, Pending: 2, Punch: 1, HoldPoint: 0, StatusPercent: 60,
	}}

	sheet := TableSheet(rows, model.AllSystems(), exportDay)
	assert.Equal(t, ReportSheetName, sheet.Name)
	assert.Equal(t, "SAPRA_Report_AllSystems_2024-03-09", sheet.File)
	require.Len(t, sheet.Columns, 11)
	assert.Equal(t, "ProgressPercent", sheet.Columns[10])
	assert.Equal(t, [][]string{{"S1", "Power", "SS1", "Switchgear", "Elec", "10", "6", "2", "1", "0", "60%"}}, sheet.Rows)
}

func TestItemSheet(t *testing.T) {
	tests := []struct {
		name     string
		res      engine.Result
		wantName string
		wantRows [][]string
	}{
		{
			name: "items",
			res: engine.Result{Dataset: model.DatasetItems, Details: []model.DetailItem{
				{Subsystem: "SS1", Discipline: "Elec", TagNo: "T1", Status: "Done"},
				{Subsystem: "SS1", Discipline: "Elec", TagNo: "T2"},
			}},
			wantName: "Item_Details",
			wantRows: [][]string{
				{"1", "SS1", "Elec", "T1", "", "", "Done"},
				{"2", "SS1", "Elec", "T2", "", "", ""},
			},
		},
		{
			name: "punch",
			res: engine.Result{Dataset: model.DatasetPunch, Punch: []model.PunchItem{
				{Subsystem: "SS1", Discipline: "Elec", TagNo: "P1", Category: "A", Description: "loose gland"},
			}},
			wantName: "Punch_Details",
			wantRows: [][]string{{"1", "SS1", "Elec", "P1", "N/A", "A", "loose gland"}},
		},
		{
			name: "hold",
			res: engine.Result{Dataset: model.DatasetHold, Hold: []model.HoldPointItem{
				{Subsystem: "SS1", Discipline: "Elec", TagNo: "H1", TypeCode: "X", Location: "Bay 2"},
			}},
			wantName: "Hold_Point_Details",
			wantRows: [][]string{{"1", "SS1", "Elec", "H1", "X", "N/A", "N/A", "Bay 2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := ItemSheet(tt.res, exportDay)
			assert.Equal(t, tt.wantName, sheet.Name)
			assert.Equal(t, "#", sheet.Columns[0])
			assert.Equal(t, tt.wantRows, sheet.Rows)
			for _, row := range sheet.Rows {
				assert.Len(t, row, len(sheet.Columns))
			}
		})
	}
}

func TestCSVWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	sheet := TableSheet([]model.TableRow{{System: "S1", Discipline: "Elec", TotalItems: 4, Completed: 1, StatusPercent: 25}},
		model.SystemScope("S1"), exportDay)
	require.NoError(t, w.Write(context.Background(), sheet))

	path := filepath.Join(dir, "SAPRA_Report_System_S1_2024-03-09.csv")
	assert.Equal(t, path, w.Path(sheet))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, sheet.Columns, records[0])
	assert.Equal(t, "25%", records[1][10])
}

func TestCSVWriter_NothingToExport(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	sheet := TableSheet(nil, model.AllSystems(), exportDay)
	err := w.Write(context.Background(), sheet)
	assert.ErrorIs(t, err, common.ErrNothingToExport)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTSV(t *testing.T) {
	sheet := ItemSheet(engine.Result{Dataset: model.DatasetItems, Details: []model.DetailItem{
		{Subsystem: "SS1", Discipline: "Elec", TagNo: "T1", Status: "Done"},
	}}, exportDay)

	got, err := TSV(sheet)
	require.NoError(t, err)
	assert.Equal(t, "#\tSubsystem\tDiscipline\tTagNo\tTypeCode\tDescription\tStatus\n1\tSS1\tElec\tT1\t\t\tDone\n", got)

	_, err = TSV(Sheet{})
	assert.ErrorIs(t, err, common.ErrNothingToExport)
}

func TestMarkdown(t *testing.T) {
	sheet := Sheet{
		Columns: []string{"TagNo", "Description"},
		Rows: [][]string{
			{"T1", "Valve | actuator"},
			{"T2", "two\nlines"},
		},
	}

	want := "| TagNo | Description |\n" +
		"| --- | --- |\n" +
		"| T1 | Valve \\| actuator |\n" +
		"| T2 | two lines |\n"
	assert.Equal(t, want, Markdown(sheet))
	assert.Empty(t, Markdown(Sheet{}))
}
