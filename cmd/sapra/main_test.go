package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/config"
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/feed"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/sheets"
	"github.com/Veraticus/sapra/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/oauth2"
)

var testDay = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func testItems() []model.DetailItem {
	return []model.DetailItem{
		{Subsystem: "SS1", Discipline: "Elec", TagNo: "T1", Status: "Done"},
		{Subsystem: "SS1", Discipline: "Elec", TagNo: "T5", Status: "Pending"},
		{Subsystem: "SS1", Discipline: "Inst", TagNo: "T2", Status: "pending"},
		{Subsystem: "SS3", Discipline: "Piping", TagNo: "T3"},
	}
}

// feedConfig writes the main and items feeds to a temp dir and points viper at
// them. The punch and hold feeds point at files that do not exist.
func feedConfig(t *testing.T) *viper.Viper {
	t.Helper()
	dir := t.TempDir()

	mainPath := filepath.Join(dir, "DATA.CSV")
	rows := testutil.NewRowBuilder(t).WithFixture(testutil.FixturePlant).Build()
	require.NoError(t, os.WriteFile(mainPath, []byte(testutil.MainCSV(t, rows)), 0o600))

	itemsPath := filepath.Join(dir, "ITEMS.CSV")
	require.NoError(t, os.WriteFile(itemsPath, []byte(testutil.ItemsCSV(t, testItems())), 0o600))

	v := viper.New()
	config.SetDefaults(v)
	v.Set("feeds.main", mainPath)
	v.Set("feeds.items", itemsPath)
	v.Set("feeds.punch", filepath.Join(dir, "PUNCH.CSV"))
	v.Set("feeds.hold", filepath.Join(dir, "HOLD_POINT.CSV"))
	v.Set("export.dir", dir)
	return v
}

func loadFixture(t *testing.T) (*feed.Result, *viper.Viper) {
	t.Helper()
	v := feedConfig(t)
	res, err := loadAll(context.Background(), v, io.Discard)
	require.NoError(t, err)
	return res, v
}

func TestLoadAll(t *testing.T) {
	var progress bytes.Buffer
	res, err := loadAll(context.Background(), feedConfig(t), &progress)
	require.NoError(t, err)

	systems, subsystems := res.Dataset.Hierarchy.Len()
	assert.Equal(t, 2, systems)
	assert.Equal(t, 3, subsystems)
	assert.Len(t, res.Items.Details, 4)
	assert.Equal(t, []model.Dataset{model.DatasetPunch, model.DatasetHold}, res.Failed)
	assert.Contains(t, progress.String(), "could not be loaded")
}

func TestLoadAll_MissingMainFeed(t *testing.T) {
	v := feedConfig(t)
	v.Set("feeds.main", filepath.Join(t.TempDir(), "missing.csv"))

	_, err := loadAll(context.Background(), v, io.Discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMainFeed)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestScopeFlags_Selection(t *testing.T) {
	res, _ := loadFixture(t)
	h := res.Dataset.Hierarchy

	tests := []struct {
		name    string
		flags   scopeFlags
		want    model.Selection
		wantErr bool
	}{
		{name: "no flags", want: model.AllSystems()},
		{name: "system", flags: scopeFlags{system: "S2"}, want: model.SystemScope("S2")},
		{name: "subsystem", flags: scopeFlags{subsystem: "SS1"}, want: model.SubsystemScope("SS1", "S1")},
		{name: "subsystem with its system", flags: scopeFlags{system: "S1", subsystem: " SS2 "}, want: model.SubsystemScope("SS2", "S1")},
		{name: "subsystem of another system", flags: scopeFlags{system: "S2", subsystem: "SS1"}, wantErr: true},
		{name: "unknown system", flags: scopeFlags{system: "S9"}, wantErr: true},
		{name: "unknown subsystem", flags: scopeFlags{subsystem: "SS9"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.selection(h)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrUnknownScope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDrillContext(t *testing.T) {
	ctx, err := drillContext(model.StatusDone, "")
	require.NoError(t, err)
	assert.Equal(t, engine.SummaryContext{Status: model.StatusDone}, ctx)

	ctx, err = drillContext(model.StatusPunch, "SS-01 / Piping")
	require.NoError(t, err)
	assert.Equal(t, engine.TableContext{
		Row:    model.TableRow{Subsystem: "SS-01", Discipline: "Piping"},
		Status: model.StatusPunch,
	}, ctx)

	ctx, err = drillContext(model.StatusHold, "A/B-02/Elec")
	require.NoError(t, err)
	assert.Equal(t, engine.TableContext{
		Row:    model.TableRow{Subsystem: "A/B-02", Discipline: "Elec"},
		Status: model.StatusHold,
	}, ctx)

	for _, bad := range []string{"SS-01", "/Piping", "SS-01/", "A/B/"} {
		_, err := drillContext(model.StatusPunch, bad)
		assert.Error(t, err, bad)
	}
}

func TestNewExporter(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
	} {
		t.Setenv(key, "")
	}
	v := feedConfig(t)
	ctx := context.Background()

	w, err := newExporter(ctx, v, "")
	require.NoError(t, err)
	assert.Nil(t, w)

	w, err = newExporter(ctx, v, "CSV")
	require.NoError(t, err)
	assert.IsType(t, &export.CSVWriter{}, w)

	w, err = newExporter(ctx, v, " XLSX ")
	require.NoError(t, err)
	assert.IsType(t, &export.XLSXWriter{}, w)

	_, err = newExporter(ctx, v, "sheets")
	assert.ErrorIs(t, err, common.ErrInvalidConfig, "no credentials configured")

	_, err = newExporter(ctx, v, "pdf")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestRunSummary(t *testing.T) {
	res, _ := loadFixture(t)

	var out bytes.Buffer
	require.NoError(t, runSummary(context.Background(), &out, res, summaryOptions{}))
	assert.Contains(t, out.String(), "Dashboard")
	assert.Contains(t, out.String(), "Total Items")
	assert.Contains(t, out.String(), "S1 - Power")
	assert.Contains(t, out.String(), "S2 - Water")

	out.Reset()
	require.NoError(t, runSummary(context.Background(), &out, res, summaryOptions{scope: scopeFlags{subsystem: "SS3"}}))
	assert.Contains(t, out.String(), "Piping")
	assert.NotContains(t, out.String(), "S1 - Power")

	err := runSummary(context.Background(), &out, res, summaryOptions{scope: scopeFlags{system: "nope"}})
	assert.ErrorIs(t, err, common.ErrUnknownScope)
}

func TestRunSummary_Markdown(t *testing.T) {
	res, _ := loadFixture(t)

	var out bytes.Buffer
	opts := summaryOptions{scope: scopeFlags{system: "S2"}, markdown: true, raw: true}
	require.NoError(t, runSummary(context.Background(), &out, res, opts))
	assert.True(t, strings.HasPrefix(out.String(), "# System: S2 - Water\n"))
	assert.Contains(t, out.String(), "| SS3 - Pumps | 8 | 2 | 3 | 3 | 2 | 1 | 25% |")

	out.Reset()
	opts.raw = false
	require.NoError(t, runSummary(context.Background(), &out, res, opts))
	assert.Contains(t, out.String(), "SS3 - Pumps")
	assert.NotContains(t, out.String(), "| --- |")
}

func TestRunTable_Export(t *testing.T) {
	res, _ := loadFixture(t)
	w := sheets.NewMockWriter()

	var out bytes.Buffer
	err := runTable(context.Background(), &out, res, scopeFlags{system: "S2"}, w, testDay)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Piping")
	assert.Contains(t, out.String(), "Exported 2 rows")

	calls := w.GetWriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "SAPRA_Report_System_S2_2025-03-01", calls[0].Sheet.File)
	assert.Len(t, calls[0].Sheet.Rows, 2)
}

func TestRunTable_CSV(t *testing.T) {
	res, v := loadFixture(t)
	w, err := newExporter(context.Background(), v, exportCSV)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runTable(context.Background(), &out, res, scopeFlags{}, w, testDay))

	path := filepath.Join(v.GetString("export.dir"), "SAPRA_Report_AllSystems_2025-03-01.csv")
	assert.Contains(t, out.String(), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SS3,Pumps,Mech")
}

func TestRunTable_XLSX(t *testing.T) {
	res, v := loadFixture(t)
	w, err := newExporter(context.Background(), v, exportXLSX)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runTable(context.Background(), &out, res, scopeFlags{system: "S2"}, w, testDay))

	path := filepath.Join(v.GetString("export.dir"), "SAPRA_Report_System_S2_2025-03-01.xlsx")
	assert.Contains(t, out.String(), "Exported 2 rows to "+path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(export.ReportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "System", rows[0][0])
	assert.Contains(t, rows, []string{"S2", "Water", "SS3", "Pumps", "Piping", "8", "2", "3", "2", "1", "25%"})
	assert.Contains(t, rows, []string{"S2", "Water", "SS3", "Pumps", "Mech", "0", "0", "0", "0", "0", "0%"})
}

func TestRunTable_ExportFailure(t *testing.T) {
	res, _ := loadFixture(t)
	w := sheets.NewMockWriter()
	w.SetWriteError(errors.New("quota exceeded"))

	err := runTable(context.Background(), io.Discard, res, scopeFlags{}, w, testDay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestRunDrill(t *testing.T) {
	res, _ := loadFixture(t)

	tests := []struct {
		name      string
		opts      drillOptions
		wantTitle string
		wantTags  []string
		wantErr   bool
	}{
		{
			name:      "pending in a system",
			opts:      drillOptions{status: "pending", scope: scopeFlags{system: "S1"}},
			wantTitle: "PENDING items in System: S1 (2)",
			wantTags:  []string{"T5", "T2"},
		},
		{
			name:      "remaining alias",
			opts:      drillOptions{status: "remaining"},
			wantTitle: "OTHER items (All Systems) (1)",
			wantTags:  []string{"T3"},
		},
		{
			name:      "table row ignores scope",
			opts:      drillOptions{status: "total", row: "ss1/ELEC", scope: scopeFlags{system: "S2"}},
			wantTitle: "TOTAL items in ss1 / ELEC (2)",
			wantTags:  []string{"T1", "T5"},
		},
		{
			name:      "punch list not loaded",
			opts:      drillOptions{status: "punch"},
			wantTitle: "PUNCH items (All Systems) (0)",
		},
		{name: "bad status", opts: drillOptions{status: "later"}, wantErr: true},
		{name: "bad dataset", opts: drillOptions{status: "done", dataset: "tickets"}, wantErr: true},
		{name: "bad row", opts: drillOptions{status: "done", row: "SS1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runDrill(context.Background(), &out, res, tt.opts, nil, testDay)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantTitle)
			for _, tag := range tt.wantTags {
				assert.Contains(t, out.String(), tag)
			}
		})
	}
}

func TestRunDrill_CopyAndExport(t *testing.T) {
	res, _ := loadFixture(t)

	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	w := sheets.NewMockWriter()
	var out bytes.Buffer
	opts := drillOptions{status: "done", copy: true}
	require.NoError(t, runDrill(context.Background(), &out, res, opts, w, testDay))

	assert.Equal(t, "#\tSubsystem\tDiscipline\tTagNo\tTypeCode\tDescription\tStatus\n1\tSS1\tElec\tT1\t\t\tDone\n", copied)
	assert.Contains(t, out.String(), "Copied 1 rows to the clipboard")

	calls := w.GetWriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "SAPRA_Item_Details_2025-03-01", calls[0].Sheet.File)
}

func TestRunDrill_EmptyExport(t *testing.T) {
	res, v := loadFixture(t)
	w, err := newExporter(context.Background(), v, exportCSV)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runDrill(context.Background(), &out, res, drillOptions{status: "hold", copy: true}, w, testDay))
	assert.Contains(t, out.String(), "Nothing to copy")
	assert.Contains(t, out.String(), "Nothing to export")
	assert.NoFileExists(t, filepath.Join(v.GetString("export.dir"), "SAPRA_Hold_Point_Details_2025-03-01.csv"))
}

func TestRunSystems(t *testing.T) {
	res, _ := loadFixture(t)

	tests := []struct {
		search  string
		want    []string
		notWant []string
	}{
		{search: "", want: []string{"All Systems", "S1 - Power", "SS3 - Pumps"}},
		{search: "pump", want: []string{"S2 - Water", "SS3 - Pumps"}, notWant: []string{"S1 - Power"}},
		{search: "boiler", want: []string{`No systems match "boiler"`}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runSystems(context.Background(), &out, res.Dataset, tt.search))
			for _, s := range tt.want {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestRunAuthStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sapra", "sheets-token.json")

	var out bytes.Buffer
	require.NoError(t, runAuthStatus(&out, path))
	assert.Contains(t, out.String(), "Not authenticated")

	require.NoError(t, sheets.SaveToken(path, &oauth2.Token{AccessToken: "a", RefreshToken: "r"}))
	out.Reset()
	require.NoError(t, runAuthStatus(&out, path))
	assert.Contains(t, out.String(), "Authenticated")

	require.NoError(t, sheets.SaveToken(path, &oauth2.Token{AccessToken: "a"}))
	out.Reset()
	require.NoError(t, runAuthStatus(&out, path))
	assert.Contains(t, out.String(), "no refresh token")
}

func TestTokenPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	path, err := tokenPath()
	require.NoError(t, err)
	assert.Equal(t, "/cfg/sapra/sheets-token.json", path)
}
