package cli

import (
	"strings"
	"testing"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func plant(t *testing.T) engine.Dataset {
	t.Helper()
	return engine.NewDataset(testutil.NewRowBuilder(t).WithFixture(testutil.FixturePlant).Build())
}

func TestSummaryCards(t *testing.T) {
	ds := plant(t)
	cards := SummaryCards(engine.Aggregate(model.AllSystems(), ds.Hierarchy))

	assert.Equal(t, []Card{
		{Title: "Total Items", Value: 27, Status: model.StatusTotal},
		{Title: "Completed", Value: 14, Detail: "52%", Status: model.StatusDone},
		{Title: "Pending", Value: 6, Detail: "22%", Status: model.StatusPending},
		{Title: "Remaining", Value: 7, Detail: "26%", Status: model.StatusOther},
		{Title: "Punch", Value: 3, Status: model.StatusPunch},
		{Title: "Hold Point", Value: 3, Status: model.StatusHold},
	}, cards)
}

func TestSummaryCards_EmptyScope(t *testing.T) {
	cards := SummaryCards(model.AggregatedStats{})
	for _, c := range cards {
		assert.Zero(t, c.Value, c.Title)
		if c.Detail != "" {
			assert.Equal(t, "0%", c.Detail, c.Title)
		}
	}
}

func TestSummary(t *testing.T) {
	ds := plant(t)
	out := Summary("Dashboard", engine.Aggregate(model.AllSystems(), ds.Hierarchy))

	for _, want := range []string{"Dashboard", "Total Items", "27", "Hold Point", "52%"} {
		assert.Contains(t, out, want)
	}
}

func TestDetailTable(t *testing.T) {
	ds := plant(t)

	sel := model.SubsystemScope("SS1", "S1")
	out := DetailTable(engine.TableRows(sel, ds.Hierarchy, ds.Rows, false), sel)
	for _, want := range []string{"SubSystem", "ProgressPercent", "Switchgear", "Elec", "Inst", "60%", "25%"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Cabling")

	empty := model.SystemScope("S9")
	assert.Contains(t, DetailTable(nil, empty), "No data for System: S9")
}

func TestDrill(t *testing.T) {
	tests := []struct {
		name    string
		res     engine.Result
		want    []string
		notWant []string
	}{
		{
			name: "items",
			res: engine.Result{
				Dataset: model.DatasetItems,
				Title:   "DONE items in All Systems",
				Details: []model.DetailItem{{Subsystem: "SS1", Discipline: "Elec", TagNo: "T-100", Status: "Done"}},
			},
			want: []string{"DONE items in All Systems (1)", "TagNo", "T-100", "Status"},
		},
		{
			name: "punch shows N/A type code",
			res: engine.Result{
				Dataset: model.DatasetPunch,
				Title:   "PUNCH items in System: S1",
				Punch:   []model.PunchItem{{Subsystem: "SS1", TagNo: "P-1", Category: "A"}},
			},
			want: []string{"(1)", "PunchCategory", "P-1", "N/A"},
		},
		{
			name:    "empty",
			res:     engine.Result{Dataset: model.DatasetHold, Title: "HOLD items in All Systems"},
			want:    []string{"HOLD items in All Systems (0)", "No matching items"},
			notWant: []string{"HPPriority"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Drill(tt.res)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestBreakdownAndDisciplines(t *testing.T) {
	ds := plant(t)

	out := Breakdown(engine.ChildBreakdown(model.AllSystems(), ds.Hierarchy))
	assert.Contains(t, out, "S1 - Power")
	assert.Contains(t, out, "S2 - Water")
	assert.Contains(t, out, "63%")

	sel := model.SubsystemScope("SS3", "S2")
	out = Disciplines(engine.DisciplineBreakdown(sel, ds.Hierarchy))
	assert.Contains(t, out, "Piping")
	assert.Contains(t, out, "Mech")
}

func TestSeries(t *testing.T) {
	out := Series("Overview", []engine.Slice{
		{Label: engine.LabelCompleted, Value: 14},
		{Label: engine.LabelPending, Value: 6},
		{Label: engine.LabelRemaining, Value: 7},
	}, 27)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Overview")
	assert.Contains(t, lines[1], "Completed")
	assert.Contains(t, lines[1], strings.Repeat("█", 14))
	assert.Contains(t, lines[1], "14 (52%)")
	assert.Contains(t, lines[2], "6 (22%)")

	assert.Contains(t, Series("Issues", nil, 20), "nothing to show")
}

func TestSeries_SmallSlicesStillVisible(t *testing.T) {
	out := Series("Issues", []engine.Slice{
		{Label: engine.LabelPunch, Value: 1},
		{Label: engine.LabelHoldPoint, Value: 1000},
	}, 10)
	assert.Contains(t, out, "█ 1 (0%)")
}

func TestTree(t *testing.T) {
	ds := plant(t)
	tree := engine.NavigationTree(ds.Hierarchy)

	out := Tree(tree)
	for _, want := range []string{"All Systems", "S1 - Power", "SS2 - Cabling", "SS3 - Pumps"} {
		assert.Contains(t, out, want)
	}

	filtered := Tree(tree.Filter("pump"))
	assert.Contains(t, filtered, "SS3 - Pumps")
	assert.NotContains(t, filtered, "Cabling")

	assert.Empty(t, Tree(engine.Tree{}))
}
