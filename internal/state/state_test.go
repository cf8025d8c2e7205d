package state

import (
	"sync"
	"testing"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plantStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(engine.NewDataset(testutil.NewRowBuilder(t).WithFixture(testutil.FixturePlant).Build()))
}

func TestStore_Select(t *testing.T) {
	store := plantStore(t)

	initial := store.Current()
	assert.True(t, initial.Selection.IsAll())
	assert.Equal(t, 27, initial.Stats.TotalItems)
	assert.Len(t, initial.Table, 5)

	next := store.Select(model.SubsystemScope("SS1", "S1"))
	assert.Same(t, next, store.Current())
	assert.Equal(t, 14, next.Stats.TotalItems)
	assert.Len(t, next.Table, 2)

	assert.True(t, initial.Selection.IsAll(), "published snapshots are not mutated")
	assert.Equal(t, 27, initial.Stats.TotalItems)
}

func TestStore_SetSlots(t *testing.T) {
	store := plantStore(t)
	store.Select(model.SystemScope("S1"))

	store.SetItems([]model.DetailItem{{Subsystem: "SS1", Discipline: "Elec", TagNo: "T1", Status: "done"}})
	store.SetPunch([]model.PunchItem{{Subsystem: "SS2", Discipline: "Elec", TagNo: "P1"}})
	store.SetHold([]model.HoldPointItem{{Subsystem: "SS3", Discipline: "Piping", TagNo: "H1"}})

	cur := store.Current()
	assert.Len(t, cur.Items.Details, 1)
	assert.Len(t, cur.Items.Punch, 1)
	assert.Len(t, cur.Items.Hold, 1)
	assert.Equal(t, model.SystemScope("S1"), cur.Selection)

	store.SetPunch(nil)
	assert.Len(t, store.Current().Items.Details, 1, "other slots untouched")
	assert.Empty(t, store.Current().Items.Punch)
}

func TestStore_Drill(t *testing.T) {
	store := plantStore(t)
	store.SetItems([]model.DetailItem{
		{Subsystem: "SS1", Discipline: "Elec", TagNo: "T1", Status: "Done"},
		{Subsystem: "SS3", Discipline: "Piping", TagNo: "T2"},
	})
	store.SetHold([]model.HoldPointItem{{Subsystem: "SS3", Discipline: "Piping", TagNo: "H1"}})
	store.Select(model.SystemScope("S2"))

	res := store.Drill(engine.SummaryContext{Status: model.StatusOther}, model.DatasetItems)
	require.Len(t, res.Details, 1)
	assert.Equal(t, "T2", res.Details[0].TagNo)
	assert.Equal(t, "OTHER items in System: S2", res.Title)

	res = store.Drill(engine.SummaryContext{Status: model.StatusHold}, model.DatasetHold)
	assert.Len(t, res.Hold, 1)
}

func TestStore_ExportRowsBypassSuppression(t *testing.T) {
	rows := testutil.NewRowBuilder(t).WithRow("S1", "SS1", "Elec", 0, 0, 0, 0, 0).Build()
	store := NewStore(engine.NewDataset(rows))

	cur := store.Select(model.SystemScope("S1"))
	assert.Empty(t, cur.Table)
	assert.Len(t, cur.ExportRows(), 1)
}

func TestStore_SetDatasetKeepsSelection(t *testing.T) {
	store := plantStore(t)
	store.Select(model.SystemScope("S2"))
	store.SetHold([]model.HoldPointItem{{TagNo: "H1"}})

	cur := store.SetDataset(engine.NewDataset(testutil.NewRowBuilder(t).WithRow("S2", "SS3", "Mech", 3, 1, 0, 0, 0).Build()))
	assert.Equal(t, model.SystemScope("S2"), cur.Selection)
	assert.Equal(t, 3, cur.Stats.TotalItems)
	assert.Len(t, cur.Items.Hold, 1)
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	store := plantStore(t)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		store.SetItems([]model.DetailItem{{TagNo: "T1"}})
	}()
	go func() {
		defer wg.Done()
		store.SetPunch([]model.PunchItem{{TagNo: "P1"}})
	}()
	go func() {
		defer wg.Done()
		store.SetHold([]model.HoldPointItem{{TagNo: "H1"}})
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			store.Select(model.SystemScope("S1"))
			_ = store.Current().Stats
		}
	}()
	wg.Wait()

	cur := store.Current()
	assert.Len(t, cur.Items.Details, 1)
	assert.Len(t, cur.Items.Punch, 1)
	assert.Len(t, cur.Items.Hold, 1)
	assert.Equal(t, model.SystemScope("S1"), cur.Selection)
}
