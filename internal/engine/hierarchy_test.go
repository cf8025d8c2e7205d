package engine

import (
	"testing"

	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHierarchy(t *testing.T) {
	rows := testutil.NewRowBuilder(t).WithFixture(testutil.FixturePlant).Build()

	h := BuildHierarchy(rows)

	systems := h.Systems()
	require.Len(t, systems, 2)
	assert.Equal(t, "S1", systems[0].ID)
	assert.Equal(t, "Power", systems[0].Name)
	assert.Equal(t, []string{"SS1", "SS2"}, systems[0].SubsystemIDs())
	assert.Equal(t, "S2", systems[1].ID)
	assert.Equal(t, []string{"SS3"}, systems[1].SubsystemIDs())

	sub, ok := h.Subsystem("SS1")
	require.True(t, ok)
	assert.Equal(t, "S1", sub.SystemID)
	assert.Equal(t, "SS1 - Switchgear", sub.Title)

	disciplines := sub.Disciplines()
	require.Len(t, disciplines, 2)
	assert.Equal(t, "Elec", disciplines[0].Name)
	assert.Equal(t, model.DisciplineCounters{Total: 10, Done: 6, Pending: 2, Punch: 1}, disciplines[0].Counters)
	assert.Equal(t, "Inst", disciplines[1].Name)
}

func TestBuildHierarchy_SkipsRowsMissingKeys(t *testing.T) {
	tests := []struct {
		name string
		row  model.RawRow
	}{
		{name: "missing system", row: model.RawRow{SubsystemID: "SS1", Discipline: "Elec"}},
		{name: "missing subsystem", row: model.RawRow{SystemID: "S1", Discipline: "Elec"}},
		{name: "missing discipline", row: model.RawRow{SystemID: "S1", SubsystemID: "SS1"}},
		{name: "whitespace only keys", row: model.RawRow{SystemID: "  ", SubsystemID: "SS1", Discipline: "Elec"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := BuildHierarchy([]model.RawRow{tt.row})
			systems, subsystems := h.Len()
			assert.Zero(t, systems)
			assert.Zero(t, subsystems)
		})
	}
}

func TestBuildHierarchy_TrimsAndDefaultsNames(t *testing.T) {
	h := BuildHierarchy([]model.RawRow{
		{SystemID: " S1 ", SubsystemID: " SS1 ", Discipline: " Elec ", TotalItem: "3"},
	})

	system, ok := h.System("S1")
	require.True(t, ok)
	assert.Equal(t, "Unknown System", system.Name)

	sub, ok := h.Subsystem("SS1")
	require.True(t, ok)
	assert.Equal(t, "Unknown Subsystem", sub.Name)

	counters, ok := sub.Discipline("Elec")
	require.True(t, ok)
	assert.Equal(t, 3, counters.Total)
}

func TestBuildHierarchy_LaterRowOverwritesDiscipline(t *testing.T) {
	rows := testutil.NewRowBuilder(t).
		WithRow("S1", "SS1", "Elec", 10, 1, 1, 0, 0).
		WithRow("S1", "SS1", "Inst", 2, 0, 0, 0, 0).
		WithRow("S1", "SS1", "Elec", 20, 5, 5, 0, 0).
		Build()

	sub, ok := BuildHierarchy(rows).Subsystem("SS1")
	require.True(t, ok)

	disciplines := sub.Disciplines()
	require.Len(t, disciplines, 2)
	assert.Equal(t, "Elec", disciplines[0].Name)
	assert.Equal(t, 20, disciplines[0].Counters.Total)
	assert.Equal(t, "Inst", disciplines[1].Name)
}

func TestBuildHierarchy_SubsystemUnderTwoSystems(t *testing.T) {
	rows := testutil.NewRowBuilder(t).
		WithRow("S1", "SS1", "Elec", 10, 6, 2, 1, 0).
		WithRow("S2", "SS1", "Inst", 4, 0, 0, 0, 0).
		Build()

	h := BuildHierarchy(rows)

	sub, ok := h.Subsystem("SS1")
	require.True(t, ok)
	assert.Equal(t, "S1", sub.SystemID, "first system keeps ownership")

	s2, ok := h.System("S2")
	require.True(t, ok)
	assert.True(t, s2.HasSubsystem("SS1"))
	assert.Len(t, sub.Disciplines(), 2)
}

func TestNewDataset_RetainsAllRows(t *testing.T) {
	rows := testutil.NewRowBuilder(t).
		WithRow("S1", "SS1", "Elec", 1, 0, 0, 0, 0).
		WithRawRow(model.RawRow{SystemID: "S1"}).
		Build()

	ds := NewDataset(rows)
	assert.Len(t, ds.Rows, 2)

	rows[0].SystemID = "changed"
	assert.Equal(t, "S1", ds.Rows[0].SystemID)
}
