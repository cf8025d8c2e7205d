// Package testutil provides shared fixtures for dashboard tests: a fluent
// builder for main-feed rows, a small predefined plant, and CSV encoders that
// turn fixtures back into feed bodies.
//
// Example:
//
//	rows := testutil.NewRowBuilder(t).
//		WithFixture(testutil.FixturePlant).
//		WithRow("S9", "SS9", "Elec", 1, 0, 0, 0, 0).
//		Build()
package testutil

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/Veraticus/sapra/internal/model"
)

// Counts is a compact form of the five main-feed counters.
type Counts struct {
	Total, Done, Pending, Punch, Hold int
}

// Fixture is a predefined set of main-feed rows.
type Fixture struct {
	Name string
	Rows []model.RawRow
}

// RowBuilder accumulates main-feed rows in insertion order.
type RowBuilder struct {
	t    testing.TB
	rows []model.RawRow
}

// NewRowBuilder creates an empty builder bound to the test.
func NewRowBuilder(t testing.TB) *RowBuilder {
	t.Helper()
	return &RowBuilder{t: t}
}

// WithRow adds a row with generated names ("<id> Name").
func (b *RowBuilder) WithRow(system, subsystem, discipline string, total, done, pending, punch, hold int) *RowBuilder {
	b.t.Helper()
	return b.WithRawRow(Row(system, subsystem, discipline, Counts{total, done, pending, punch, hold}))
}

// WithRawRow adds a row exactly as given.
func (b *RowBuilder) WithRawRow(row model.RawRow) *RowBuilder {
	b.rows = append(b.rows, row)
	return b
}

// WithFixture adds every row of a fixture.
func (b *RowBuilder) WithFixture(f Fixture) *RowBuilder {
	b.t.Helper()
	if len(f.Rows) == 0 {
		b.t.Fatalf("fixture %q has no rows", f.Name)
	}
	b.rows = append(b.rows, f.Rows...)
	return b
}

// Build returns a copy of the accumulated rows.
func (b *RowBuilder) Build() []model.RawRow {
	out := make([]model.RawRow, len(b.rows))
	copy(out, b.rows)
	return out
}

// Row creates a main-feed row with generated names.
func Row(system, subsystem, discipline string, c Counts) model.RawRow {
	return model.RawRow{
		SystemID:      system,
		SystemName:    fmt.Sprintf("%s Name", system),
		SubsystemID:   subsystem,
		SubsystemName: fmt.Sprintf("%s Name", subsystem),
		Discipline:    discipline,
		TotalItem:     strconv.Itoa(c.Total),
		TotalDone:     strconv.Itoa(c.Done),
		TotalPending:  strconv.Itoa(c.Pending),
		TotalPunch:    strconv.Itoa(c.Punch),
		TotalHold:     strconv.Itoa(c.Hold),
	}
}

// FixturePlant is a two-system plant.
//
//	S1 Power  SS1 Switchgear  Elec   10 6 2 1 0
//	          SS1 Switchgear  Inst    4 1 1 0 2
//	          SS2 Cabling     Elec    5 5 0 0 0
//	S2 Water  SS3 Pumps       Piping  8 2 3 2 1
//	          SS3 Pumps       Mech    0 0 0 0 0
var FixturePlant = Fixture{
	Name: "Plant",
	Rows: []model.RawRow{
		named("S1", "Power", "SS1", "Switchgear", "Elec", Counts{10, 6, 2, 1, 0}),
		named("S1", "Power", "SS1", "Switchgear", "Inst", Counts{4, 1, 1, 0, 2}),
		named("S1", "Power", "SS2", "Cabling", "Elec", Counts{5, 5, 0, 0, 0}),
		named("S2", "Water", "SS3", "Pumps", "Piping", Counts{8, 2, 3, 2, 1}),
		named("S2", "Water", "SS3", "Pumps", "Mech", Counts{0, 0, 0, 0, 0}),
	},
}

func named(system, systemName, subsystem, subsystemName, discipline string, c Counts) model.RawRow {
	row := Row(system, subsystem, discipline, c)
	row.SystemName = systemName
	row.SubsystemName = subsystemName
	return row
}
