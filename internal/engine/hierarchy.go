// Package engine implements the aggregation and view-filtering core of the
// progress dashboard: hierarchy construction, roll-ups, detail tables and
// drill-down resolution. Every function here is pure over its inputs.
package engine

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/sapra/internal/model"
)

const (
	unknownSystemName    = "Unknown System"
	unknownSubsystemName = "Unknown Subsystem"
)

// Dataset is the main feed after hierarchy construction: the lookup tables
// plus every raw row, retained for detail listings and exports.
type Dataset struct {
	Hierarchy *model.Hierarchy
	Rows      []model.RawRow
}

// NewDataset builds the hierarchy from rows and retains the rows alongside it.
func NewDataset(rows []model.RawRow) Dataset {
	retained := make([]model.RawRow, len(rows))
	copy(retained, rows)

	return Dataset{
		Hierarchy: BuildHierarchy(retained),
		Rows:      retained,
	}
}

// BuildHierarchy builds the System→Subsystems and Subsystem→Disciplines lookup
// tables from main-feed rows in source order.
//
// Rows missing a system id, subsystem id or discipline are skipped. A subsystem
// that appears under more than one system stays with the first system it was
// seen under; it is still listed under every system that referenced it.
func BuildHierarchy(rows []model.RawRow) *model.Hierarchy {
	h := model.NewHierarchy()
	skipped := 0

	for _, row := range rows {
		systemID := strings.TrimSpace(row.SystemID)
		subID := strings.TrimSpace(row.SubsystemID)
		discipline := strings.TrimSpace(row.Discipline)
		if systemID == "" || subID == "" || discipline == "" {
			skipped++
			continue
		}

		systemName := nameOr(row.SystemName, unknownSystemName)
		subName := nameOr(row.SubsystemName, unknownSubsystemName)

		system := h.EnsureSystem(systemID, systemName)
		if !system.HasSubsystem(subID) {
			system.Subsystems = append(system.Subsystems, model.SubsystemRef{ID: subID, Name: subName})
		}

		sub := h.EnsureSubsystem(subID, subName, systemID)
		if sub.SystemID != systemID {
			slog.Debug("subsystem listed under a second system, keeping first owner",
				"subsystem", subID,
				"owner", sub.SystemID,
				"other", systemID)
		}
		sub.SetDiscipline(discipline, row.Counters())
	}

	systems, subsystems := h.Len()
	slog.Debug("built hierarchy",
		"rows", len(rows),
		"skipped", skipped,
		"systems", systems,
		"subsystems", subsystems)

	return h
}

// nameOr trims a display name, falling back when it is absent.
func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return strings.TrimSpace(name)
}
