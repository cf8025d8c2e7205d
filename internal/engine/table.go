package engine

import (
	"math"
	"strings"

	"github.com/Veraticus/sapra/internal/model"
)

const notAvailable = "N/A"

// TableRows returns the detail-table rows visible for a selection.
//
// Outside export mode a system or subsystem scope whose aggregate total is zero
// yields no rows, so the table does not show lines with nothing to do. Export
// mode always returns every row in scope.
func TableRows(sel model.Selection, h *model.Hierarchy, rows []model.RawRow, forExport bool) []model.TableRow {
	if !forExport && !sel.IsAll() && Aggregate(sel, h).IsEmpty() {
		return []model.TableRow{}
	}

	selected := rowsInScope(sel, h, rows)
	out := make([]model.TableRow, 0, len(selected))
	for _, row := range selected {
		out = append(out, toTableRow(row))
	}
	return out
}

// rowsInScope selects the raw rows belonging to a scope. Subsystem ids are
// compared exactly after trimming.
func rowsInScope(sel model.Selection, h *model.Hierarchy, rows []model.RawRow) []model.RawRow {
	if sel.IsAll() {
		return rows
	}

	var match func(subID string) bool
	switch sel.Kind {
	case model.ScopeSystem:
		system, ok := h.System(sel.ID)
		if !ok {
			return nil
		}
		ids := make(map[string]struct{}, len(system.Subsystems))
		for _, ref := range system.Subsystems {
			ids[ref.ID] = struct{}{}
		}
		match = func(subID string) bool {
			_, ok := ids[subID]
			return ok
		}
	default:
		match = func(subID string) bool { return subID == sel.ID }
	}

	var out []model.RawRow
	for _, row := range rows {
		if match(strings.TrimSpace(row.SubsystemID)) {
			out = append(out, row)
		}
	}
	return out
}

func toTableRow(row model.RawRow) model.TableRow {
	counters := row.Counters()
	return model.TableRow{
		System:        orNA(row.SystemID),
		SystemName:    orNA(row.SystemName),
		Subsystem:     orNA(row.SubsystemID),
		SubsystemName: orNA(row.SubsystemName),
		Discipline:    orNA(row.Discipline),
		TotalItems:    counters.Total,
		Completed:     counters.Done,
		Pending:       counters.Pending,
		Punch:         counters.Punch,
		HoldPoint:     counters.Hold,
		StatusPercent: Percent(counters.Done, counters.Total),
	}
}

// Percent returns round(100*part/total), rounding halves up, and 0 when total
// is not positive.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)/float64(total)*100 + 0.5))
}

func orNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notAvailable
	}
	return s
}
