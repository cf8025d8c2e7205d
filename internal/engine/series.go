package engine

import (
	"fmt"

	"github.com/Veraticus/sapra/internal/model"
)

// Slice is one labelled value of a chart series.
type Slice struct {
	Label string
	Value int
}

// Slice labels used by the overview and issue series.
const (
	LabelCompleted = "Completed"
	LabelPending   = "Pending"
	LabelRemaining = "Remaining"
	LabelPunch     = "Punch"
	LabelHoldPoint = "Hold Point"
)

// OverviewSeries splits the scope into completed, pending and remaining
// items. Zero-valued slices are dropped.
func OverviewSeries(stats model.AggregatedStats) []Slice {
	return nonZero(
		Slice{Label: LabelCompleted, Value: stats.Done},
		Slice{Label: LabelPending, Value: stats.Pending},
		Slice{Label: LabelRemaining, Value: stats.Remaining},
	)
}

// IssueSeries splits the open issues into punch and hold point counts.
// Zero-valued slices are dropped.
func IssueSeries(stats model.AggregatedStats) []Slice {
	return nonZero(
		Slice{Label: LabelPunch, Value: stats.Punch},
		Slice{Label: LabelHoldPoint, Value: stats.Hold},
	)
}

// DisciplineSeries splits one discipline's counters like OverviewSeries.
func DisciplineSeries(c model.DisciplineCounters) []Slice {
	return nonZero(
		Slice{Label: LabelCompleted, Value: c.Done},
		Slice{Label: LabelPending, Value: c.Pending},
		Slice{Label: LabelRemaining, Value: c.Remaining()},
	)
}

func nonZero(slices ...Slice) []Slice {
	out := make([]Slice, 0, len(slices))
	for _, s := range slices {
		if s.Value > 0 {
			out = append(out, s)
		}
	}
	return out
}

// DisciplineBreakdown returns the per-discipline counters of a subsystem
// selection in first-seen order. Other scopes and unknown subsystems yield nil.
func DisciplineBreakdown(sel model.Selection, h *model.Hierarchy) []model.DisciplineEntry {
	if sel.IsAll() || sel.Kind != model.ScopeSubsystem {
		return nil
	}
	sub, ok := h.Subsystem(sel.ID)
	if !ok {
		return nil
	}
	return sub.Disciplines()
}

// Breakdown is the aggregate of one child of the selected scope.
type Breakdown struct {
	Selection model.Selection
	Label     string
	Stats     model.AggregatedStats
}

// ChildBreakdown aggregates the children of the selected scope: every system
// for All, every subsystem for a system, and the subsystem itself for a
// subsystem. Children with no items are dropped.
func ChildBreakdown(sel model.Selection, h *model.Hierarchy) []Breakdown {
	var out []Breakdown

	switch {
	case sel.IsAll():
		for _, system := range h.Systems() {
			child := model.SystemScope(system.ID)
			out = append(out, Breakdown{
				Selection: child,
				Label:     fmt.Sprintf("%s - %s", system.ID, system.Name),
				Stats:     Aggregate(child, h),
			})
		}
	case sel.Kind == model.ScopeSystem:
		system, ok := h.System(sel.ID)
		if !ok {
			return nil
		}
		for _, ref := range system.Subsystems {
			name := notAvailable
			if sub, ok := h.Subsystem(ref.ID); ok {
				name = sub.Name
			}
			child := model.SubsystemScope(ref.ID, system.ID)
			out = append(out, Breakdown{
				Selection: child,
				Label:     fmt.Sprintf("%s - %s", ref.ID, name),
				Stats:     Aggregate(child, h),
			})
		}
	default:
		sub, ok := h.Subsystem(sel.ID)
		if !ok {
			return nil
		}
		out = append(out, Breakdown{
			Selection: sel,
			Label:     sub.Title,
			Stats:     Aggregate(sel, h),
		})
	}

	kept := out[:0]
	for _, b := range out {
		if !b.Stats.IsEmpty() {
			kept = append(kept, b)
		}
	}
	return kept
}

// ScopeTitle returns the dashboard heading for a selection.
func ScopeTitle(sel model.Selection, h *model.Hierarchy) string {
	switch {
	case sel.IsAll():
		return "Dashboard"
	case sel.Kind == model.ScopeSystem:
		name := sel.ID
		if system, ok := h.System(sel.ID); ok {
			name = system.Name
		}
		return fmt.Sprintf("System: %s - %s", sel.ID, name)
	default:
		if sel.ParentID == "" {
			return "Dashboard"
		}
		systemName := sel.ParentID
		if system, ok := h.System(sel.ParentID); ok {
			systemName = system.Name
		}
		subName := sel.ID
		if sub, ok := h.Subsystem(sel.ID); ok {
			subName = sub.Name
		}
		return fmt.Sprintf("System: %s - %s / Subsystem: %s - %s", sel.ParentID, systemName, sel.ID, subName)
	}
}
