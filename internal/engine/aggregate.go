package engine

import "github.com/Veraticus/sapra/internal/model"

// Aggregate computes the roll-up statistics for a selection scope.
// Unknown system or subsystem ids yield zero stats. Remaining is derived once
// from the summed counters rather than summed from per-discipline remainders.
func Aggregate(sel model.Selection, h *model.Hierarchy) model.AggregatedStats {
	var stats model.AggregatedStats

	switch {
	case sel.IsAll():
		stats = sumAll(h)
	case sel.Kind == model.ScopeSystem:
		stats = sumSystem(sel.ID, h)
	default:
		stats = sumSubsystem(sel.ID, h)
	}

	return stats.WithRemaining()
}

func sumAll(h *model.Hierarchy) model.AggregatedStats {
	var stats model.AggregatedStats
	for _, system := range h.Systems() {
		stats = stats.Add(sumSystem(system.ID, h))
	}
	return stats
}

func sumSystem(id string, h *model.Hierarchy) model.AggregatedStats {
	var stats model.AggregatedStats
	system, ok := h.System(id)
	if !ok {
		return stats
	}
	for _, ref := range system.Subsystems {
		stats = stats.Add(sumSubsystem(ref.ID, h))
	}
	return stats
}

func sumSubsystem(id string, h *model.Hierarchy) model.AggregatedStats {
	var stats model.AggregatedStats
	sub, ok := h.Subsystem(id)
	if !ok {
		return stats
	}
	for _, d := range sub.Disciplines() {
		stats = stats.AddCounters(d.Counters)
	}
	return stats
}
