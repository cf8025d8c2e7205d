package model

// DisciplineCounters holds the progress counters for one (subsystem, discipline) pair.
type DisciplineCounters struct {
	Total   int
	Done    int
	Pending int
	Punch   int
	Hold    int
}

// Remaining returns the items neither done nor pending, clamped at zero when
// done+pending exceeds total.
func (c DisciplineCounters) Remaining() int {
	return ClampRemaining(c.Total, c.Done, c.Pending)
}

// ClampRemaining computes max(0, total-done-pending).
func ClampRemaining(total, done, pending int) int {
	return max(0, total-done-pending)
}

// AggregatedStats is the roll-up of discipline counters for a selection scope.
type AggregatedStats struct {
	TotalItems int
	Done       int
	Pending    int
	Punch      int
	Hold       int
	Remaining  int
}

// AddCounters sums the five source counters into the stats. Remaining is left
// untouched; callers recompute it once the sum is complete.
func (s AggregatedStats) AddCounters(c DisciplineCounters) AggregatedStats {
	s.TotalItems += c.Total
	s.Done += c.Done
	s.Pending += c.Pending
	s.Punch += c.Punch
	s.Hold += c.Hold
	return s
}

// Add sums two aggregates counter by counter, leaving Remaining untouched.
func (s AggregatedStats) Add(o AggregatedStats) AggregatedStats {
	s.TotalItems += o.TotalItems
	s.Done += o.Done
	s.Pending += o.Pending
	s.Punch += o.Punch
	s.Hold += o.Hold
	return s
}

// WithRemaining returns a copy with Remaining recomputed from the summed counters.
func (s AggregatedStats) WithRemaining() AggregatedStats {
	s.Remaining = ClampRemaining(s.TotalItems, s.Done, s.Pending)
	return s
}

// IsEmpty reports whether the scope has no items at all.
func (s AggregatedStats) IsEmpty() bool {
	return s.TotalItems == 0
}
