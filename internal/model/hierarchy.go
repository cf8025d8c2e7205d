package model

// SubsystemRef is a system's reference to one of its subsystems.
type SubsystemRef struct {
	ID   string
	Name string
}

// System groups subsystems under a single system id.
type System struct {
	ID         string
	Name       string
	Subsystems []SubsystemRef
}

// HasSubsystem reports whether the system already references the subsystem id.
// Comparison is case-sensitive.
func (s *System) HasSubsystem(id string) bool {
	for _, ref := range s.Subsystems {
		if ref.ID == id {
			return true
		}
	}
	return false
}

// SubsystemIDs returns the ids of the system's subsystems in first-seen order.
func (s *System) SubsystemIDs() []string {
	ids := make([]string, 0, len(s.Subsystems))
	for _, ref := range s.Subsystems {
		ids = append(ids, ref.ID)
	}
	return ids
}

// DisciplineEntry pairs a discipline name with its counters.
type DisciplineEntry struct {
	Name     string
	Counters DisciplineCounters
}

// Subsystem holds the per-discipline counters of one subsystem.
type Subsystem struct {
	index       map[string]int
	ID          string
	Name        string
	SystemID    string
	Title       string
	disciplines []DisciplineEntry
}

// NewSubsystem creates an empty subsystem owned by systemID.
func NewSubsystem(id, name, systemID string) *Subsystem {
	return &Subsystem{
		ID:       id,
		Name:     name,
		SystemID: systemID,
		Title:    id + " - " + name,
		index:    make(map[string]int),
	}
}

// SetDiscipline records the counters for a discipline. A discipline seen again
// keeps its original position and takes the new counters.
func (s *Subsystem) SetDiscipline(name string, counters DisciplineCounters) {
	if i, ok := s.index[name]; ok {
		s.disciplines[i].Counters = counters
		return
	}
	s.index[name] = len(s.disciplines)
	s.disciplines = append(s.disciplines, DisciplineEntry{Name: name, Counters: counters})
}

// Discipline returns the counters for a discipline name.
func (s *Subsystem) Discipline(name string) (DisciplineCounters, bool) {
	i, ok := s.index[name]
	if !ok {
		return DisciplineCounters{}, false
	}
	return s.disciplines[i].Counters, true
}

// Disciplines returns the disciplines in first-seen order.
func (s *Subsystem) Disciplines() []DisciplineEntry {
	out := make([]DisciplineEntry, len(s.disciplines))
	copy(out, s.disciplines)
	return out
}

// Hierarchy is the pair of lookup tables built from the main feed.
// It is treated as immutable once built.
type Hierarchy struct {
	systems    map[string]*System
	subsystems map[string]*Subsystem
	order      []string
}

// NewHierarchy creates an empty hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{
		systems:    make(map[string]*System),
		subsystems: make(map[string]*Subsystem),
	}
}

// System looks up a system by id.
func (h *Hierarchy) System(id string) (*System, bool) {
	if h == nil {
		return nil, false
	}
	s, ok := h.systems[id]
	return s, ok
}

// Subsystem looks up a subsystem by id.
func (h *Hierarchy) Subsystem(id string) (*Subsystem, bool) {
	if h == nil {
		return nil, false
	}
	s, ok := h.subsystems[id]
	return s, ok
}

// Systems returns the systems in first-seen order.
func (h *Hierarchy) Systems() []*System {
	if h == nil {
		return nil
	}
	out := make([]*System, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.systems[id])
	}
	return out
}

// Len returns the number of systems and subsystems.
func (h *Hierarchy) Len() (systems, subsystems int) {
	if h == nil {
		return 0, 0
	}
	return len(h.systems), len(h.subsystems)
}

// EnsureSystem returns the system for id, creating it on first sight.
func (h *Hierarchy) EnsureSystem(id, name string) *System {
	if s, ok := h.systems[id]; ok {
		return s
	}
	s := &System{ID: id, Name: name}
	h.systems[id] = s
	h.order = append(h.order, id)
	return s
}

// EnsureSubsystem returns the subsystem for id, creating it on first sight.
// An existing subsystem keeps the system it was first recorded under.
func (h *Hierarchy) EnsureSubsystem(id, name, systemID string) *Subsystem {
	if s, ok := h.subsystems[id]; ok {
		return s
	}
	s := NewSubsystem(id, name, systemID)
	h.subsystems[id] = s
	return s
}
