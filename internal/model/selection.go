package model

import "fmt"

// ScopeKind identifies which level of the hierarchy a selection covers.
type ScopeKind int

const (
	// ScopeAll covers every system.
	ScopeAll ScopeKind = iota
	// ScopeSystem covers one system and its subsystems.
	ScopeSystem
	// ScopeSubsystem covers a single subsystem.
	ScopeSubsystem
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAll:
		return "all"
	case ScopeSystem:
		return "system"
	case ScopeSubsystem:
		return "subsystem"
	default:
		return fmt.Sprintf("ScopeKind(%d)", int(k))
	}
}

// Selection is the active view scope. The zero value selects all systems.
type Selection struct {
	ID       string
	ParentID string
	Kind     ScopeKind
}

// AllSystems selects every system.
func AllSystems() Selection {
	return Selection{Kind: ScopeAll}
}

// SystemScope selects a single system.
func SystemScope(id string) Selection {
	return Selection{Kind: ScopeSystem, ID: id}
}

// SubsystemScope selects a single subsystem under its parent system.
func SubsystemScope(id, parentID string) Selection {
	return Selection{Kind: ScopeSubsystem, ID: id, ParentID: parentID}
}

// IsAll reports whether the selection covers every system. A system or
// subsystem selection with an empty id is treated as all systems.
func (s Selection) IsAll() bool {
	return s.Kind == ScopeAll || s.ID == ""
}

// Label returns a short human-readable description of the scope.
func (s Selection) Label() string {
	if s.IsAll() {
		return "All Systems"
	}
	switch s.Kind {
	case ScopeSystem:
		return "System: " + s.ID
	default:
		return "Subsystem: " + s.ID
	}
}

func (s Selection) String() string {
	if s.IsAll() {
		return "all"
	}
	return fmt.Sprintf("%s:%s", s.Kind, s.ID)
}
