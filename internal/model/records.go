package model

// RawRow is one main-feed record for a (system, subsystem, discipline)
// combination. Counter fields keep the text exactly as transported so detail
// listings and exports reflect the source row.
type RawRow struct {
	SystemID      string
	SystemName    string
	SubsystemID   string
	SubsystemName string
	Discipline    string
	TotalItem     string
	TotalDone     string
	TotalPending  string
	TotalPunch    string
	TotalHold     string
}

// DetailItem is one row of the item-details feed.
type DetailItem struct {
	Subsystem   string
	Discipline  string
	TagNo       string
	TypeCode    string
	Description string
	Status      string
}

// PunchItem is one row of the not-clear punch feed.
type PunchItem struct {
	Subsystem   string
	Discipline  string
	TagNo       string
	TypeCode    string
	Category    string
	Description string
}

// HoldPointItem is one row of the hold-point feed.
type HoldPointItem struct {
	Subsystem   string
	Discipline  string
	TagNo       string
	TypeCode    string
	Priority    string
	Description string
	Location    string
}

// Item is implemented by the three drill-down record variants.
type Item interface {
	SubsystemKey() string
	DisciplineKey() string
}

// SubsystemKey returns the normalized subsystem used for matching.
func (i DetailItem) SubsystemKey() string { return Key(i.Subsystem) }

// DisciplineKey returns the normalized discipline used for matching.
func (i DetailItem) DisciplineKey() string { return Key(i.Discipline) }

// SubsystemKey returns the normalized subsystem used for matching.
func (i PunchItem) SubsystemKey() string { return Key(i.Subsystem) }

// DisciplineKey returns the normalized discipline used for matching.
func (i PunchItem) DisciplineKey() string { return Key(i.Discipline) }

// SubsystemKey returns the normalized subsystem used for matching.
func (i HoldPointItem) SubsystemKey() string { return Key(i.Subsystem) }

// DisciplineKey returns the normalized discipline used for matching.
func (i HoldPointItem) DisciplineKey() string { return Key(i.Discipline) }

// TableRow is one line of the detail table.
type TableRow struct {
	System        string
	SystemName    string
	Subsystem     string
	SubsystemName string
	Discipline    string
	TotalItems    int
	Completed     int
	Pending       int
	Punch         int
	HoldPoint     int
	StatusPercent int
}
