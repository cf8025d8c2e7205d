package model

import (
	"fmt"
	"strings"
)

// Status is the drill-down bucket a click refers to.
type Status string

// Drill-down statuses.
const (
	StatusTotal   Status = "TOTAL"
	StatusDone    Status = "DONE"
	StatusPending Status = "PENDING"
	StatusPunch   Status = "PUNCH"
	StatusHold    Status = "HOLD"
	// StatusOther is the remaining bucket: items neither done nor pending.
	StatusOther Status = "OTHER"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusTotal, StatusDone, StatusPending, StatusOther, StatusPunch, StatusHold}

// ParseStatus parses a status name case-insensitively. "remaining" is accepted
// as an alias for OTHER.
func ParseStatus(s string) (Status, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "REMAINING" {
		return StatusOther, nil
	}
	for _, st := range Statuses {
		if string(st) == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Dataset selects which raw item list a drill-down reads.
type Dataset string

// Drill-down datasets.
const (
	DatasetItems Dataset = "items"
	DatasetPunch Dataset = "punch"
	DatasetHold  Dataset = "hold"
)

// Datasets lists the secondary datasets in load order.
var Datasets = []Dataset{DatasetItems, DatasetPunch, DatasetHold}

// ParseDataset parses a dataset name case-insensitively.
func ParseDataset(s string) (Dataset, error) {
	v := Dataset(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range Datasets {
		if d == v {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dataset %q", s)
}

// DefaultDataset returns the dataset a status naturally drills into.
func (s Status) DefaultDataset() Dataset {
	switch s {
	case StatusPunch:
		return DatasetPunch
	case StatusHold:
		return DatasetHold
	default:
		return DatasetItems
	}
}
