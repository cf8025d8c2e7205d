package model

import (
	"strconv"
	"strings"
)

// ParseCount parses a counter transported as text. It reads an optional sign
// followed by the leading run of digits and ignores anything after it, so
// "12 items" is 12 and "3.9" is 3. Text without leading digits parses to 0.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Counters parses the five counter fields of a raw row.
func (r RawRow) Counters() DisciplineCounters {
	return DisciplineCounters{
		Total:   ParseCount(r.TotalItem),
		Done:    ParseCount(r.TotalDone),
		Pending: ParseCount(r.TotalPending),
		Punch:   ParseCount(r.TotalPunch),
		Hold:    ParseCount(r.TotalHold),
	}
}
