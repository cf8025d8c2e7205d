package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "42", want: 42},
		{input: "  7 ", want: 7},
		{input: "12abc", want: 12},
		{input: "3.9", want: 3},
		{input: "1,234", want: 1},
		{input: "-5", want: -5},
		{input: "+8", want: 8},
		{input: "", want: 0},
		{input: "n/a", want: 0},
		{input: "-", want: 0},
		{input: "99999999999999999999999", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.input))
		})
	}
}

func TestRawRow_Counters(t *testing.T) {
	row := RawRow{TotalItem: "10", TotalDone: "6", TotalPending: "2", TotalPunch: "x", TotalHold: ""}

	assert.Equal(t, DisciplineCounters{Total: 10, Done: 6, Pending: 2}, row.Counters())
}
