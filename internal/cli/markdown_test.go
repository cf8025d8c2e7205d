package cli

import (
	"testing"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryMarkdown(t *testing.T) {
	ds := plant(t)

	tests := []struct {
		name    string
		sel     model.Selection
		want    []string
		notWant []string
	}{
		{
			name: "all systems",
			sel:  model.AllSystems(),
			want: []string{
				"# Dashboard\n\n| Counter | Value | Share |\n| --- | --- | --- |\n",
				"| Completed | 14 | 52% |\n",
				"## Breakdown",
				"| S1 - Power | 19 | 12 | 3 | 4 | 1 | 2 | 63% |\n",
				"| S2 - Water | 8 | 2 | 3 | 3 | 2 | 1 | 25% |\n",
			},
			notWant: []string{"## Disciplines"},
		},
		{
			name: "subsystem",
			sel:  model.SubsystemScope("SS1", "S1"),
			want: []string{
				"## Disciplines",
				"| Elec | 10 | 6 | 2 | 2 | 1 | 0 |\n",
				"| Inst | 4 | 1 | 1 | 2 | 0 | 2 |\n",
			},
			notWant: []string{"## Breakdown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := SummaryMarkdown(tt.sel, engine.Aggregate(tt.sel, ds.Hierarchy), ds.Hierarchy)
			for _, s := range tt.want {
				assert.Contains(t, md, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, md, s)
			}
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Progress\n\nAll systems are **on track**.\n", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Progress")
	assert.Contains(t, out, "on track")
}
