// Package main runs the dashboard over generated plant data, without feeds.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/feed"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/state"
	"github.com/Veraticus/sapra/internal/tui"
)

var (
	systemNames = []string{"Power Generation", "Cooling Water", "Fire Water", "Instrument Air", "Flare"}
	disciplines = []string{"Electrical", "Instrument", "Mechanical", "Piping"}
)

func main() {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(7, 11)) //nolint:gosec // demo data

	rows := demoRows(rng)
	store := state.NewStore(engine.NewDataset(rows))

	err := tui.Run(ctx, store,
		tui.WithSecondaryLoader(demoLoader{rows: rows, delay: 700 * time.Millisecond}),
		tui.WithExporter(export.NewXLSXWriter(os.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))),
		tui.WithSize(120, 40),
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}

// demoRows builds a few systems with two to four subsystems each.
func demoRows(rng *rand.Rand) []model.RawRow {
	var rows []model.RawRow
	for i, name := range systemNames {
		systemID := fmt.Sprintf("%02d", i+1)
		for j := range 2 + rng.IntN(3) {
			subsystemID := fmt.Sprintf("%s-%02d", systemID, j+1)
			for _, discipline := range disciplines {
				total := rng.IntN(40)
				done := rng.IntN(total + 1)
				pending := rng.IntN(total - done + 1)
				rows = append(rows, model.RawRow{
					SystemID:      systemID,
					SystemName:    name,
					SubsystemID:   subsystemID,
					SubsystemName: fmt.Sprintf("%s train %d", name, j+1),
					Discipline:    discipline,
					TotalItem:     strconv.Itoa(total),
					TotalDone:     strconv.Itoa(done),
					TotalPending:  strconv.Itoa(pending),
					TotalPunch:    strconv.Itoa(rng.IntN(5)),
					TotalHold:     strconv.Itoa(rng.IntN(3)),
				})
			}
		}
	}
	return rows
}

// demoLoader produces item lists matching the generated counters, one feed at
// a time, so the loading indicator is visible.
type demoLoader struct {
	rows  []model.RawRow
	delay time.Duration
}

func (l demoLoader) LoadSecondary(ctx context.Context, apply func(feed.Secondary)) {
	var (
		details []model.DetailItem
		punch   []model.PunchItem
		hold    []model.HoldPointItem
	)
	for _, r := range l.rows {
		c := r.Counters()
		for n := range c.Total {
			status := ""
			switch {
			case n < c.Done:
				status = "DONE"
			case n < c.Done+c.Pending:
				status = "PENDING"
			}
			details = append(details, model.DetailItem{
				Subsystem:   r.SubsystemID,
				Discipline:  r.Discipline,
				TagNo:       fmt.Sprintf("%s-%s-%03d", r.SubsystemID, r.Discipline[:3], n+1),
				TypeCode:    "CHK",
				Description: "Check sheet " + strconv.Itoa(n+1),
				Status:      status,
			})
		}
		for n := range c.Punch {
			punch = append(punch, model.PunchItem{
				Subsystem:   r.SubsystemID,
				Discipline:  r.Discipline,
				TagNo:       fmt.Sprintf("%s-P%02d", r.SubsystemID, n+1),
				Category:    "A",
				Description: "Open punch item",
			})
		}
		for n := range c.Hold {
			hold = append(hold, model.HoldPointItem{
				Subsystem:   r.SubsystemID,
				Discipline:  r.Discipline,
				TagNo:       fmt.Sprintf("%s-H%02d", r.SubsystemID, n+1),
				Priority:    "High",
				Description: "Witness test",
			})
		}
	}

	results := []feed.Secondary{
		{Dataset: model.DatasetItems, Details: details},
		{Dataset: model.DatasetPunch, Punch: punch},
		{Dataset: model.DatasetHold, Hold: hold},
	}
	for _, s := range results {
		select {
		case <-ctx.Done():
			return
		case <-time.After(l.delay):
		}
		apply(s)
	}
}
