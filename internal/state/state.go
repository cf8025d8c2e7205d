// Package state holds the dashboard's application state. A State is never
// mutated after it is published; every transition builds a new one and the
// Store swaps it in atomically.
package state

import (
	"sync"
	"sync/atomic"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
)

// State is one consistent snapshot of the dashboard.
type State struct {
	Dataset   engine.Dataset
	Items     engine.Items
	Selection model.Selection
	Stats     model.AggregatedStats
	Table     []model.TableRow
}

// New derives a state for a dataset, item lists and selection.
func New(ds engine.Dataset, items engine.Items, sel model.Selection) *State {
	return &State{
		Dataset:   ds,
		Items:     items,
		Selection: sel,
		Stats:     engine.Aggregate(sel, ds.Hierarchy),
		Table:     engine.TableRows(sel, ds.Hierarchy, ds.Rows, false),
	}
}

// WithSelection returns a state for another selection, recomputing the
// derived stats and table.
func (s *State) WithSelection(sel model.Selection) *State {
	return New(s.Dataset, s.Items, sel)
}

// WithItems returns a state whose item lists are replaced.
func (s *State) WithItems(items engine.Items) *State {
	next := *s
	next.Items = items
	return &next
}

// Drill resolves a drill-down against this snapshot.
func (s *State) Drill(ctx engine.Context, dataset model.Dataset) engine.Result {
	return engine.Resolve(ctx, dataset, s.Selection, s.Dataset.Hierarchy, s.Items)
}

// ExportRows returns every table row in scope, ignoring empty-scope suppression.
func (s *State) ExportRows() []model.TableRow {
	return engine.TableRows(s.Selection, s.Dataset.Hierarchy, s.Dataset.Rows, true)
}

// Store publishes the current State. Reads are lock-free; writers are
// serialized so concurrent slot updates are never lost.
type Store struct {
	current atomic.Pointer[State]
	mu      sync.Mutex
}

// NewStore creates a store showing all systems of ds.
func NewStore(ds engine.Dataset) *Store {
	s := &Store{}
	s.current.Store(New(ds, engine.Items{}, model.AllSystems()))
	return s
}

// Current returns the latest snapshot.
func (s *Store) Current() *State {
	return s.current.Load()
}

// Select switches the selection and returns the new snapshot.
func (s *Store) Select(sel model.Selection) *State {
	return s.update(func(st *State) *State { return st.WithSelection(sel) })
}

// SetDataset replaces the main dataset, keeping the selection and item lists.
func (s *Store) SetDataset(ds engine.Dataset) *State {
	return s.update(func(st *State) *State { return New(ds, st.Items, st.Selection) })
}

// SetItems replaces the item-details list.
func (s *Store) SetItems(details []model.DetailItem) *State {
	return s.update(func(st *State) *State {
		items := st.Items
		items.Details = details
		return st.WithItems(items)
	})
}

// SetPunch replaces the punch list.
func (s *Store) SetPunch(punch []model.PunchItem) *State {
	return s.update(func(st *State) *State {
		items := st.Items
		items.Punch = punch
		return st.WithItems(items)
	})
}

// SetHold replaces the hold-point list.
func (s *Store) SetHold(hold []model.HoldPointItem) *State {
	return s.update(func(st *State) *State {
		items := st.Items
		items.Hold = hold
		return st.WithItems(items)
	})
}

// Drill resolves a drill-down against the current snapshot.
func (s *Store) Drill(ctx engine.Context, dataset model.Dataset) engine.Result {
	return s.Current().Drill(ctx, dataset)
}

func (s *Store) update(fn func(*State) *State) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.current.Load())
	s.current.Store(next)
	return next
}
