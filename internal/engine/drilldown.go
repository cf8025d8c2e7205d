package engine

import (
	"fmt"

	"github.com/Veraticus/sapra/internal/model"
)

// Context describes where a drill-down click originated.
// It is either a SummaryContext or a TableContext.
type Context interface {
	DrillStatus() model.Status
	isContext()
}

// SummaryContext is a click on an aggregate summary tile. Items are filtered
// by the current selection scope.
type SummaryContext struct {
	Status model.Status
}

// DrillStatus returns the clicked status bucket.
func (c SummaryContext) DrillStatus() model.Status { return c.Status }

func (SummaryContext) isContext() {}

// TableContext is a click on a detail-table cell. Items are filtered by the
// row's subsystem and discipline, regardless of the current selection.
type TableContext struct {
	Row    model.TableRow
	Status model.Status
}

// DrillStatus returns the clicked status bucket.
func (c TableContext) DrillStatus() model.Status { return c.Status }

func (TableContext) isContext() {}

// Items bundles the three independently loaded item lists.
type Items struct {
	Details []model.DetailItem
	Punch   []model.PunchItem
	Hold    []model.HoldPointItem
}

// Result is the outcome of a drill-down: the matching items of the requested
// dataset and a title describing them. Only the slice for Dataset is set.
type Result struct {
	Dataset model.Dataset
	Title   string
	Details []model.DetailItem
	Punch   []model.PunchItem
	Hold    []model.HoldPointItem
}

// Len returns the number of matching items.
func (r Result) Len() int {
	switch r.Dataset {
	case model.DatasetPunch:
		return len(r.Punch)
	case model.DatasetHold:
		return len(r.Hold)
	default:
		return len(r.Details)
	}
}

// Resolve filters the requested dataset down to the rows implied by the click
// context and selection. Unknown scope ids produce an empty result.
func Resolve(ctx Context, dataset model.Dataset, sel model.Selection, h *model.Hierarchy, items Items) Result {
	res := Result{
		Dataset: dataset,
		Title:   drillTitle(ctx, sel),
	}

	switch dataset {
	case model.DatasetPunch:
		res.Punch = filter(items.Punch, scopePredicate[model.PunchItem](ctx, sel, h))
	case model.DatasetHold:
		res.Hold = filter(items.Hold, scopePredicate[model.HoldPointItem](ctx, sel, h))
	default:
		res.Dataset = model.DatasetItems
		res.Details = filter(items.Details,
			scopePredicate[model.DetailItem](ctx, sel, h),
			statusPredicate(ctx.DrillStatus()))
	}

	return res
}

// predicate reports whether an item is kept. A nil predicate keeps everything.
type predicate[T model.Item] func(T) bool

func filter[T model.Item](items []T, preds ...predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, keep := range preds {
			if keep != nil && !keep(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// scopePredicate builds the subsystem/discipline filter for a click context.
func scopePredicate[T model.Item](ctx Context, sel model.Selection, h *model.Hierarchy) predicate[T] {
	if tc, ok := ctx.(TableContext); ok {
		sub := model.Key(tc.Row.Subsystem)
		disc := model.Key(tc.Row.Discipline)
		return func(item T) bool {
			return item.SubsystemKey() == sub && item.DisciplineKey() == disc
		}
	}

	if sel.IsAll() {
		return nil
	}

	if sel.Kind == model.ScopeSystem {
		keys := make(map[string]struct{})
		if system, ok := h.System(sel.ID); ok {
			for _, ref := range system.Subsystems {
				keys[model.Key(ref.ID)] = struct{}{}
			}
		}
		return func(item T) bool {
			k := item.SubsystemKey()
			if k == "" {
				return false
			}
			_, ok := keys[k]
			return ok
		}
	}

	want := model.Key(sel.ID)
	return func(item T) bool {
		return item.SubsystemKey() == want
	}
}

// statusPredicate filters item details by status. OTHER keeps everything that
// is neither done nor pending, including items with no status at all.
func statusPredicate(status model.Status) predicate[model.DetailItem] {
	switch status {
	case model.StatusTotal:
		return nil
	case model.StatusOther:
		return func(item model.DetailItem) bool {
			s := model.Key(item.Status)
			return s == "" || (s != "done" && s != "pending")
		}
	default:
		want := model.Key(string(status))
		return func(item model.DetailItem) bool {
			return model.Key(item.Status) == want
		}
	}
}

func drillTitle(ctx Context, sel model.Selection) string {
	status := ctx.DrillStatus()

	if tc, ok := ctx.(TableContext); ok {
		return fmt.Sprintf("%s items in %s / %s", status, tc.Row.Subsystem, tc.Row.Discipline)
	}

	switch {
	case sel.IsAll():
		return fmt.Sprintf("%s items (All Systems)", status)
	case sel.Kind == model.ScopeSystem:
		return fmt.Sprintf("%s items in System: %s", status, sel.ID)
	default:
		return fmt.Sprintf("%s items in Subsystem: %s", status, sel.ID)
	}
}

// Column identifies a clickable detail-table column.
type Column string

// Detail-table columns that open a drill-down.
const (
	ColumnTotal     Column = "totalItems"
	ColumnCompleted Column = "completed"
	ColumnPending   Column = "pending"
	ColumnPunch     Column = "punch"
	ColumnHoldPoint Column = "holdPoint"
	ColumnProgress  Column = "statusPercent"
)

// CellTarget maps a clicked table column to the status and dataset it drills
// into. Columns that are not clickable report false.
func CellTarget(col Column) (model.Status, model.Dataset, bool) {
	switch col {
	case ColumnTotal:
		return model.StatusTotal, model.DatasetItems, true
	case ColumnCompleted:
		return model.StatusDone, model.DatasetItems, true
	case ColumnPending:
		return model.StatusPending, model.DatasetItems, true
	case ColumnPunch:
		return model.StatusPunch, model.DatasetPunch, true
	case ColumnHoldPoint:
		return model.StatusHold, model.DatasetHold, true
	case ColumnProgress:
		return model.StatusOther, model.DatasetItems, true
	default:
		return "", "", false
	}
}
