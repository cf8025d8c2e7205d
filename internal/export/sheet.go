// Package export turns detail tables and drill-down results into tabular
// sheets and writes them to files, the clipboard or Google Sheets.
package export

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
)

const notAvailable = "N/A"

// ReportSheetName is the sheet name of a detail-table export.
const ReportSheetName = "SAPRA Report"

// Sheet is one exportable table. File is the base file name without extension.
type Sheet struct {
	Name    string
	File    string
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (s Sheet) Len() int {
	return len(s.Rows)
}

// Writer persists a sheet somewhere.
type Writer interface {
	Write(ctx context.Context, sheet Sheet) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ReportFileName names a detail-table export for a selection and day.
func ReportFileName(sel model.Selection, day time.Time) string {
	view := "AllSystems"
	if !sel.IsAll() {
		id := unsafeChars.ReplaceAllString(sel.ID, "_")
		switch sel.Kind {
		case model.ScopeSystem:
			view = "System_" + id
		default:
			view = "SubSystem_" + id
		}
	}
	return fmt.Sprintf("SAPRA_Report_%s_%s", view, day.Format(time.DateOnly))
}

// DetailSheetName names the sheet holding a drill-down dataset.
func DetailSheetName(dataset model.Dataset) string {
	switch dataset {
	case model.DatasetPunch:
		return "Punch_Details"
	case model.DatasetHold:
		return "Hold_Point_Details"
	default:
		return "Item_Details"
	}
}

// DetailFileName names a drill-down export for a dataset and day.
func DetailFileName(dataset model.Dataset, day time.Time) string {
	return fmt.Sprintf("SAPRA_%s_%s", DetailSheetName(dataset), day.Format(time.DateOnly))
}

// TableSheet converts detail-table rows into a sheet.
func TableSheet(rows []model.TableRow, sel model.Selection, day time.Time) Sheet {
	sheet := Sheet{
		Name: ReportSheetName,
		File: ReportFileName(sel, day),
		Columns: []string{
			"System", "SystemName", "SubSystem", "SubSystemName", "Discipline",
			"TotalItems", "Completed", "Pending", "Punch", "HoldPoint", "ProgressPercent",
		},
		Rows: make([][]string, 0, len(rows)),
	}

	for _, r := range rows {
		sheet.Rows = append(sheet.Rows, []string{
			r.System, r.SystemName, r.Subsystem, r.SubsystemName, r.Discipline,
			strconv.Itoa(r.TotalItems),
			strconv.Itoa(r.Completed),
			strconv.Itoa(r.Pending),
			strconv.Itoa(r.Punch),
			strconv.Itoa(r.HoldPoint),
			fmt.Sprintf("%d%%", r.StatusPercent),
		})
	}

	return sheet
}

// ItemSheet converts a drill-down result into a sheet with a 1-based index column.
func ItemSheet(res engine.Result, day time.Time) Sheet {
	sheet := Sheet{
		Name: DetailSheetName(res.Dataset),
		File: DetailFileName(res.Dataset, day),
	}

	switch res.Dataset {
	case model.DatasetPunch:
		sheet.Columns = []string{"#", "Subsystem", "Discipline", "TagNo", "TypeCode", "PunchCategory", "PunchDescription"}
		for i, it := range res.Punch {
			sheet.Rows = append(sheet.Rows, []string{
				strconv.Itoa(i + 1), it.Subsystem, it.Discipline, it.TagNo,
				orNA(it.TypeCode), it.Category, it.Description,
			})
		}
	case model.DatasetHold:
		sheet.Columns = []string{"#", "Subsystem", "Discipline", "TagNo", "TypeCode", "HPPriority", "HPDescription", "HPLocation"}
		for i, it := range res.Hold {
			sheet.Rows = append(sheet.Rows, []string{
				strconv.Itoa(i + 1), it.Subsystem, it.Discipline, it.TagNo,
				orNA(it.TypeCode), orNA(it.Priority), orNA(it.Description), orNA(it.Location),
			})
		}
	default:
		sheet.Columns = []string{"#", "Subsystem", "Discipline", "TagNo", "TypeCode", "Description", "Status"}
		for i, it := range res.Details {
			sheet.Rows = append(sheet.Rows, []string{
				strconv.Itoa(i + 1), it.Subsystem, it.Discipline, it.TagNo,
				it.TypeCode, it.Description, it.Status,
			})
		}
	}

	return sheet
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
