package testutil

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/Veraticus/sapra/internal/model"
)

// MainHeader is the main-feed header row.
var MainHeader = []string{
	"SD_System", "SD_System_Name", "SD_Sub_System", "SD_Subsystem_Name", "discipline",
	"TOTAL ITEM", "TOTAL DONE", "TOTAL PENDING", "TOTAL NOT CLEAR PUNCH", "TOTAL HOLD POINT",
}

// ItemsHeader is the item-details feed header row.
var ItemsHeader = []string{
	"SD_Sub_System", "Discipline_Name", "ITEM_Tag_NO", "ITEM_Type_Code", "ITEM_Description", "ITEM_Status",
}

// MainCSV encodes rows as a main-feed body.
func MainCSV(t testing.TB, rows []model.RawRow) string {
	t.Helper()
	records := [][]string{MainHeader}
	for _, r := range rows {
		records = append(records, []string{
			r.SystemID, r.SystemName, r.SubsystemID, r.SubsystemName, r.Discipline,
			r.TotalItem, r.TotalDone, r.TotalPending, r.TotalPunch, r.TotalHold,
		})
	}
	return encode(t, records)
}

// ItemsCSV encodes detail items as an item-details feed body.
func ItemsCSV(t testing.TB, items []model.DetailItem) string {
	t.Helper()
	records := [][]string{ItemsHeader}
	for _, it := range items {
		records = append(records, []string{
			it.Subsystem, it.Discipline, it.TagNo, it.TypeCode, it.Description, it.Status,
		})
	}
	return encode(t, records)
}

func encode(t testing.TB, records [][]string) string {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("encode csv: %v", err)
	}
	return buf.String()
}
