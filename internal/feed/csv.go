package feed

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/model"
)

const bom = "\uFEFF"

// Record is one CSV row keyed by header name. Missing cells read as "".
type Record map[string]string

// Get returns the trimmed value of a column.
func (r Record) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// ReadRecords decodes a header-keyed CSV document. Blank lines are skipped,
// a leading UTF-8 byte order mark is dropped and short rows are padded.
func ReadRecords(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(len(bom)); err == nil && string(lead) == bom {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", common.ErrMalformedFeed, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrMalformedFeed, err)
		}
		if blank(row) {
			continue
		}

		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Main-feed columns.
const (
	colSystem        = "SD_System"
	colSystemName    = "SD_System_Name"
	colSubsystem     = "SD_Sub_System"
	colSubsystemName = "SD_Subsystem_Name"
	colDiscipline    = "discipline"
	colTotalItem     = "TOTAL ITEM"
	colTotalDone     = "TOTAL DONE"
	colTotalPending  = "TOTAL PENDING"
	colTotalPunch    = "TOTAL NOT CLEAR PUNCH"
	colTotalHold     = "TOTAL HOLD POINT"
)

// Secondary-feed columns.
const (
	colItemSubsystem   = "SD_Sub_System"
	colIssueSubsystem  = "SD_SUB_SYSTEM"
	colDisciplineName  = "Discipline_Name"
	colTagNo           = "ITEM_Tag_NO"
	colTypeCode        = "ITEM_Type_Code"
	colItemDescription = "ITEM_Description"
	colItemStatus      = "ITEM_Status"
	colPunchCategory   = "PL_Punch_Category"
	colPunchDesc       = "PL_Punch_Description"
	colHoldPriority    = "HP_Priority"
	colHoldDesc        = "HP_Description"
	colHoldLocation    = "HP_Location"
)

// ParseMain decodes the main feed. Values are kept as transported; the
// hierarchy builder trims and parses them.
func ParseMain(r io.Reader) ([]model.RawRow, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}

	rows := make([]model.RawRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, model.RawRow{
			SystemID:      rec[colSystem],
			SystemName:    rec[colSystemName],
			SubsystemID:   rec[colSubsystem],
			SubsystemName: rec[colSubsystemName],
			Discipline:    rec[colDiscipline],
			TotalItem:     rec[colTotalItem],
			TotalDone:     rec[colTotalDone],
			TotalPending:  rec[colTotalPending],
			TotalPunch:    rec[colTotalPunch],
			TotalHold:     rec[colTotalHold],
		})
	}
	return rows, nil
}

// ParseItems decodes the item-details feed.
func ParseItems(r io.Reader) ([]model.DetailItem, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}

	items := make([]model.DetailItem, 0, len(records))
	for _, rec := range records {
		items = append(items, model.DetailItem{
			Subsystem:   rec.Get(colItemSubsystem),
			Discipline:  rec.Get(colDisciplineName),
			TagNo:       rec.Get(colTagNo),
			TypeCode:    rec.Get(colTypeCode),
			Description: rec.Get(colItemDescription),
			Status:      rec.Get(colItemStatus),
		})
	}
	return items, nil
}

// ParsePunch decodes the not-clear punch feed.
func ParsePunch(r io.Reader) ([]model.PunchItem, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}

	items := make([]model.PunchItem, 0, len(records))
	for _, rec := range records {
		items = append(items, model.PunchItem{
			Subsystem:   rec.Get(colIssueSubsystem),
			Discipline:  rec.Get(colDisciplineName),
			TagNo:       rec.Get(colTagNo),
			TypeCode:    rec.Get(colTypeCode),
			Category:    rec.Get(colPunchCategory),
			Description: rec.Get(colPunchDesc),
		})
	}
	return items, nil
}

// ParseHold decodes the hold-point feed.
func ParseHold(r io.Reader) ([]model.HoldPointItem, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}

	items := make([]model.HoldPointItem, 0, len(records))
	for _, rec := range records {
		items = append(items, model.HoldPointItem{
			Subsystem:   rec.Get(colIssueSubsystem),
			Discipline:  rec.Get(colDisciplineName),
			TagNo:       rec.Get(colTagNo),
			TypeCode:    rec.Get(colTypeCode),
			Priority:    rec.Get(colHoldPriority),
			Description: rec.Get(colHoldDesc),
			Location:    rec.Get(colHoldLocation),
		})
	}
	return items, nil
}
