// Package sheet encodes and decodes the xlsx workbooks the gate exchanges
// with librarians. Pure transforms over already-fetched rows, no storage access
package sheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrEmpty is returned when asked to encode a workbook with zero data rows
var ErrEmpty = errors.New("no rows to encode")

// timeLayout is the punch timestamp format librarians see in exports
const timeLayout = "02 Jan 2006, 03:04 PM"

// VisitRow is one visit joined to its roster entry, ready for export
type VisitRow struct {
	Name            string
	RegisterNumber  string
	AdmissionNumber string
	Department      string
	Purpose         string
	PunchIn         time.Time
	PunchOut        *time.Time
	DurationMinutes *int64
}

// visitHeader is the fixed export column set, in order
var visitHeader = []any{
	"Name",
	"Register Number",
	"Admission Number",
	"Department",
	"Purpose",
	"Punch In",
	"Punch Out",
	"Duration (minutes)",
}

// EncodeVisits renders visit rows into a single-sheet workbook.
// Open visits leave the punch-out and duration cells blank
func EncodeVisits(sheetName string, rows []VisitRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	f, err := newWorkbook(sheetName, visitHeader)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for i, v := range rows {
		out, dur := "", ""
		if v.PunchOut != nil {
			out = v.PunchOut.Format(timeLayout)
		}
		if v.DurationMinutes != nil {
			dur = strconv.FormatInt(*v.DurationMinutes, 10)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			v.Name,
			v.RegisterNumber,
			v.AdmissionNumber,
			v.Department,
			v.Purpose,
			v.PunchIn.Format(timeLayout),
			out,
			dur,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return flush(f)
}

// StudentRow is one roster entry as it appears in an import or export workbook
type StudentRow struct {
	RegisterNumber  string
	Name            string
	AdmissionNumber string
	Department      string
}

// rosterHeader mirrors the template librarians fill in
var rosterHeader = []any{
	"Sl No",
	"Register Number",
	"Name",
	"Admission Number",
	"Department",
}

// EncodeRoster renders roster rows into a single-sheet workbook
func EncodeRoster(sheetName string, rows []StudentRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	f, err := newWorkbook(sheetName, rosterHeader)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for i, s := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			i + 1,
			s.RegisterNumber,
			s.Name,
			s.AdmissionNumber,
			s.Department,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return flush(f)
}

// ParseRoster reads an uploaded roster workbook from the first sheet.
// The header row is skipped. Rows missing name, admission number, or
// department are skipped and counted, not fatal; the register number
// column may be blank
func ParseRoster(r io.Reader) (rows []StudentRow, skipped int, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, errors.New("workbook has no sheets")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("read rows: %w", err)
	}

	for i, cells := range raw {
		if i == 0 {
			continue // header
		}
		s := StudentRow{
			RegisterNumber:  cellAt(cells, 1),
			Name:            cellAt(cells, 2),
			AdmissionNumber: cellAt(cells, 3),
			Department:      cellAt(cells, 4),
		}
		if s.Name == "" || s.AdmissionNumber == "" || s.Department == "" {
			if !blankRow(cells) {
				skipped++
			}
			continue
		}
		rows = append(rows, s)
	}
	return rows, skipped, nil
}

// newWorkbook builds a workbook with a named sheet, bold header row, and sane widths
func newWorkbook(sheetName string, header []any) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err == nil {
		_ = f.SetColWidth(sheetName, "A", lastCol, 22)
	}
	return f, nil
}

// flush serializes the workbook to bytes
func flush(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellAt(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
