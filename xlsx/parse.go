package xlsx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/aerissecure/plannercal/calendar"
)

// ReadTasks reads the Planner "Tasks" sheet from r/size.
func ReadTasks(r io.ReaderAt, size int64) (TaskSheet, error) {
	return ReadTasksSheet(r, size, SheetName)
}

// ReadTasksSheet reads task rows from the named sheet of an XLSX in r/size.
func ReadTasksSheet(r io.ReaderAt, size int64, sheetName string) (TaskSheet, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return TaskSheet{}, fmt.Errorf("reading workbook: %w", err)
	}
	sheet, ok := findSheet(wb, sheetName)
	if !ok {
		return TaskSheet{}, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}
	return parseSheet(sheet)
}

// OpenTasks reads the named sheet from the XLSX file at path.
func OpenTasks(path, sheetName string) (TaskSheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return TaskSheet{}, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return TaskSheet{}, err
	}
	return ReadTasksSheet(f, info.Size(), sheetName)
}

func parseSheet(sheet spreadsheet.Sheet) (TaskSheet, error) {
	ts := TaskSheet{Name: sheet.Name(), Columns: Columns{}}

	rows := sheet.Rows()
	headerIdx := -1
	for i, row := range rows {
		cells := rowCells(row)
		if len(cells) == 0 {
			continue
		}
		headerIdx = i
		ts.HeaderRow = int(row.RowNumber())
		for col, cell := range cells {
			key := strings.ToLower(strings.Join(strings.Fields(cellText(cell)), " "))
			if header, ok := headerAliases[key]; ok {
				if _, dup := ts.Columns[header]; !dup {
					ts.Columns[header] = col
				}
			}
		}
		break
	}

	var missing []string
	for _, h := range requiredHeaders {
		if ts.Columns.Index(h) < 0 {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return ts, &MissingColumnsError{Sheet: ts.Name, Columns: missing}
	}

	for _, row := range rows[headerIdx+1:] {
		cells := rowCells(row)
		if len(cells) == 0 {
			continue
		}
		rec := calendar.TaskRecord{
			Row:       int(row.RowNumber()),
			Name:      ts.text(cells, HeaderTaskName),
			Labels:    ts.text(cells, HeaderLabels),
			Bucket:    ts.text(cells, HeaderBucket),
			Start:     ts.date(cells, HeaderStartDate),
			Due:       ts.date(cells, HeaderDueDate),
			Completed: ts.date(cells, HeaderCompleted),
		}
		if rec == (calendar.TaskRecord{Row: rec.Row}) {
			continue
		}
		ts.Records = append(ts.Records, rec)
	}
	return ts, nil
}

// rowCells maps zero-based column index to the non-empty cells of row.
func rowCells(row spreadsheet.Row) map[int]spreadsheet.Cell {
	cells := make(map[int]spreadsheet.Cell)
	for _, cell := range row.Cells() {
		if cell.IsEmpty() {
			continue
		}
		colName, err := cell.Column()
		if err != nil {
			continue
		}
		cells[int(reference.ColumnToIndex(colName))] = cell
	}
	return cells
}

func (s TaskSheet) text(cells map[int]spreadsheet.Cell, header string) string {
	cell, ok := cells[s.Columns.Index(header)]
	if !ok {
		return ""
	}
	return cellText(cell)
}

func (s TaskSheet) date(cells map[int]spreadsheet.Cell, header string) string {
	cell, ok := cells[s.Columns.Index(header)]
	if !ok {
		return ""
	}
	return dateText(cell)
}
