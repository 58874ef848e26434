// Package testutil builds Planner-style workbooks for tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// PlannerHeader is the header row of a Planner export, in export order.
var PlannerHeader = []any{"Task ID", "Task Name", "Bucket Name", "Progress", "Priority", "Labels", "Start date", "Due date", "Completed Date"}

// Workbook builds an XLSX with one sheet per entry of sheets. Cell values may
// be string, time.Time (stored as an Excel date), float64, int or nil
// (left empty).
func Workbook(t testing.TB, sheets map[string][][]any) []byte {
	t.Helper()

	wb := spreadsheet.New()
	for name, rows := range sheets {
		sheet := wb.AddSheet()
		sheet.SetName(name)
		for _, values := range rows {
			row := sheet.AddRow()
			for i, v := range values {
				if v == nil {
					continue
				}
				cell := row.Cell(reference.IndexToColumn(uint32(i)))
				switch val := v.(type) {
				case string:
					cell.SetString(val)
				case time.Time:
					cell.SetDate(val)
				case float64:
					cell.SetNumber(val)
				case int:
					cell.SetNumber(float64(val))
				default:
					t.Fatalf("unsupported cell value %T", v)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return buf.Bytes()
}

// TasksWorkbook builds a workbook with a "Tasks" sheet holding PlannerHeader
// followed by rows.
func TasksWorkbook(t testing.TB, rows ...[]any) []byte {
	t.Helper()
	return Workbook(t, map[string][][]any{"Tasks": append([][]any{PlannerHeader}, rows...)})
}

// TaskRow returns a row in PlannerHeader order.
func TaskRow(name, bucket, labels string, start, due, completed any) []any {
	return []any{"id-" + name, name, bucket, "Not started", "Medium", labels, start, due, completed}
}

// WriteFile writes data to name inside a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
