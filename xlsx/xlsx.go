package xlsx

import (
	"math"
	"strings"
	"time"

	"github.com/unidoc/unioffice/spreadsheet"
)

// Planner writes dates as text in some locales and as serial numbers in
// others, so date cells are read both ways.

const dateLayout = "2006-01-02"

// serialEpoch is day zero of the 1900 date system, adjusted for Excel's
// fictitious 29 February 1900.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// findSheet returns the sheet whose name matches name, ignoring case and
// surrounding space.
func findSheet(wb *spreadsheet.Workbook, name string) (spreadsheet.Sheet, bool) {
	want := strings.TrimSpace(name)
	for _, sheet := range wb.Sheets() {
		if strings.EqualFold(strings.TrimSpace(sheet.Name()), want) {
			return sheet, true
		}
	}
	return spreadsheet.Sheet{}, false
}

// cellText returns the displayed value of a cell.
func cellText(cell spreadsheet.Cell) string {
	return strings.TrimSpace(cell.GetFormattedValue())
}

// dateText returns a date cell as text. Numeric cells are converted with the
// workbook epoch and formatted as "2006-01-02"; text cells are returned as is
// for the normalizer to parse.
func dateText(cell spreadsheet.Cell) string {
	if cell.IsNumber() {
		if t, err := cell.GetValueAsTime(); err == nil {
			return t.Format(dateLayout)
		}
		if v, err := cell.GetValueAsNumber(); err == nil {
			return serialEpoch.AddDate(0, 0, int(math.Floor(v))).Format(dateLayout)
		}
	}
	if s := strings.TrimSpace(cell.GetString()); s != "" {
		return s
	}
	return cellText(cell)
}
