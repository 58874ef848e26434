package xlsx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aerissecure/plannercal/calendar"
)

// Intermediate representation of a Planner "Tasks" sheet.

// SheetName is the worksheet Planner exports tasks to.
const SheetName = "Tasks"

// Header names as exported by Planner. Matching is case-insensitive.
const (
	HeaderTaskName  = "Task Name"
	HeaderStartDate = "Start date"
	HeaderDueDate   = "Due date"
	HeaderLabels    = "Labels"
	HeaderBucket    = "Bucket Name"
	HeaderCompleted = "Completed Date"
)

// headerAliases maps a normalized header to the field it fills.
var headerAliases = map[string]string{
	"task name":      HeaderTaskName,
	"start date":     HeaderStartDate,
	"due date":       HeaderDueDate,
	"labels":         HeaderLabels,
	"label":          HeaderLabels,
	"bucket name":    HeaderBucket,
	"bucket":         HeaderBucket,
	"completed date": HeaderCompleted,
}

var requiredHeaders = []string{HeaderTaskName, HeaderStartDate, HeaderDueDate}

// ErrSheetNotFound is returned when the workbook has no sheet of the
// requested name.
var ErrSheetNotFound = errors.New("worksheet not found")

// MissingColumnsError lists required headers absent from the sheet.
type MissingColumnsError struct {
	Sheet   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns in %q sheet: %s", e.Sheet, strings.Join(e.Columns, ", "))
}

// Columns holds the zero-based column index of each known header, or -1.
type Columns map[string]int

// Index returns the column of header, or -1 if absent.
func (c Columns) Index(header string) int {
	if idx, ok := c[header]; ok {
		return idx
	}
	return -1
}

func (c Columns) String() string {
	parts := make([]string, 0, len(c))
	for _, h := range []string{HeaderTaskName, HeaderStartDate, HeaderDueDate, HeaderLabels, HeaderBucket, HeaderCompleted} {
		parts = append(parts, fmt.Sprintf("%s: %d", h, c.Index(h)))
	}
	return strings.Join(parts, ", ")
}

// TaskSheet is the parsed content of the tasks worksheet.
type TaskSheet struct {
	Name      string
	HeaderRow int // 1-based
	Columns   Columns
	Records   []calendar.TaskRecord
}

func (s TaskSheet) String() string {
	return fmt.Sprintf("Name: %s, HeaderRow: %d, Columns: {%s}, Records: %d", s.Name, s.HeaderRow, s.Columns, len(s.Records))
}
