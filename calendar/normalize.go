package calendar

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Layouts accepted for date cells stored as text. Time of day is dropped.
var dateLayouts = []string{
	dateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
}

var (
	ErrMissingName    = errors.New("task name is empty")
	ErrMissingDueDate = errors.New("due date is missing")
	ErrUnparsableDate = errors.New("no parsable due or completed date")
	ErrStartAfterEnd  = errors.New("start date is after the effective end date")
)

// RowResult is the outcome of validating a single record. Exactly one of
// Task and Err is meaningful.
type RowResult struct {
	Record TaskRecord
	Task   NormalizedTask
	Err    error
}

// OK reports whether the row produced a task.
func (r RowResult) OK() bool {
	return r.Err == nil
}

// ParseDate parses a date cell. Empty input returns ok == false.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// NormalizeLabels splits Planner's ";"-separated label list and rejoins the
// non-empty labels with ", ".
func NormalizeLabels(s string) string {
	var labels []string
	for _, l := range strings.Split(s, ";") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return strings.Join(labels, ", ")
}

// NormalizeRecord validates one record.
//
// The effective end date is the completed date when it parses, otherwise the
// due date. A missing or unparsable start date makes a single-day task. Rows
// whose start falls after the effective end are dropped.
func NormalizeRecord(rec TaskRecord, opts Options) RowResult {
	res := RowResult{Record: rec}

	name := strings.TrimSpace(rec.Name)
	if name == "" {
		res.Err = ErrMissingName
		return res
	}
	if strings.TrimSpace(rec.Due) == "" {
		res.Err = ErrMissingDueDate
		return res
	}

	end, ok := ParseDate(rec.Completed)
	if !ok {
		end, ok = ParseDate(rec.Due)
	}
	if !ok {
		res.Err = ErrUnparsableDate
		return res
	}

	start, ok := ParseDate(rec.Start)
	if !ok {
		start = end
	}
	if start.After(end) {
		res.Err = ErrStartAfterEnd
		return res
	}

	labels := NormalizeLabels(rec.Labels)
	bucket := strings.TrimSpace(rec.Bucket)

	key := name
	switch opts.ColorMode {
	case ColorByLabel:
		if labels != "" {
			key = labels
		}
	case ColorByBucket:
		if bucket != "" {
			key = bucket
		}
	}

	display := name
	if opts.PrefixLabels && labels != "" {
		display = labels + ": " + name
	}

	res.Task = NormalizedTask{
		Row:         rec.Row,
		Name:        name,
		DisplayName: display,
		ColorKey:    key,
		Start:       start,
		End:         end,
	}
	return res
}

// Normalize validates every record, returning the kept tasks in input order
// and a report of the dropped rows.
func Normalize(records []TaskRecord, opts Options) ([]NormalizedTask, Report) {
	rep := Report{Total: len(records)}
	tasks := make([]NormalizedTask, 0, len(records))
	for _, rec := range records {
		res := NormalizeRecord(rec, opts)
		if !res.OK() {
			rep.Skipped = append(rep.Skipped, Skip{Row: rec.Row, Name: strings.TrimSpace(rec.Name), Reason: res.Err})
			continue
		}
		tasks = append(tasks, res.Task)
	}
	rep.Kept = len(tasks)
	return tasks, rep
}
