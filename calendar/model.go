package calendar

import (
	"fmt"
	"time"
)

// Intermediate representation for the calendar.

// Dates are plain calendar days stored as UTC midnight.

// TaskRecord is one raw row of the Planner "Tasks" sheet. Date fields hold the
// cell text as read; the reader converts numeric Excel dates to "2006-01-02".
type TaskRecord struct {
	Row       int // 1-based sheet row, 0 if unknown
	Name      string
	Labels    string // ";"-separated as exported by Planner
	Bucket    string
	Start     string
	Due       string
	Completed string
}

func (r TaskRecord) String() string {
	return fmt.Sprintf("Row: %d, Name: %q, Labels: %q, Bucket: %q, Start: %q, Due: %q, Completed: %q", r.Row, r.Name, r.Labels, r.Bucket, r.Start, r.Due, r.Completed)
}

// NormalizedTask is a validated task with a resolved date interval.
type NormalizedTask struct {
	Row         int
	Name        string
	DisplayName string // Name, optionally prefixed with labels
	ColorKey    string
	Start       time.Time
	End         time.Time // inclusive
}

// Days returns the inclusive length of the task in days.
func (t NormalizedTask) Days() int {
	return int(t.End.Sub(t.Start).Hours()/24) + 1
}

func (t NormalizedTask) String() string {
	return fmt.Sprintf("Name: %q, DisplayName: %q, ColorKey: %q, Start: %s, End: %s", t.Name, t.DisplayName, t.ColorKey, t.Start.Format(dateLayout), t.End.Format(dateLayout))
}

// Color is a resolved HSL color and its RGB form.
type Color struct {
	Hue        float64 // degrees in [0, 360)
	Saturation float64 // [0, 1]
	Lightness  float64 // [0, 1]
	R, G, B    uint8
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CSS returns the color as a CSS rgb() value.
func (c Color) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("Hue: %.1f, Saturation: %.2f, Lightness: %.2f, Hex: %s", c.Hue, c.Saturation, c.Lightness, c.Hex())
}

// Fragment is the part of a task span that falls on one day.
type Fragment struct {
	Name     string // display name
	ColorKey string
	Color    Color
	Start    time.Time
	End      time.Time
}

// DayCell is one cell of a month grid. Blank cells pad the grid before the
// first and after the last day of the month.
type DayCell struct {
	Date      time.Time // zero for blank cells
	Blank     bool
	Fragments []Fragment
}

func (d DayCell) String() string {
	if d.Blank {
		return "Blank"
	}
	return fmt.Sprintf("Date: %s, Fragments: %d", d.Date.Format(dateLayout), len(d.Fragments))
}

// Month holds the day cells of one month; len(Cells) is a multiple of 7.
type Month struct {
	Year  int
	Month time.Month
	Cells []DayCell
}

// Day returns the cell for day-of-month d, or false if d is out of range.
func (m Month) Day(d int) (DayCell, bool) {
	for _, c := range m.Cells {
		if !c.Blank && c.Date.Day() == d {
			return c, true
		}
	}
	return DayCell{}, false
}

// Weeks splits the cells into rows of seven.
func (m Month) Weeks() [][]DayCell {
	weeks := make([][]DayCell, 0, len(m.Cells)/7)
	for i := 0; i+7 <= len(m.Cells); i += 7 {
		weeks = append(weeks, m.Cells[i:i+7])
	}
	return weeks
}

func (m Month) String() string {
	return fmt.Sprintf("Year: %d, Month: %s, Cells: %d", m.Year, m.Month, len(m.Cells))
}

// Grid is the top-level layout: one month, or all twelve months of a year.
type Grid struct {
	Year         int
	Month        int // 1-12, or 0 for the whole year
	FirstWeekday time.Weekday
	Months       []Month
}

// SingleMonth reports whether the grid covers a single month.
func (g Grid) SingleMonth() bool {
	return g.Month != 0
}

// Weekdays returns the weekday header order for the grid.
func (g Grid) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = (g.FirstWeekday + time.Weekday(i)) % 7
	}
	return days
}

func (g Grid) String() string {
	return fmt.Sprintf("Year: %d, Month: %d, FirstWeekday: %s, Months: %d", g.Year, g.Month, g.FirstWeekday, len(g.Months))
}

// Skip records a dropped input row.
type Skip struct {
	Row    int
	Name   string
	Reason error
}

// Report summarises a normalization pass.
type Report struct {
	Total   int
	Kept    int
	Skipped []Skip
}

func (r Report) String() string {
	return fmt.Sprintf("Total: %d, Kept: %d, Skipped: %d", r.Total, r.Kept, len(r.Skipped))
}
