package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrNoTaskDates signals that the year could not be detected from the tasks
// and the current year was used instead. It is a warning, not a failure.
var ErrNoTaskDates = errors.New("could not determine year from task start dates")

// ResolveYear picks the calendar year. An explicit year wins; otherwise the
// year of the earliest start date is used. With no tasks the year of now is
// returned together with ErrNoTaskDates.
func ResolveYear(tasks []NormalizedTask, explicit int, now time.Time) (int, error) {
	if explicit != 0 {
		return explicit, nil
	}
	if len(tasks) == 0 {
		return now.Year(), ErrNoTaskDates
	}
	earliest := tasks[0].Start
	for _, t := range tasks[1:] {
		if t.Start.Before(earliest) {
			earliest = t.Start
		}
	}
	return earliest.Year(), nil
}

// SortTasks orders tasks by start date, then display name, then end date,
// then color key.
func SortTasks(tasks []NormalizedTask) []NormalizedTask {
	sorted := append([]NormalizedTask(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		if !a.End.Equal(b.End) {
			return a.End.Before(b.End)
		}
		return a.ColorKey < b.ColorKey
	})
	return sorted
}

// BuildGrid lays tasks out on the months of year selected by opts.Month.
// Every day a task covers receives one fragment. Tasks sharing both display
// name and color key appear at most once per day.
func BuildGrid(tasks []NormalizedTask, year int, opts Options, palette *Palette) (Grid, error) {
	if err := opts.Validate(); err != nil {
		return Grid{}, err
	}
	if year < 1 || year > 9999 {
		return Grid{}, fmt.Errorf("%w, got %d", ErrInvalidYear, year)
	}
	if palette == nil {
		palette = PaletteFor(tasks, opts)
	}

	g := Grid{Year: year, Month: opts.Month, FirstWeekday: opts.FirstWeekday}
	months := []time.Month{time.Month(opts.Month)}
	if opts.Month == 0 {
		months = months[:0]
		for m := time.January; m <= time.December; m++ {
			months = append(months, m)
		}
	}

	sorted := SortTasks(tasks)
	for _, m := range months {
		g.Months = append(g.Months, buildMonth(sorted, year, m, opts.FirstWeekday, palette))
	}
	return g, nil
}

func buildMonth(tasks []NormalizedTask, year int, month time.Month, firstWeekday time.Weekday, palette *Palette) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	offset := (int(first.Weekday()) - int(firstWeekday) + 7) % 7
	total := offset + last.Day()
	rows := (total + 6) / 7

	m := Month{Year: year, Month: month, Cells: make([]DayCell, rows*7)}
	for i := range m.Cells {
		day := i - offset + 1
		if day < 1 || day > last.Day() {
			m.Cells[i] = DayCell{Blank: true}
			continue
		}
		m.Cells[i] = DayCell{Date: first.AddDate(0, 0, day-1)}
	}

	for _, t := range tasks {
		if t.End.Before(first) || t.Start.After(last) {
			continue
		}
		from, to := t.Start, t.End
		if from.Before(first) {
			from = first
		}
		if to.After(last) {
			to = last
		}
		frag := Fragment{
			Name:     t.DisplayName,
			ColorKey: t.ColorKey,
			Color:    palette.Color(t.ColorKey),
			Start:    t.Start,
			End:      t.End,
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			cell := &m.Cells[offset+d.Day()-1]
			if hasFragment(cell.Fragments, frag) {
				continue
			}
			cell.Fragments = append(cell.Fragments, frag)
		}
	}
	return m
}

func hasFragment(frags []Fragment, frag Fragment) bool {
	for _, f := range frags {
		if f.Name == frag.Name && f.ColorKey == frag.ColorKey {
			return true
		}
	}
	return false
}
