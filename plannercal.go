// Package plannercal converts a Microsoft Planner Excel export into a static,
// printable HTML calendar.
package plannercal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aerissecure/plannercal/calendar"
	"github.com/aerissecure/plannercal/xlsx"
)

// Result is the outcome of one conversion.
type Result struct {
	HTML    string
	Grid    calendar.Grid
	Report  calendar.Report
	Palette *calendar.Palette
	Year    int
	// YearFallback is set when no task had a start date and the current
	// year was used.
	YearFallback bool
}

// Generator runs the conversion pipeline with one option set.
type Generator struct {
	Options calendar.Options
	Sheet   string // defaults to xlsx.SheetName
	Logger  *slog.Logger
	Now     func() time.Time
}

// NewGenerator returns a Generator for opts that logs to logger, or to
// slog.Default() when logger is nil.
func NewGenerator(opts calendar.Options, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{Options: opts, Sheet: xlsx.SheetName, Logger: logger, Now: time.Now}
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

// Prepared holds the normalized tasks of a run and the resolved year.
type Prepared struct {
	Tasks        []calendar.NormalizedTask
	Report       calendar.Report
	Year         int
	YearFallback bool
}

// Prepare normalizes records and resolves the calendar year, logging skipped
// rows and the year fallback.
func (g *Generator) Prepare(records []calendar.TaskRecord) (Prepared, error) {
	if err := g.Options.Validate(); err != nil {
		return Prepared{}, err
	}
	log := g.logger()

	var p Prepared
	p.Tasks, p.Report = calendar.Normalize(records, g.Options)
	for _, s := range p.Report.Skipped {
		log.Debug("skipping row", "row", s.Row, "task", s.Name, "reason", s.Reason)
	}
	if len(p.Report.Skipped) > 0 {
		log.Info("skipped rows", "skipped", len(p.Report.Skipped), "total", p.Report.Total)
	}

	year, err := calendar.ResolveYear(p.Tasks, g.Options.Year, g.now())
	switch {
	case errors.Is(err, calendar.ErrNoTaskDates):
		p.YearFallback = true
		log.Warn("could not determine year from 'Start date', defaulting to current year", "year", year)
	case err != nil:
		return p, err
	}
	p.Year = year
	return p, nil
}

// Generate lays out and renders records.
func (g *Generator) Generate(records []calendar.TaskRecord) (Result, error) {
	p, err := g.Prepare(records)
	if err != nil {
		return Result{Report: p.Report}, err
	}

	palette := calendar.PaletteFor(p.Tasks, g.Options)
	grid, err := calendar.BuildGrid(p.Tasks, p.Year, g.Options, palette)
	if err != nil {
		return Result{Report: p.Report}, fmt.Errorf("building calendar: %w", err)
	}
	g.logger().Info("generating calendar", "year", p.Year, "month", g.Options.Month, "tasks", p.Report.Kept, "colors", palette.Len())

	return Result{
		HTML:         calendar.RenderHTML(grid, g.Options),
		Grid:         grid,
		Report:       p.Report,
		Palette:      palette,
		Year:         p.Year,
		YearFallback: p.YearFallback,
	}, nil
}

// ReadXLSX reads task records from r/size.
func (g *Generator) ReadXLSX(r io.ReaderAt, size int64) ([]calendar.TaskRecord, error) {
	sheet := g.Sheet
	if sheet == "" {
		sheet = xlsx.SheetName
	}
	ts, err := xlsx.ReadTasksSheet(r, size, sheet)
	if err != nil {
		return nil, err
	}
	g.logger().Debug("read tasks sheet", "sheet", ts.Name, "header_row", ts.HeaderRow, "rows", len(ts.Records))
	return ts.Records, nil
}

// FromXLSX reads, lays out and renders the tasks in r/size.
func (g *Generator) FromXLSX(r io.ReaderAt, size int64) (Result, error) {
	records, err := g.ReadXLSX(r, size)
	if err != nil {
		return Result{}, err
	}
	return g.Generate(records)
}

// XlsxToCalendarHTML converts the Planner export in r/size to HTML using
// opts and the default logger.
func XlsxToCalendarHTML(r io.ReaderAt, size int64, opts calendar.Options) (string, error) {
	res, err := NewGenerator(opts, nil).FromXLSX(r, size)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}
