package plannercal

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aerissecure/plannercal/calendar"
	"github.com/aerissecure/plannercal/internal/testutil"
	"github.com/aerissecure/plannercal/xlsx"
)

func testGenerator(opts calendar.Options, logs *bytes.Buffer) *Generator {
	w := io.Discard
	if logs != nil {
		w = logs
	}
	g := NewGenerator(opts, slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
	g.Now = func() time.Time { return time.Date(2031, 7, 1, 12, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerateSingleTaskScenario(t *testing.T) {
	opts := calendar.DefaultOptions()
	opts.Year = 2024
	opts.Month = 1

	res, err := testGenerator(opts, nil).Generate([]calendar.TaskRecord{
		{Row: 2, Name: "A", Start: "2024-01-05", Due: "2024-01-07"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Year != 2024 || res.YearFallback {
		t.Fatalf("unexpected year %d (fallback %t)", res.Year, res.YearFallback)
	}
	jan := res.Grid.Months[0]
	want := res.Palette.Color("A")
	for _, d := range []int{5, 6, 7} {
		cell, _ := jan.Day(d)
		if len(cell.Fragments) != 1 || cell.Fragments[0].Name != "A" || cell.Fragments[0].Color != want {
			t.Errorf("Jan %d: unexpected fragments %v", d, cell.Fragments)
		}
	}
	for _, d := range []int{4, 8} {
		if cell, _ := jan.Day(d); len(cell.Fragments) != 0 {
			t.Errorf("Jan %d: expected no fragments", d)
		}
	}
	if strings.Count(res.HTML, ">A</span>") != 3 {
		t.Errorf("expected three rendered spans for A")
	}
}

func TestGenerateDetectsYear(t *testing.T) {
	res, err := testGenerator(calendar.DefaultOptions(), nil).Generate([]calendar.TaskRecord{
		{Name: "later", Start: "2024-02-01", Due: "2024-02-03"},
		{Name: "earlier", Start: "2023-12-01", Due: "2024-01-03"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Year != 2023 || len(res.Grid.Months) != 12 {
		t.Fatalf("expected full 2023 calendar, got year %d with %d months", res.Year, len(res.Grid.Months))
	}
}

func TestGenerateEmptyInputFallsBack(t *testing.T) {
	var logs bytes.Buffer
	res, err := testGenerator(calendar.DefaultOptions(), &logs).Generate([]calendar.TaskRecord{
		{Row: 2, Name: "no due", Start: "2024-01-01"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !res.YearFallback || res.Year != 2031 {
		t.Fatalf("expected fallback to 2031, got %d (%t)", res.Year, res.YearFallback)
	}
	if len(res.Report.Skipped) != 1 {
		t.Errorf("expected one skipped row, got %v", res.Report)
	}
	out := logs.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "year=2031") {
		t.Errorf("expected year fallback warning, got:\n%s", out)
	}
	if !strings.Contains(out, "row=2") || !strings.Contains(out, "due date is missing") {
		t.Errorf("expected skipped row to be logged, got:\n%s", out)
	}
}

func TestGenerateRejectsInvalidOptions(t *testing.T) {
	opts := calendar.DefaultOptions()
	opts.Month = 14
	_, err := testGenerator(opts, nil).Generate(nil)
	if !errors.Is(err, calendar.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestFromXLSX(t *testing.T) {
	data := testutil.TasksWorkbook(t,
		testutil.TaskRow("Kickoff", "Phase 1", "Meeting;", "2024-03-04", "2024-03-04", nil),
		testutil.TaskRow("Design", "Phase 1", "", "2024-03-05", "2024-03-08", "2024-03-12"),
		testutil.TaskRow("Orphan", "Phase 2", "", "2024-03-05", nil, nil),
	)
	opts := calendar.DefaultOptions()
	opts.Month = 3
	opts.ColorMode = calendar.ColorByBucket
	opts.PrefixLabels = true

	res, err := testGenerator(opts, nil).FromXLSX(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("FromXLSX failed: %v", err)
	}
	if res.Report.Kept != 2 || len(res.Report.Skipped) != 1 || res.Report.Skipped[0].Name != "Orphan" {
		t.Fatalf("unexpected report %v", res.Report)
	}
	if res.Year != 2024 {
		t.Errorf("expected 2024, got %d", res.Year)
	}
	mar := res.Grid.Months[0]
	kickoff, _ := mar.Day(4)
	if len(kickoff.Fragments) != 1 || kickoff.Fragments[0].Name != "Meeting: Kickoff" {
		t.Fatalf("unexpected Mar 4 fragments %v", kickoff.Fragments)
	}
	// Completed date extends Design to the 12th.
	design, _ := mar.Day(12)
	if len(design.Fragments) != 1 || design.Fragments[0].Name != "Design" {
		t.Fatalf("unexpected Mar 12 fragments %v", design.Fragments)
	}
	if kickoff.Fragments[0].Color != design.Fragments[0].Color {
		t.Errorf("tasks in the same bucket should share a color")
	}
	if res.Palette.Len() != 1 {
		t.Errorf("expected one bucket color, got %d", res.Palette.Len())
	}
}

func TestFromXLSXMissingSheet(t *testing.T) {
	data := testutil.Workbook(t, map[string][][]any{"Sheet1": {{"Task Name"}}})
	_, err := testGenerator(calendar.DefaultOptions(), nil).FromXLSX(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, xlsx.ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestXlsxToCalendarHTML(t *testing.T) {
	data := testutil.TasksWorkbook(t, testutil.TaskRow("Ship", "", "", "2024-07-01", "2024-07-02", nil))
	opts := calendar.DefaultOptions()
	opts.Month = 7
	html, err := XlsxToCalendarHTML(bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		t.Fatalf("XlsxToCalendarHTML failed: %v", err)
	}
	if !strings.Contains(html, "July 2024 Calendar") || strings.Count(html, ">Ship</span>") != 2 {
		t.Errorf("unexpected HTML output")
	}
}

func TestColorsStableAcrossRuns(t *testing.T) {
	records := []calendar.TaskRecord{
		{Name: "alpha", Due: "2024-01-02"},
		{Name: "beta", Due: "2024-01-03"},
	}
	for _, alg := range []calendar.HueAlgorithm{calendar.HueHash, calendar.HueGolden} {
		opts := calendar.DefaultOptions()
		opts.Algorithm = alg
		a, err := testGenerator(opts, nil).Generate(records)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		b, err := testGenerator(opts, nil).Generate([]calendar.TaskRecord{records[1], records[0]})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if a.HTML != b.HTML {
			t.Errorf("%s: output depends on input order", alg)
		}
	}
}

func TestFromFileAndWriteFile(t *testing.T) {
	path := testutil.WriteFile(t, "export.xlsx", testutil.TasksWorkbook(t,
		testutil.TaskRow("Ship", "", "", "2024-07-01", "2024-07-02", nil),
	))
	res, err := testGenerator(calendar.DefaultOptions(), nil).FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "calendar.html")
	if err := WriteFile(out, []byte(res.HTML)); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(got) != res.HTML {
		t.Errorf("written output differs")
	}
	entries, _ := os.ReadDir(filepath.Dir(out))
	if len(entries) != 1 {
		t.Errorf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "calendar.html")
	if err := WriteFile(out, []byte("x")); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("expected no output file, got %v", err)
	}
}
