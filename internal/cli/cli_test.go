package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aerissecure/plannercal/calendar"
	"github.com/aerissecure/plannercal/config"
	"github.com/aerissecure/plannercal/internal/testutil"
)

// run executes the root command with args in an isolated home and working
// directory and returns its stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func exportFile(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, "export.xlsx", testutil.TasksWorkbook(t,
		testutil.TaskRow("Kickoff", "Phase 1", "Meeting", "2024-03-04", "2024-03-04", nil),
		testutil.TaskRow("Design", "Phase 1", "", "2024-03-05", "2024-03-08", nil),
		testutil.TaskRow("Orphan", "Phase 2", "", "2024-03-05", nil, nil),
	))
}

func TestGenerate(t *testing.T) {
	input := exportFile(t)
	out := filepath.Join(t.TempDir(), "march.html")

	stdout, stderr, err := run(t, input, "-o", out, "-m", "march", "-p", "-v")
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "Successfully generated calendar HTML: "+out) {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "level=DEBUG") || !strings.Contains(stderr, "Orphan") {
		t.Errorf("expected verbose log of the skipped row, got:\n%s", stderr)
	}

	html, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	for _, want := range []string{"March 2024 Calendar", ">Meeting: Kickoff</span>", ">Design</span>"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerateConflictingColorModes(t *testing.T) {
	input := exportFile(t)
	out := filepath.Join(t.TempDir(), "calendar.html")

	_, _, err := run(t, input, "-o", out, "-l", "-b")
	if !errors.Is(err, calendar.ErrConflictingColorMode) {
		t.Fatalf("expected ErrConflictingColorMode, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("expected no output file, got %v", err)
	}
}

func TestGenerateMissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "calendar.html")
	_, _, err := run(t, filepath.Join(t.TempDir(), "missing.xlsx"), "-o", out)
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected file not found error, got %v", err)
	}
}

func TestGenerateInvalidMonth(t *testing.T) {
	_, _, err := run(t, exportFile(t), "-m", "13", "-o", filepath.Join(t.TempDir(), "x.html"))
	if !errors.Is(err, calendar.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestGenerateUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "from-config.html")
	cfg := testutil.WriteFile(t, "plannercal.yaml", []byte("output: "+out+"\ncalendar:\n  month: 3\n  title: Roadmap\n"))

	if _, stderr, err := run(t, exportFile(t), "--config", cfg); err != nil {
		t.Fatalf("generate failed: %v\n%s", err, stderr)
	}
	html, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected output at configured path: %v", err)
	}
	if !strings.Contains(string(html), "Roadmap") {
		t.Errorf("configured title not rendered")
	}
}

func TestColors(t *testing.T) {
	stdout, stderr, err := run(t, "colors", exportFile(t), "--color-by-bucket")
	if err != nil {
		t.Fatalf("colors failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "1 colors (bucket, hash)") {
		t.Errorf("unexpected header in %q", stdout)
	}
	want := calendar.ColorFor("Phase 1", 0.7, 0.85).Hex()
	if !strings.Contains(stdout, want) || !strings.Contains(stdout, "Phase 1") {
		t.Errorf("expected %s for Phase 1 in %q", want, stdout)
	}
}

func TestConfigShow(t *testing.T) {
	stdout, _, err := run(t, "config", "show", "--color-lightness", "0.5")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(stdout, "# Defaults") || !strings.Contains(stdout, "lightness: 0.5") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "output: "+config.DefaultOutput) {
		t.Errorf("expected default output in:\n%s", stdout)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plannercal.yaml")
	if _, _, err := run(t, "config", "init", path); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if _, _, err := run(t, "config", "init", path); err == nil {
		t.Error("expected error when the file exists")
	}
	if _, _, err := run(t, "config", "init", path, "--force"); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "plannercal test" {
		t.Errorf("unexpected version output %q", stdout)
	}
}
