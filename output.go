package plannercal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aerissecure/plannercal/calendar"
)

// WriteFile writes data to path through a temporary file in the same
// directory, so path is either fully written or left untouched.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the task records of the Planner export at path.
func (g *Generator) ReadFile(path string) ([]calendar.TaskRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return g.ReadXLSX(f, info.Size())
}

// FromFile reads, lays out and renders the Planner export at path.
func (g *Generator) FromFile(path string) (Result, error) {
	records, err := g.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return g.Generate(records)
}
