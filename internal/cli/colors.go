package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aerissecure/plannercal/calendar"
)

var (
	keyStyle = lipgloss.NewStyle().Bold(true)
	hexStyle = lipgloss.NewStyle().Faint(true)
)

func newColorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors <excel_file>",
		Short: "List the color assigned to each task, label or bucket",
		Args:  cobra.ExactArgs(1),
		RunE:  runColors,
	}
}

func runColors(cmd *cobra.Command, args []string) error {
	cfg, opts, log, err := setup(cmd)
	if err != nil {
		return err
	}

	g := newGenerator(cfg, opts, log)
	records, err := g.ReadFile(args[0])
	if err != nil {
		return err
	}
	p, err := g.Prepare(records)
	if err != nil {
		return err
	}
	palette := calendar.PaletteFor(p.Tasks, opts)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d colors (%s, %s)\n", palette.Len(), opts.ColorMode, opts.Algorithm)
	for _, key := range palette.Keys() {
		c := palette.Color(key)
		fmt.Fprintf(out, "%s %s %s\n", swatch(c), hexStyle.Render(c.Hex()), keyStyle.Render(displayKey(key)))
	}
	return nil
}

func swatch(c calendar.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render("    ")
}

func displayKey(key string) string {
	if key == "" {
		return "(none)"
	}
	return key
}
