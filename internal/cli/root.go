package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aerissecure/plannercal"
	"github.com/aerissecure/plannercal/calendar"
	"github.com/aerissecure/plannercal/config"
)

// Execute runs the root command
func Execute(version string) error {
	cmd := newRootCmd(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

func newRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "plannercal <excel_file>",
		Short: "Generate an HTML calendar from a Microsoft Planner Excel export",
		Long: `plannercal reads the 'Tasks' sheet of a Microsoft Planner Excel export and
writes a static, printable HTML calendar with one colored entry per task and day.

Settings are read from --config, or from ./.plannercal.yaml and
~/.plannercal/config.yaml when present. Flags override file values.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runGenerate,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	addConfigFlags(root.PersistentFlags())
	root.Flags().StringP("output", "o", config.DefaultOutput, "Output HTML file")

	root.AddCommand(newColorsCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd(version))
	return root
}

// addConfigFlags registers the flags shared by every command that reads a
// Planner export. Their names are the keys of config.FlagKeys.
func addConfigFlags(fs *pflag.FlagSet) {
	d := config.DefaultConfig()
	fs.String("config", "", "Config file (default ./.plannercal.yaml, then ~/.plannercal/config.yaml)")
	fs.BoolP("verbose", "v", false, "Enable debug logging")
	fs.String("sheet", d.Sheet, "Worksheet holding the tasks")
	fs.IntP("year", "y", 0, "Year for the calendar (default: earliest start date)")
	fs.StringP("month", "m", "", "Generate a single month (1-12 or month name)")
	fs.String("week-start", d.Calendar.WeekStart, "First day of the week (sunday or monday)")
	fs.String("title", "", "Page heading (default: generated)")
	fs.Bool(config.NoWrapFlag, false, "Disable text wrapping for task names")
	fs.Float64("color-saturation", d.Color.Saturation, "Saturation for task colors (0.0-1.0)")
	fs.Float64("color-lightness", d.Color.Lightness, "Lightness for task colors (0.0-1.0)")
	fs.BoolP("color-by-label", "l", false, "Color tasks by their label instead of name")
	fs.BoolP("color-by-bucket", "b", false, "Color tasks by their bucket instead of name")
	fs.BoolP("prefix-labels", "p", false, "Prefix task names with their labels")
	fs.Bool("alternate-colors", false, "Use golden-angle hues instead of plain hash hues")
}

// newLogger returns a text logger on w, at debug level when verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := new(slog.LevelVar)
	if verbose {
		level.Set(slog.LevelDebug)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setup is the shared prologue of the commands: it loads the configuration,
// resolves the calendar options and builds the logger. Option errors, such
// as conflicting color modes, are returned before any input is read.
func setup(cmd *cobra.Command) (*config.Config, calendar.Options, *slog.Logger, error) {
	fs := cmd.Flags()
	verbose, _ := fs.GetBool("verbose")
	log := newLogger(cmd.ErrOrStderr(), verbose)

	path, _ := fs.GetString("config")
	cfg, files, err := config.Load(path, fs)
	if err != nil {
		return nil, calendar.Options{}, nil, err
	}
	for _, f := range files {
		log.Debug("loaded config", "path", f)
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, calendar.Options{}, nil, err
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}
	return cfg, opts, log, nil
}

func newGenerator(cfg *config.Config, opts calendar.Options, log *slog.Logger) *plannercal.Generator {
	g := plannercal.NewGenerator(opts, log)
	if cfg.Sheet != "" {
		g.Sheet = cfg.Sheet
	}
	return g
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, opts, log, err := setup(cmd)
	if err != nil {
		return err
	}

	input := args[0]
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("file not found at %s", input)
	}

	res, err := newGenerator(cfg, opts, log).FromFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	if err := plannercal.WriteFile(cfg.Output, []byte(res.HTML)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully generated calendar HTML: %s\n", cfg.Output)
	return nil
}
