package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aerissecure/plannercal/calendar"
)

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"output":           "output",
	"sheet":            "sheet",
	"year":             "calendar.year",
	"month":            "calendar.month",
	"week-start":       "calendar.week_start",
	"title":            "calendar.title",
	"color-saturation": "color.saturation",
	"color-lightness":  "color.lightness",
	"color-by-label":   "color.by_label",
	"color-by-bucket":  "color.by_bucket",
	"alternate-colors": "color.alternate",
	"prefix-labels":    "text.prefix_labels",
}

// NoWrapFlag is the inverted flag for text.wrap.
const NoWrapFlag = "no-wrap-text"

// Load merges the defaults, the configuration file(s) and the changed flags,
// in increasing order of precedence. If path is empty the global file and
// then the project file are read when they exist; otherwise only path is
// read and it must exist. It returns the files that were read.
func Load(path string, flags *pflag.FlagSet) (*Config, []string, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig())

	var loaded []string
	if path != "" {
		if err := readFile(v, path, false); err != nil {
			return nil, nil, err
		}
		loaded = append(loaded, path)
	} else {
		for _, p := range []string{GlobalConfigPath(), ProjectConfigPath()} {
			if p == "" {
				continue
			}
			err := readFile(v, p, len(loaded) > 0)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, nil, err
			}
			loaded = append(loaded, p)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, nil, err
				}
			}
		}
		if flags.Changed(NoWrapFlag) {
			noWrap, err := flags.GetBool(NoWrapFlag)
			if err != nil {
				return nil, nil, err
			}
			v.Set("text.wrap", !noWrap)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, loaded, nil
}

func readFile(v *viper.Viper, path string, merge bool) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	v.SetConfigFile(path)
	var err error
	if merge {
		err = v.MergeInConfig()
	} else {
		err = v.ReadInConfig()
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("output", cfg.Output)
	v.SetDefault("sheet", cfg.Sheet)
	v.SetDefault("calendar.year", cfg.Calendar.Year)
	v.SetDefault("calendar.month", cfg.Calendar.Month)
	v.SetDefault("calendar.week_start", cfg.Calendar.WeekStart)
	v.SetDefault("calendar.title", cfg.Calendar.Title)
	v.SetDefault("color.saturation", cfg.Color.Saturation)
	v.SetDefault("color.lightness", cfg.Color.Lightness)
	v.SetDefault("color.by_label", cfg.Color.ByLabel)
	v.SetDefault("color.by_bucket", cfg.Color.ByBucket)
	v.SetDefault("color.alternate", cfg.Color.Alternate)
	v.SetDefault("text.wrap", cfg.Text.Wrap)
	v.SetDefault("text.prefix_labels", cfg.Text.PrefixLabels)
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".plannercal", "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".plannercal.yaml")
}

// Options validates the configuration and converts it to calendar options.
func (c *Config) Options() (calendar.Options, error) {
	mode, err := calendar.ResolveColorMode(c.Color.ByLabel, c.Color.ByBucket)
	if err != nil {
		return calendar.Options{}, err
	}
	month, err := ParseMonth(c.Calendar.Month)
	if err != nil {
		return calendar.Options{}, err
	}
	weekStart, err := ParseWeekStart(c.Calendar.WeekStart)
	if err != nil {
		return calendar.Options{}, err
	}

	opts := calendar.Options{
		Year:         c.Calendar.Year,
		Month:        month,
		Saturation:   c.Color.Saturation,
		Lightness:    c.Color.Lightness,
		ColorMode:    mode,
		PrefixLabels: c.Text.PrefixLabels,
		Algorithm:    calendar.HueHash,
		FirstWeekday: weekStart,
		WrapText:     c.Text.Wrap,
		Title:        c.Calendar.Title,
	}
	if c.Color.Alternate {
		opts.Algorithm = calendar.HueGolden
	}
	return opts, opts.Validate()
}

// Warnings returns non-fatal problems with the configuration.
func (c *Config) Warnings() []string {
	var w []string
	if c.Color.Saturation < 0 || c.Color.Saturation > 1 {
		w = append(w, fmt.Sprintf("color saturation %v outside 0.0-1.0, clamping", c.Color.Saturation))
	}
	if c.Color.Lightness < 0 || c.Color.Lightness > 1 {
		w = append(w, fmt.Sprintf("color lightness %v outside 0.0-1.0, clamping", c.Color.Lightness))
	}
	return w
}

// ParseMonth accepts "" (whole year), a number 1-12, or an English month
// name or three-letter abbreviation.
func ParseMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w, got %d", calendar.ErrInvalidMonth, n)
		}
		return n, nil
	}
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return int(m), nil
		}
	}
	return 0, fmt.Errorf("invalid month name: %s (valid month names are January through December)", s)
}

// ParseWeekStart accepts "sunday" or "monday" (or their abbreviations).
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sun", "sunday":
		return time.Sunday, nil
	case "mon", "monday":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("week start must be sunday or monday, got %q", s)
}
