package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ColorMode selects which task field a color is derived from.
type ColorMode int

const (
	ColorByName ColorMode = iota
	ColorByLabel
	ColorByBucket
)

func (m ColorMode) String() string {
	switch m {
	case ColorByLabel:
		return "label"
	case ColorByBucket:
		return "bucket"
	default:
		return "name"
	}
}

// ParseColorMode parses "name", "label" or "bucket".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return ColorByName, nil
	case "label", "labels":
		return ColorByLabel, nil
	case "bucket":
		return ColorByBucket, nil
	}
	return ColorByName, fmt.Errorf("unknown color mode %q (want name, label or bucket)", s)
}

// HueAlgorithm selects how hues are assigned to color keys.
type HueAlgorithm int

const (
	// HueHash derives each hue from the key's hash alone.
	HueHash HueAlgorithm = iota
	// HueGolden steps around the wheel by the golden angle, as many times as
	// the key's hash hue.
	HueGolden
)

func (a HueAlgorithm) String() string {
	if a == HueGolden {
		return "golden"
	}
	return "hash"
}

var (
	// ErrConflictingColorMode is returned when coloring by label and by bucket
	// are both requested.
	ErrConflictingColorMode = errors.New("cannot color by label and by bucket at the same time")
	ErrInvalidMonth         = errors.New("month must be between 1 and 12")
	ErrInvalidYear          = errors.New("year must be between 1 and 9999")
)

// ResolveColorMode turns the two mutually exclusive CLI switches into a mode.
func ResolveColorMode(byLabel, byBucket bool) (ColorMode, error) {
	switch {
	case byLabel && byBucket:
		return ColorByName, ErrConflictingColorMode
	case byLabel:
		return ColorByLabel, nil
	case byBucket:
		return ColorByBucket, nil
	}
	return ColorByName, nil
}

// Options is the immutable option set consumed by the layout and color engine.
type Options struct {
	Year         int // 0 = detect from the earliest start date
	Month        int // 0 = whole year
	Saturation   float64
	Lightness    float64
	ColorMode    ColorMode
	PrefixLabels bool
	Algorithm    HueAlgorithm
	FirstWeekday time.Weekday
	WrapText     bool // rendering only
	Title        string
}

// DefaultOptions returns the option set used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Saturation:   0.7,
		Lightness:    0.85,
		ColorMode:    ColorByName,
		Algorithm:    HueHash,
		FirstWeekday: time.Sunday,
		WrapText:     true,
	}
}

// Validate checks the option set. Saturation and lightness are not rejected;
// they are clamped to [0, 1] when colors are derived.
func (o Options) Validate() error {
	if o.Month < 0 || o.Month > 12 {
		return fmt.Errorf("%w, got %d", ErrInvalidMonth, o.Month)
	}
	if o.Year < 0 || o.Year > 9999 {
		return fmt.Errorf("%w, got %d", ErrInvalidYear, o.Year)
	}
	if o.FirstWeekday != time.Sunday && o.FirstWeekday != time.Monday {
		return fmt.Errorf("week must start on Sunday or Monday, got %s", o.FirstWeekday)
	}
	if o.ColorMode < ColorByName || o.ColorMode > ColorByBucket {
		return fmt.Errorf("unknown color mode %d", o.ColorMode)
	}
	return nil
}

func (o Options) String() string {
	return fmt.Sprintf("Year: %d, Month: %d, Saturation: %.2f, Lightness: %.2f, ColorMode: %s, PrefixLabels: %t, Algorithm: %s, FirstWeekday: %s, WrapText: %t",
		o.Year, o.Month, o.Saturation, o.Lightness, o.ColorMode, o.PrefixLabels, o.Algorithm, o.FirstWeekday, o.WrapText)
}
