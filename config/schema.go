package config

// Config represents the full plannercal configuration
type Config struct {
	// Output HTML file
	Output string `yaml:"output" mapstructure:"output"`

	// Sheet holding the Planner tasks
	Sheet string `yaml:"sheet" mapstructure:"sheet"`

	// Calendar scope
	Calendar CalendarConfig `yaml:"calendar" mapstructure:"calendar"`

	// Task colors
	Color ColorConfig `yaml:"color" mapstructure:"color"`

	// Task text rendering
	Text TextConfig `yaml:"text" mapstructure:"text"`
}

// CalendarConfig selects the year and month to render
type CalendarConfig struct {
	Year      int    `yaml:"year" mapstructure:"year"`
	Month     string `yaml:"month" mapstructure:"month"` // number or English month name
	WeekStart string `yaml:"week_start" mapstructure:"week_start"`
	Title     string `yaml:"title" mapstructure:"title"`
}

// ColorConfig configures color derivation
type ColorConfig struct {
	Saturation float64 `yaml:"saturation" mapstructure:"saturation"`
	Lightness  float64 `yaml:"lightness" mapstructure:"lightness"`
	ByLabel    bool    `yaml:"by_label" mapstructure:"by_label"`
	ByBucket   bool    `yaml:"by_bucket" mapstructure:"by_bucket"`
	Alternate  bool    `yaml:"alternate" mapstructure:"alternate"`
}

// TextConfig configures how task names are shown
type TextConfig struct {
	Wrap         bool `yaml:"wrap" mapstructure:"wrap"`
	PrefixLabels bool `yaml:"prefix_labels" mapstructure:"prefix_labels"`
}
