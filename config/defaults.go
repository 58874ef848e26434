package config

import (
	"os"
)

// DefaultOutput is the output file used when none is configured.
const DefaultOutput = "planner_calendar.html"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: DefaultOutput,
		Sheet:  "Tasks",
		Calendar: CalendarConfig{
			WeekStart: "sunday",
		},
		Color: ColorConfig{
			Saturation: 0.7,
			Lightness:  0.85,
		},
		Text: TextConfig{
			Wrap: true,
		},
	}
}

const defaultFile = `# plannercal configuration
# Command-line flags override the values below.

# Output HTML file
output: planner_calendar.html

# Worksheet holding the Planner tasks
sheet: Tasks

calendar:
  # Year to render (0 = earliest start date found)
  year: 0
  # Month to render: 1-12 or a month name ("" = whole year)
  month: ""
  # First day of the week: sunday or monday
  week_start: sunday
  # Page heading ("" = generated)
  title: ""

color:
  # Saturation and lightness of task colors (0.0-1.0)
  saturation: 0.7
  lightness: 0.85
  # Color by the task's label or bucket instead of its name (not both)
  by_label: false
  by_bucket: false
  # Step hues by the golden angle instead of using the plain hash hue
  alternate: false

text:
  # Wrap long task names
  wrap: true
  # Prefix task names with their labels
  prefix_labels: false
`

// WriteDefault writes the default configuration to a file
func WriteDefault(path string) error {
	return os.WriteFile(path, []byte(defaultFile), 0644)
}
