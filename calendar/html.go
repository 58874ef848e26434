package calendar

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
)

// DebugHTML controls whether extra data attributes with color details are
// included in the rendered HTML output.
var DebugHTML bool

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// sanitizeColor returns the value only if it is a "#rrggbb" color.
func sanitizeColor(s string) string {
	if hexColorRe.MatchString(s) {
		return s
	}
	return ""
}

// Title returns the document heading for the grid.
func Title(g Grid) string {
	if g.SingleMonth() {
		return fmt.Sprintf("%s %d Calendar", monthName(g.Month), g.Year)
	}
	return fmt.Sprintf("Yearly Planner Calendar - %d", g.Year)
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()
}

// RenderHTML renders the grid as a self-contained, printable HTML document.
// opts.WrapText and opts.Title are the only options it reads.
func RenderHTML(g Grid, opts Options) string {
	var builder strings.Builder

	title := opts.Title
	if title == "" {
		title = Title(g)
	}
	wrapping := "wrap"
	if !opts.WrapText {
		wrapping = "nowrap"
	}
	columns := "repeat(3, 1fr)"
	gridClass := "year-grid"
	if g.SingleMonth() {
		columns = "1fr"
		gridClass += " single-month"
	}

	builder.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	builder.WriteString("<meta charset=\"UTF-8\">\n")
	builder.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	builder.WriteString(fmt.Sprintf("<title>Planner Calendar - %d</title>\n", g.Year))
	builder.WriteString(`<style>
body { font-family: sans-serif; font-size: 8px; }
`)
	builder.WriteString(fmt.Sprintf(".year-grid { display: grid; grid-template-columns: %s; gap: 20px; }\n", columns))
	builder.WriteString(`.month { border: 1px solid #ccc; padding: 5px; }
.month-title { text-align: center; font-weight: bold; font-size: 12px; margin-bottom: 5px; }
.calendar-grid { display: grid; grid-template-columns: repeat(7, 1fr); width: 100%; }
.day-header { text-align: center; font-weight: bold; background-color: #f0f0f0; font-size: 9px; padding: 2px; border: 1px solid #ddd; }
.day { border: 1px solid #ddd; vertical-align: top; height: 70px; padding: 2px; overflow: hidden; position: relative; }
.day.other-month { background-color: #f9f9f9; color: #aaa; }
.day-number { position: absolute; top: 1px; left: 1px; font-weight: bold; font-size: 9px; color: #333; }
.tasks { margin-top: 12px; line-height: 1.1; }
`)
	builder.WriteString(fmt.Sprintf(".task { display: block; white-space: %s; overflow: hidden; text-overflow: ellipsis; margin-bottom: 1px; padding: 0 1px; border-radius: 2px; border: 1px solid #ccc; color: #000; }\n", wrapping))
	builder.WriteString(`.single-month .day { height: 100px; }
.single-month .day-number { font-size: 12px; }
.single-month .day-header { font-size: 12px; }
.single-month .task { font-size: 9px; }
@media print {
  @page { size: 17in 11in landscape; margin: 0.5in; }
  body { font-size: 7pt; -webkit-print-color-adjust: exact; print-color-adjust: exact; }
  .year-grid { gap: 15px; }
  .month { page-break-inside: avoid; border: 1px solid #aaa; }
  .day { height: 65px; border: 1px solid #ccc; }
  .day-header { font-size: 8pt; padding: 1px; }
  .day-number { font-size: 8pt; }
  .task { border: 1px solid #b0dde4; font-size: 5pt; }
}
</style>
</head>
<body>
`)
	builder.WriteString(fmt.Sprintf("<h1 style=\"text-align: center;\">%s</h1>\n", html.EscapeString(title)))
	builder.WriteString(fmt.Sprintf("<div class=\"%s\">\n", gridClass))

	weekdays := g.Weekdays()
	for _, m := range g.Months {
		builder.WriteString("<div class=\"month\">\n")
		builder.WriteString(fmt.Sprintf("  <div class=\"month-title\">%s %d</div>\n", m.Month, m.Year))
		builder.WriteString("  <div class=\"calendar-grid\">\n")
		for _, wd := range weekdays {
			builder.WriteString(fmt.Sprintf("    <div class=\"day-header\">%s</div>\n", wd.String()[:3]))
		}
		for _, cell := range m.Cells {
			if cell.Blank {
				builder.WriteString("    <div class=\"day other-month\"></div>\n")
				continue
			}
			builder.WriteString(fmt.Sprintf("    <div class=\"day\" data-date=\"%s\">\n", cell.Date.Format(dateLayout)))
			builder.WriteString(fmt.Sprintf("      <div class=\"day-number\">%d</div>\n", cell.Date.Day()))
			builder.WriteString("      <div class=\"tasks\">\n")
			for _, f := range cell.Fragments {
				builder.WriteString(renderFragment(f))
			}
			builder.WriteString("      </div>\n")
			builder.WriteString("    </div>\n")
		}
		builder.WriteString("  </div>\n")
		builder.WriteString("</div>\n")
	}

	builder.WriteString("</div>\n</body>\n</html>\n")
	return builder.String()
}

func renderFragment(f Fragment) string {
	name := html.EscapeString(f.Name)
	style := ""
	if bg := sanitizeColor(f.Color.Hex()); bg != "" {
		style = fmt.Sprintf(" style=\"background-color: %s;\"", bg)
	}
	debugAttr := ""
	if DebugHTML {
		debugAttr = fmt.Sprintf(" data-color-key=\"%s\" data-hue=\"%.0f\"", html.EscapeString(f.ColorKey), f.Color.Hue)
	}
	return fmt.Sprintf("        <span class=\"task\" title=\"%s\"%s%s>%s</span>\n", name, style, debugAttr, name)
}
