package calendar

import (
	"strconv"
	"strings"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// DefaultFormat renders dates for calendars that declare no default of their
// own.
const DefaultFormat = "{month-name} {day-of-month}"

// cycleSuffixes maps format token endings to cycle readings, longest first so
// {moon-period-day} never parses as the period of a cycle named "moon-day".
var cycleSuffixes = []string{"-period-day", "-number", "-period", "-day"}

// Format renders one absolute day through the named format. An empty name
// selects the default.
func (c *Calendar) Format(name string, absolute int) (string, error) {
	if name == "" {
		name = "default"
	}
	template, ok := c.Formats[name]
	if !ok {
		return "", lorerr.NotFoundf("calendar %q has no format named %q", c.Name, name)
	}
	date, err := c.Resolve(absolute)
	if err != nil {
		return "", err
	}
	return date.Render(template)
}

// Render substitutes every brace token in template with the matching date
// part. Text outside braces passes through verbatim.
func (d *Date) Render(template string) (string, error) {
	var out strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:open])
		rest = rest[open+1:]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return "", lorerr.MissingDatePartf("unclosed date part in format %q", template)
		}
		token := rest[:end]
		value, ok := d.Part(token)
		if !ok {
			return "", lorerr.MissingDatePartf("unknown date part %q", token)
		}
		out.WriteString(value)
		rest = rest[end+1:]
	}
}

// Part resolves one format token against the date. Cycle tokens are the
// lower-cased cycle name plus -number, -day, -period or -period-day.
func (d *Date) Part(token string) (string, bool) {
	switch token {
	case "year":
		return strconv.Itoa(d.Year), true
	case "day-of-year":
		return strconv.Itoa(d.DayOfYear), true
	case "day-of-month":
		return strconv.Itoa(d.DayOfMonth), true
	case "month-name":
		return d.Month, true
	case "month-number":
		return strconv.Itoa(d.MonthNumber), true
	}
	for _, suffix := range cycleSuffixes {
		name, ok := strings.CutSuffix(token, suffix)
		if !ok {
			continue
		}
		point, ok := d.Cycles[name]
		if !ok {
			continue
		}
		switch suffix {
		case "-number":
			return strconv.Itoa(point.Number), true
		case "-day":
			return strconv.Itoa(point.Day), true
		case "-period":
			return point.Period, true
		case "-period-day":
			return strconv.Itoa(point.PeriodDay), true
		}
	}
	return "", false
}
