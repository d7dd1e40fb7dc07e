package calendar

import (
	"strconv"
	"strings"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
	"github.com/wrenfold/loresmith/internal/markdown"
)

// Compile turns a calendar document into a computable Calendar. The root body
// names the year shape, child sections fill in months, deviations, cycles and
// display formats.
func Compile(doc *markdown.Document) (*Calendar, error) {
	root := doc.Root
	var (
		fractional bool
		length     float64
		overage    string
	)
	for _, line := range root.Body {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "**days in year**"):
			value := afterMarker(line)
			if strings.Contains(value, ".") {
				parsed, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, lorerr.InvalidCalendarSpecf("bad days in year %q", value).
						WithMeta("document", doc.Key)
				}
				fractional = true
				length = parsed
			} else if _, err := strconv.Atoi(value); err != nil {
				return nil, lorerr.InvalidCalendarSpecf("bad days in year %q", value).
					WithMeta("document", doc.Key)
			}
		case strings.HasPrefix(lower, "**overage month**"):
			overage = afterMarker(line)
		}
	}

	months, err := parseMonths(root.Child("Months"))
	if err != nil {
		return nil, err.WithMeta("document", doc.Key)
	}

	cal := &Calendar{
		Name:    doc.Title(),
		Months:  months,
		Cycles:  map[string]Cycle{},
		Formats: map[string]string{},
	}

	if fractional {
		if length < 1 {
			return nil, lorerr.InvalidCalendarSpecf("days in year must be at least 1, got %v", length).
				WithMeta("document", doc.Key)
		}
		if overage == "" {
			return nil, lorerr.InvalidCalendarSpecf("fractional year needs an overage month").
				WithMeta("document", doc.Key)
		}
		if !hasMonth(months, overage) {
			return nil, lorerr.InvalidCalendarSpecf("overage month %q is not a declared month", overage).
				WithMeta("document", doc.Key)
		}
		cal.Years = &FractionalYear{Length: length, Overage: overage}
	} else {
		deviations, err := parseDeviations(root.Child("Deviations"), months)
		if err != nil {
			return nil, err.WithMeta("document", doc.Key)
		}
		cal.Years = &DeviationYear{Deviations: deviations}
	}

	if cycles := root.Child("Cycles"); cycles != nil {
		for _, child := range cycles.Children {
			cycle, err := parseCycle(child)
			if err != nil {
				return nil, err.WithMeta("document", doc.Key)
			}
			cal.Cycles[strings.ToLower(child.Title)] = cycle
		}
	}

	if formats := root.Child("Formats"); formats != nil {
		for _, line := range formats.Body {
			if !strings.Contains(line, "**") {
				continue
			}
			parts := strings.Split(line, "**")
			if len(parts) != 3 {
				return nil, lorerr.InvalidCalendarSpecf("bad format line %q", line).
					WithMeta("document", doc.Key)
			}
			cal.Formats[parts[1]] = strings.TrimSpace(parts[2])
		}
	}
	if _, ok := cal.Formats["default"]; !ok {
		cal.Formats["default"] = DefaultFormat
	}
	return cal, nil
}

// afterMarker returns the trimmed text following the last ** on the line.
func afterMarker(line string) string {
	return strings.TrimSpace(line[strings.LastIndex(line, "**")+2:])
}

func hasMonth(months []Month, name string) bool {
	for _, month := range months {
		if month.Name == name {
			return true
		}
	}
	return false
}

// parseMonths reads the (name, days) pipe table that fixes canonical month
// order. Rows count only after the |---- separator.
func parseMonths(sec *markdown.Section) ([]Month, *lorerr.Error) {
	if sec == nil {
		return nil, lorerr.InvalidCalendarSpecf("calendar defines no months")
	}
	var months []Month
	started := false
	for _, line := range sec.Body {
		switch {
		case strings.HasPrefix(line, "|----"):
			started = true
		case started && strings.HasPrefix(line, "|"):
			cells := strings.Split(line, "|")
			if len(cells) < 3 {
				return nil, lorerr.InvalidCalendarSpecf("bad month row %q", line)
			}
			name := strings.TrimSpace(cells[1])
			days, err := strconv.Atoi(strings.TrimSpace(cells[2]))
			if err != nil || days < 1 || name == "" {
				return nil, lorerr.InvalidCalendarSpecf("bad month row %q", line)
			}
			months = putMonth(months, name, days)
		}
	}
	if len(months) == 0 {
		return nil, lorerr.InvalidCalendarSpecf("calendar defines no months")
	}
	return months, nil
}

// putMonth appends a month, or updates its days when the name already exists.
func putMonth(months []Month, name string, days int) []Month {
	for i := range months {
		if months[i].Name == name {
			months[i].Days = days
			return months
		}
	}
	return append(months, Month{Name: name, Days: days})
}

// parseDeviations reads comma lines of month, new days, modulus and one or
// more remainders. Lines without a comma are prose and skip.
func parseDeviations(sec *markdown.Section, months []Month) ([]Deviation, *lorerr.Error) {
	if sec == nil {
		return nil, nil
	}
	var deviations []Deviation
	for _, line := range sec.Body {
		if !strings.Contains(line, ",") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 4 {
			return nil, lorerr.InvalidCalendarSpecf("bad deviation line %q", line)
		}
		dev := Deviation{Month: strings.TrimSpace(fields[0])}
		numbers := make([]int, 0, len(fields)-1)
		for _, field := range fields[1:] {
			number, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, lorerr.InvalidCalendarSpecf("bad deviation line %q", line)
			}
			numbers = append(numbers, number)
		}
		dev.Days, dev.Modulus, dev.Remainders = numbers[0], numbers[1], numbers[2:]
		if dev.Days < 1 || dev.Modulus < 1 {
			return nil, lorerr.InvalidCalendarSpecf("bad deviation line %q", line)
		}
		if !hasMonth(months, dev.Month) {
			return nil, lorerr.InvalidCalendarSpecf("deviation names unknown month %q", dev.Month)
		}
		deviations = append(deviations, dev)
	}
	return deviations, nil
}

// parseCycle compiles one cycle section. A **Period Length** line switches
// the table rows from (name, days) pairs to bare period names and discards
// any rows already read.
func parseCycle(sec *markdown.Section) (Cycle, *lorerr.Error) {
	var (
		fractional bool
		length     float64
		names      []string
		fixed      []CyclePeriod
	)
	started := false
	for _, line := range sec.Body {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "**period length**"):
			value := afterMarker(line)
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil || parsed < 1 {
				return nil, lorerr.InvalidCalendarSpecf("bad period length %q in cycle %q", value, sec.Title)
			}
			fractional = true
			length = parsed
			names = nil
		case strings.HasPrefix(line, "|----"):
			started = true
		case started && strings.HasPrefix(line, "|"):
			cells := strings.Split(line, "|")
			if len(cells) < 2 || strings.TrimSpace(cells[1]) == "" {
				return nil, lorerr.InvalidCalendarSpecf("bad period row %q in cycle %q", line, sec.Title)
			}
			name := strings.TrimSpace(cells[1])
			if fractional {
				names = append(names, name)
				continue
			}
			if len(cells) < 3 {
				return nil, lorerr.InvalidCalendarSpecf("bad period row %q in cycle %q", line, sec.Title)
			}
			days, err := strconv.Atoi(strings.TrimSpace(cells[2]))
			if err != nil || days < 1 {
				return nil, lorerr.InvalidCalendarSpecf("bad period row %q in cycle %q", line, sec.Title)
			}
			fixed = append(fixed, CyclePeriod{Name: name, Days: days})
		}
	}
	if fractional {
		if len(names) == 0 {
			return nil, lorerr.InvalidCalendarSpecf("cycle %q has no periods", sec.Title)
		}
		return &FractionalCycle{Periods: names, PeriodLength: length}, nil
	}
	if len(fixed) == 0 {
		return nil, lorerr.InvalidCalendarSpecf("cycle %q has no periods", sec.Title)
	}
	return &StaticCycle{Periods: fixed}, nil
}
