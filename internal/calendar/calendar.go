// Package calendar compiles calendar documents into computable year, month
// and cycle arithmetic for campaign timekeeping.
package calendar

import (
	"math"
	"slices"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// Month is one named span of days in the canonical year.
type Month struct {
	Name string
	Days int
}

// YearModel decides how long each year runs and which months stretch to fill
// it. The two implementations cover fractional year lengths and planned
// deviations; both read the canonical months passed in by the calendar.
type YearModel interface {
	// DaysInYear reports how many days the given year holds.
	DaysInYear(year int, months []Month) int
	// MonthLengths returns the months at the day counts effective in year.
	MonthLengths(year int, months []Month) []Month
}

// FractionalYear grows years from a fractional day count. The running
// fraction inserts an extra day into the overage month whenever it crosses
// one half.
type FractionalYear struct {
	Length  float64
	Overage string
}

// DaysInYear reports the days in year, the cumulative total through this year
// minus the total through the last.
func (f *FractionalYear) DaysInYear(year int, months []Month) int {
	return carriedDays(year, f.Length) - carriedDays(year-1, f.Length)
}

// MonthLengths returns the months for year, with the overage month one day
// longer when the year runs past the fractional length.
func (f *FractionalYear) MonthLengths(year int, months []Month) []Month {
	out := slices.Clone(months)
	if float64(f.DaysInYear(year, months)) > f.Length {
		for i := range out {
			if out[i].Name == f.Overage {
				out[i].Days++
				break
			}
		}
	}
	return out
}

// Deviation is a conditional override of one month's day count, firing in
// years where year mod Modulus lands in Remainders.
type Deviation struct {
	Month      string
	Days       int
	Modulus    int
	Remainders []int
}

func (d Deviation) matches(year int) bool {
	return slices.Contains(d.Remainders, year%d.Modulus)
}

// DeviationYear runs every year at the canonical month lengths except where a
// deviation fires. Deviations apply in declared order, so the last one to hit
// a month wins.
type DeviationYear struct {
	Deviations []Deviation
}

// DaysInYear sums the effective month lengths for year.
func (d *DeviationYear) DaysInYear(year int, months []Month) int {
	total := 0
	for _, month := range d.MonthLengths(year, months) {
		total += month.Days
	}
	return total
}

// MonthLengths returns the months for year with matching deviations applied
// in declared order.
func (d *DeviationYear) MonthLengths(year int, months []Month) []Month {
	out := slices.Clone(months)
	for _, dev := range d.Deviations {
		if !dev.matches(year) {
			continue
		}
		for i := range out {
			if out[i].Name == dev.Month {
				out[i].Days = dev.Days
				break
			}
		}
	}
	return out
}

// carriedDays is the whole days consumed by the first steps units of a
// fractional length. The extra day lands as soon as the running fraction
// passes one half, so length 365.2422 puts the leap day in year three, not
// year four.
func carriedDays(steps int, length float64) int {
	if steps <= 0 {
		return 0
	}
	total := float64(steps) * length
	whole := math.Floor(total)
	days := int(whole)
	if total-whole > 0.5 {
		days++
	}
	return days
}

// Calendar is the computable model of one calendar document.
type Calendar struct {
	Name    string
	Years   YearModel
	Months  []Month
	Cycles  map[string]Cycle
	Formats map[string]string
}

// DaysInYear reports how many days the given year holds.
func (c *Calendar) DaysInYear(year int) int {
	return c.Years.DaysInYear(year, c.Months)
}

// DaysBeforeYear reports how many days pass before the given year begins.
func (c *Calendar) DaysBeforeYear(year int) int {
	days := 0
	for y := 1; y < year; y++ {
		days += c.DaysInYear(y)
	}
	return days
}

// MonthLengths returns the months at the day counts effective in year.
func (c *Calendar) MonthLengths(year int) []Month {
	return c.Years.MonthLengths(year, c.Months)
}

// AbsoluteDay converts a year and day of year into the continuous day count
// that Resolve and Format consume. Day one of year one is absolute day one.
func (c *Calendar) AbsoluteDay(year, day int) (int, error) {
	if year < 1 {
		return 0, lorerr.InvalidArgumentf("year must be at least 1, got %d", year)
	}
	if length := c.DaysInYear(year); day < 1 || day > length {
		return 0, lorerr.InvalidArgumentf("year %d runs %d days, got day %d", year, length, day)
	}
	return c.DaysBeforeYear(year) + day, nil
}

// Date locates one absolute day on every axis the calendar tracks. Cycles is
// keyed by lower-cased cycle name.
type Date struct {
	Year        int
	DayOfYear   int
	DayOfMonth  int
	Month       string
	MonthNumber int
	Cycles      map[string]CyclePoint
}

// Resolve returns the full date for one absolute day.
func (c *Calendar) Resolve(absolute int) (*Date, error) {
	if absolute < 1 {
		return nil, lorerr.InvalidArgumentf("absolute day must be at least 1, got %d", absolute)
	}
	year, before := 1, 0
	length := c.DaysInYear(year)
	for absolute > before+length {
		before += length
		year++
		length = c.DaysInYear(year)
	}

	date := &Date{
		Year:      year,
		DayOfYear: absolute - before,
		Cycles:    make(map[string]CyclePoint, len(c.Cycles)),
	}
	day := date.DayOfYear
	for number, month := range c.MonthLengths(year) {
		if day <= month.Days {
			date.Month = month.Name
			date.MonthNumber = number + 1
			date.DayOfMonth = day
			break
		}
		day -= month.Days
	}

	pos := position{absolute: absolute, year: year, dayOfYear: date.DayOfYear, yearLength: length}
	for name, cycle := range c.Cycles {
		date.Cycles[name] = cycle.at(pos)
	}
	return date, nil
}
