package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// Clock is a campaign timestamp, precise to the minute. Day counts within
// the year, so rollover needs a calendar to know where years end.
type Clock struct {
	Year   int
	Day    int
	Hour   int
	Minute int
}

var clockRegex = regexp.MustCompile(`^(\d+)/(\d+) (\d+):(\d\d?)$`)

// ParseClock reads a clock from text. Accepted shapes: "Y/D H:MM", "H:MM",
// "Y/D", or a bare number of minutes.
func ParseClock(text string) (Clock, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return Clock{}, lorerr.InvalidArgument("empty time")
	case isDigits(text):
		minutes, err := strconv.Atoi(text)
		if err != nil {
			return Clock{}, lorerr.InvalidArgumentf("bad time %q", text)
		}
		return Clock{Minute: minutes}, nil
	case clockRegex.MatchString(text):
		groups := clockRegex.FindStringSubmatch(text)
		numbers := make([]int, 4)
		for i, group := range groups[1:] {
			numbers[i], _ = strconv.Atoi(group)
		}
		return Clock{Year: numbers[0], Day: numbers[1], Hour: numbers[2], Minute: numbers[3]}, nil
	case strings.Contains(text, ":"):
		hour, minute, ok := splitPair(text, ":")
		if !ok {
			return Clock{}, lorerr.InvalidArgumentf("bad time %q", text)
		}
		return Clock{Hour: hour, Minute: minute}, nil
	case strings.Contains(text, "/"):
		year, day, ok := splitPair(text, "/")
		if !ok {
			return Clock{}, lorerr.InvalidArgumentf("bad time %q", text)
		}
		return Clock{Year: year, Day: day}, nil
	}
	return Clock{}, lorerr.InvalidArgumentf("bad time %q", text)
}

func isDigits(text string) bool {
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(text) > 0
}

func splitPair(text, sep string) (first, second int, ok bool) {
	left, right, found := strings.Cut(text, sep)
	if !found {
		return 0, 0, false
	}
	first, errFirst := strconv.Atoi(strings.TrimSpace(left))
	second, errSecond := strconv.Atoi(strings.TrimSpace(right))
	return first, second, errFirst == nil && errSecond == nil
}

// Advance adds hours and minutes to a clock, rolling over through the
// calendar's per-year day counts. Negative amounts roll under, stopping at
// the first minute of year one.
func (c *Calendar) Advance(t Clock, hours, minutes int) Clock {
	if t.Year < 1 {
		t.Year, t.Day = 1, max(t.Day, 1)
	}
	t.Minute += minutes
	t.Hour += hours

	carry, minute := floorDiv(t.Minute, 60)
	t.Minute = minute
	t.Hour += carry
	carry, hour := floorDiv(t.Hour, 24)
	t.Hour = hour
	t.Day += carry

	for t.Day > c.DaysInYear(t.Year) {
		t.Day -= c.DaysInYear(t.Year)
		t.Year++
	}
	for t.Day < 1 {
		if t.Year <= 1 {
			return Clock{Year: 1, Day: 1}
		}
		t.Year--
		t.Day += c.DaysInYear(t.Year)
	}
	return t
}

// floorDiv divides rounding toward negative infinity, so negative minute and
// hour totals borrow from the larger unit.
func floorDiv(a, b int) (quotient, remainder int) {
	quotient = a / b
	remainder = a % b
	if remainder < 0 {
		quotient--
		remainder += b
	}
	return quotient, remainder
}

// String renders the long form, "Year 2, Day 45, 8:05".
func (t Clock) String() string {
	return fmt.Sprintf("Year %d, Day %d, %d:%02d", t.Year, t.Day, t.Hour, t.Minute)
}

// Short renders the compact form that ParseClock accepts, "2/45 8:05".
func (t Clock) Short() string {
	return fmt.Sprintf("%d/%d %d:%02d", t.Year, t.Day, t.Hour, t.Minute)
}
