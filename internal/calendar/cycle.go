package calendar

// position fixes one absolute day against the year that contains it.
type position struct {
	absolute   int
	year       int
	dayOfYear  int
	yearLength int
}

// CyclePoint is one cycle's reading for a single day.
type CyclePoint struct {
	Number    int
	Day       int
	Period    string
	PeriodDay int
}

// Cycle tracks a repeating span of named periods alongside the months, a
// week or a moon. The two implementations cover fixed and fractional period
// lengths.
type Cycle interface {
	at(pos position) CyclePoint
}

// CyclePeriod is one named span inside a static cycle.
type CyclePeriod struct {
	Name string
	Days int
}

// StaticCycle repeats fixed-length periods continuously from day one of year
// one, ignoring year boundaries.
type StaticCycle struct {
	Periods []CyclePeriod
}

func (s *StaticCycle) length() int {
	total := 0
	for _, period := range s.Periods {
		total += period.Days
	}
	return total
}

func (s *StaticCycle) at(pos position) CyclePoint {
	elapsed := pos.absolute - 1
	into := elapsed % s.length()
	point := CyclePoint{Number: elapsed/s.length() + 1, Day: into + 1}
	for _, period := range s.Periods {
		if into < period.Days {
			point.Period = period.Name
			point.PeriodDay = into + 1
			break
		}
		into -= period.Days
	}
	return point
}

// FractionalCycle repeats periods whose length carries a fraction of a day,
// inserting the accumulated extra day by the same half-crossing rule as
// fractional years. A cycle at least as long as its year restarts at the
// first period each year and the final period truncates; a shorter cycle
// wraps continuously.
type FractionalCycle struct {
	Periods      []string
	PeriodLength float64
}

func (f *FractionalCycle) length() float64 {
	return f.PeriodLength * float64(len(f.Periods))
}

// boundary is the day the k-th period ends on, counted from the start of the
// cycle's reckoning.
func (f *FractionalCycle) boundary(k int) int {
	return carriedDays(k, f.PeriodLength)
}

// periodAt is the ordinal of the period containing the given day.
func (f *FractionalCycle) periodAt(day int) int {
	k := int(float64(day) / f.PeriodLength)
	if k < 1 {
		k = 1
	}
	for f.boundary(k) < day {
		k++
	}
	for k > 1 && f.boundary(k-1) >= day {
		k--
	}
	return k
}

func (f *FractionalCycle) at(pos position) CyclePoint {
	count := len(f.Periods)
	if f.length() >= float64(pos.yearLength) {
		k := f.periodAt(pos.dayOfYear)
		return CyclePoint{
			Number:    pos.year,
			Day:       pos.dayOfYear,
			Period:    f.Periods[(k-1)%count],
			PeriodDay: pos.dayOfYear - f.boundary(k-1),
		}
	}
	k := f.periodAt(pos.absolute)
	number := (k-1)/count + 1
	return CyclePoint{
		Number:    number,
		Day:       pos.absolute - f.boundary((number-1)*count),
		Period:    f.Periods[(k-1)%count],
		PeriodDay: pos.absolute - f.boundary(k-1),
	}
}
