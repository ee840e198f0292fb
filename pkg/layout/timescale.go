package layout

import (
	"time"
)

type timeUnit int

const (
	unitSecond timeUnit = iota
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitMonth
	unitYear
)

const (
	approxMonth = 30 * 24 * time.Hour
	approxYear  = 365 * 24 * time.Hour
	week        = 7 * 24 * time.Hour
)

type timeInterval struct {
	unit timeUnit
	step int
	span time.Duration
}

// Candidate tick intervals, finest first.
var timeIntervals = []timeInterval{
	{unitSecond, 1, time.Second},
	{unitSecond, 5, 5 * time.Second},
	{unitSecond, 15, 15 * time.Second},
	{unitSecond, 30, 30 * time.Second},
	{unitMinute, 1, time.Minute},
	{unitMinute, 5, 5 * time.Minute},
	{unitMinute, 15, 15 * time.Minute},
	{unitMinute, 30, 30 * time.Minute},
	{unitHour, 1, time.Hour},
	{unitHour, 3, 3 * time.Hour},
	{unitHour, 6, 6 * time.Hour},
	{unitHour, 12, 12 * time.Hour},
	{unitDay, 1, 24 * time.Hour},
	{unitDay, 2, 48 * time.Hour},
	{unitWeek, 1, week},
	{unitMonth, 1, approxMonth},
	{unitMonth, 3, 3 * approxMonth},
	{unitYear, 1, approxYear},
}

// TimeScale maps a time domain onto a pixel range. Ticks fall on calendar
// boundaries in the location of the domain start.
type TimeScale struct {
	D0, D1 time.Time
	R0, R1 float64
}

// Map returns the pixel position of t.
func (s TimeScale) Map(t time.Time) float64 {
	span := s.D1.Sub(s.D0)
	if span == 0 {
		return s.R0 + (s.R1-s.R0)/2
	}

	return s.R0 + float64(t.Sub(s.D0))/float64(span)*(s.R1-s.R0)
}

// Ticks returns about count calendar-aligned instants inside the domain.
func (s TimeScale) Ticks(count int) []time.Time {
	start, stop := s.D0, s.D1
	if stop.Before(start) {
		start, stop = stop, start
	}

	if start.Equal(stop) {
		return []time.Time{start}
	}

	iv := pickInterval(start, stop, count)
	loc := start.Location()

	var ticks []time.Time

	for t := ceilUnit(start, iv.unit, loc); !t.After(stop); t = nextUnit(t, iv.unit) {
		if matchesStep(t, iv) {
			ticks = append(ticks, t)
		}
	}

	return ticks
}

// TickLabels formats each tick by the coarsest calendar boundary it falls on.
func (s TimeScale) TickLabels(ticks []time.Time) []string {
	out := make([]string, len(ticks))
	for i, t := range ticks {
		out[i] = formatTimeTick(t)
	}

	return out
}

func pickInterval(start, stop time.Time, count int) timeInterval {
	target := stop.Sub(start) / time.Duration(max(1, count))

	i := 0
	for i < len(timeIntervals) && timeIntervals[i].span <= target {
		i++
	}

	switch {
	case i == len(timeIntervals):
		years := tickStep(yearsSinceEpoch(start), yearsSinceEpoch(stop), count)

		return timeInterval{unit: unitYear, step: max(1, int(years)), span: approxYear}
	case i == 0:
		return timeIntervals[0]
	}

	lo, hi := timeIntervals[i-1], timeIntervals[i]
	if float64(target)/float64(lo.span) < float64(hi.span)/float64(target) {
		return lo
	}

	return hi
}

func yearsSinceEpoch(t time.Time) float64 {
	return float64(t.UnixMilli()) / float64(approxYear.Milliseconds())
}

func floorUnit(t time.Time, u timeUnit, loc *time.Location) time.Time {
	t = t.In(loc)
	y, mo, d := t.Date()

	switch u {
	case unitSecond:
		return t.Truncate(time.Second)
	case unitMinute:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, loc)
	case unitHour:
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, loc)
	case unitDay:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case unitWeek:
		return time.Date(y, mo, d-int(t.Weekday()), 0, 0, 0, 0, loc)
	case unitMonth:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
}

func ceilUnit(t time.Time, u timeUnit, loc *time.Location) time.Time {
	f := floorUnit(t, u, loc)
	if f.Before(t) {
		return nextUnit(f, u)
	}

	return f
}

func nextUnit(t time.Time, u timeUnit) time.Time {
	switch u {
	case unitSecond:
		return t.Add(time.Second)
	case unitMinute:
		return t.Add(time.Minute)
	case unitHour:
		return t.Add(time.Hour)
	case unitDay:
		return t.AddDate(0, 0, 1)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(1, 0, 0)
	}
}

func matchesStep(t time.Time, iv timeInterval) bool {
	if iv.step <= 1 {
		return true
	}

	var field int

	switch iv.unit {
	case unitSecond:
		field = t.Second()
	case unitMinute:
		field = t.Minute()
	case unitHour:
		field = t.Hour()
	case unitDay:
		field = t.Day() - 1
	case unitMonth:
		field = int(t.Month()) - 1
	case unitYear:
		field = t.Year()
	default:
		return true
	}

	return field%iv.step == 0
}

func formatTimeTick(t time.Time) string {
	loc := t.Location()

	switch {
	case floorUnit(t, unitSecond, loc).Before(t):
		return t.Format(".000")
	case floorUnit(t, unitMinute, loc).Before(t):
		return t.Format(":05")
	case floorUnit(t, unitHour, loc).Before(t):
		return t.Format("03:04")
	case floorUnit(t, unitDay, loc).Before(t):
		return t.Format("03 PM")
	case floorUnit(t, unitMonth, loc).Before(t):
		if floorUnit(t, unitWeek, loc).Before(t) {
			return t.Format("Mon 02")
		}

		return t.Format("Jan 02")
	case floorUnit(t, unitYear, loc).Before(t):
		return t.Format("January")
	default:
		return t.Format("2006")
	}
}
