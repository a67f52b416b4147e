package scale

import (
	"math"
	"sort"
	"time"
)

// Time is a Linear scale whose domain holds Unix milliseconds. Ticks and
// Nice snap to calendar boundaries in UTC.
type Time struct {
	Linear
}

// NewTime returns a time scale spanning the first day of the Unix epoch.
func NewTime() *Time {
	return &Time{Linear{d0: 0, d1: msPerDay, r0: 0, r1: 1}}
}

// Millis converts t to the domain representation used by Time.
func Millis(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// FromMillis converts a domain value back to a UTC time.
func FromMillis(ms float64) time.Time {
	return time.UnixMilli(int64(math.Round(ms))).UTC()
}

func (s *Time) Clone() Continuous { c := *s; return &c }

const (
	msPerSecond = 1000.0
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
	msPerWeek   = 7 * msPerDay
	msPerMonth  = 30 * msPerDay
	msPerYear   = 365 * msPerDay
)

type unit int

const (
	unitSecond unit = iota
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitMonth
	unitYear
)

// interval is a calendar tick interval: every step units.
type interval struct {
	unit unit
	step int
	dur  float64
}

var tickIntervals = []interval{
	{unitSecond, 1, msPerSecond},
	{unitSecond, 5, 5 * msPerSecond},
	{unitSecond, 15, 15 * msPerSecond},
	{unitSecond, 30, 30 * msPerSecond},
	{unitMinute, 1, msPerMinute},
	{unitMinute, 5, 5 * msPerMinute},
	{unitMinute, 15, 15 * msPerMinute},
	{unitMinute, 30, 30 * msPerMinute},
	{unitHour, 1, msPerHour},
	{unitHour, 3, 3 * msPerHour},
	{unitHour, 6, 6 * msPerHour},
	{unitHour, 12, 12 * msPerHour},
	{unitDay, 1, msPerDay},
	{unitDay, 2, 2 * msPerDay},
	{unitWeek, 1, msPerWeek},
	{unitMonth, 1, msPerMonth},
	{unitMonth, 3, 3 * msPerMonth},
	{unitYear, 1, msPerYear},
}

// pickInterval returns the calendar interval closest to count ticks over
// [start, stop]. ok is false when the span is below one second per tick.
func pickInterval(start, stop float64, count int) (interval, bool) {
	target := math.Abs(stop-start) / float64(count)
	i := sort.Search(len(tickIntervals), func(i int) bool { return tickIntervals[i].dur > target })
	switch {
	case i == len(tickIntervals):
		step := int(TickStep(start/msPerYear, stop/msPerYear, count))
		if step < 1 {
			step = 1
		}
		return interval{unitYear, step, float64(step) * msPerYear}, true
	case i == 0:
		return interval{}, false
	}
	if target/tickIntervals[i-1].dur < tickIntervals[i].dur/target {
		return tickIntervals[i-1], true
	}
	return tickIntervals[i], true
}

func (iv interval) floor(t time.Time) time.Time {
	t = t.UTC()
	switch iv.unit {
	case unitSecond:
		return t.Truncate(time.Duration(iv.step) * time.Second)
	case unitMinute:
		return t.Truncate(time.Duration(iv.step) * time.Minute)
	case unitHour:
		return t.Truncate(time.Duration(iv.step) * time.Hour)
	case unitDay:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		for (d.Day()-1)%iv.step != 0 {
			d = d.AddDate(0, 0, -1)
		}
		return d
	case unitWeek:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return d.AddDate(0, 0, -int(d.Weekday()))
	case unitMonth:
		d := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		for (int(d.Month())-1)%iv.step != 0 {
			d = d.AddDate(0, -1, 0)
		}
		return d
	default:
		y := t.Year()
		y -= ((y % iv.step) + iv.step) % iv.step
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

func (iv interval) offset(t time.Time) time.Time {
	switch iv.unit {
	case unitSecond:
		return t.Add(time.Duration(iv.step) * time.Second)
	case unitMinute:
		return t.Add(time.Duration(iv.step) * time.Minute)
	case unitHour:
		return t.Add(time.Duration(iv.step) * time.Hour)
	case unitDay:
		return t.AddDate(0, 0, iv.step)
	case unitWeek:
		return t.AddDate(0, 0, 7*iv.step)
	case unitMonth:
		return t.AddDate(0, iv.step, 0)
	default:
		return t.AddDate(iv.step, 0, 0)
	}
}

func (iv interval) ceil(t time.Time) time.Time {
	f := iv.floor(t)
	if f.Equal(t) {
		return f
	}
	return iv.floor(iv.offset(f))
}

func (iv interval) next(t time.Time) time.Time {
	n := iv.floor(iv.offset(t))
	if !n.After(t) {
		n = iv.offset(t)
	}
	return n
}

// Ticks returns calendar-aligned tick values within the domain.
func (s *Time) Ticks(count int) []float64 {
	if count <= 0 {
		return nil
	}
	start, stop := s.d0, s.d1
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	iv, ok := pickInterval(start, stop, count)
	if !ok {
		return s.Linear.Ticks(count)
	}

	var ticks []float64
	end := FromMillis(stop)
	for t := iv.ceil(FromMillis(start)); !t.After(end); t = iv.next(t) {
		ticks = append(ticks, Millis(t))
	}
	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// Nice extends the domain to the calendar interval Ticks(count) would use.
func (s *Time) Nice(count int) {
	if count <= 0 {
		count = DefaultNiceCount
	}
	start, stop := s.d0, s.d1
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	iv, ok := pickInterval(start, stop, count)
	if !ok {
		s.Linear.Nice(count)
		return
	}
	start = Millis(iv.floor(FromMillis(start)))
	stop = Millis(iv.ceil(FromMillis(stop)))
	if reverse {
		start, stop = stop, start
	}
	s.d0, s.d1 = start, stop
}

// TickFormat picks a layout from the finest calendar field that is set in
// each tick, so "Mar 01" ticks print as "March" and midnight ticks as dates.
func (s *Time) TickFormat(int) func(float64) string {
	return FormatTime
}

// FormatTime formats a Unix-millisecond value using the coarsest layout
// that does not hide information.
func FormatTime(ms float64) string {
	t := FromMillis(ms)
	switch {
	case t.Nanosecond() != 0:
		return t.Format(".000")
	case t.Second() != 0:
		return t.Format(":05")
	case t.Minute() != 0:
		return t.Format("15:04")
	case t.Hour() != 0:
		return t.Format("3 PM")
	case t.Day() != 1:
		return t.Format("Jan 02")
	case t.Month() != time.January:
		return t.Format("January")
	default:
		return t.Format("2006")
	}
}

var _ Continuous = (*Time)(nil)
