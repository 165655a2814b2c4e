// Package dates implements the calendar arithmetic behind the week strip and
// the month grid: Monday-first week ranges, padded month grids and the
// YYYY-MM-DD day key used to index workouts.
package dates

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gymkeeper/internal/common"
)

// DayKey identifies a calendar day as "YYYY-MM-DD". Two keys are equal iff
// they name the same day, whatever the time of day of the source value.
type DayKey string

func (k DayKey) String() string { return string(k) }

// Key builds the day key from t's year, month and day in t's own location.
func Key(t time.Time) DayKey {
	return DayKey(t.Format(common.DayKeyLayout))
}

// ParseKey parses s as a day key and returns midnight of that day in loc.
func ParseKey(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(common.DayKeyLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day key %q: %w", s, err)
	}
	return t, nil
}

// Valid reports whether k is a well-formed day key.
func (k DayKey) Valid() bool {
	t, err := time.Parse(common.DayKeyLayout, string(k))
	return err == nil && Key(t) == k
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// isoWeekday maps Monday..Sunday to 0..6.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns midnight of the Monday of anchor's week. Sunday belongs
// to the week that started six days earlier.
func WeekStart(anchor time.Time) time.Time {
	m := Midnight(anchor)
	return m.AddDate(0, 0, -isoWeekday(m))
}

// WeekDates returns the seven days of anchor's week, Monday first.
func WeekDates(anchor time.Time) [7]time.Time {
	var out [7]time.Time
	start := WeekStart(anchor)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// MonthDates returns the Monday-first grid for the given month: the trailing
// days of the previous month, every day of the month, then the leading days
// of the next month until the length is a multiple of seven. Dates are
// midnight in loc (time.Local when nil).
func MonthDates(year int, month time.Month, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysIn := first.AddDate(0, 1, -1).Day()
	lead := isoWeekday(first)

	total := lead + daysIn
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	out := make([]time.Time, 0, total)
	for i := -lead; len(out) < total; i++ {
		out = append(out, time.Date(year, month, 1+i, 0, 0, 0, 0, loc))
	}
	return out
}

// AddWeeks shifts t by n whole weeks.
func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// AddMonths shifts t by n months, clamping the day to the target month's
// length so that Jan 31 + 1 month is Feb 28/29 rather than early March.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return firstOfTarget.AddDate(0, 0, d-1)
}
