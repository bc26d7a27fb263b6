package vacation

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date (no time-of-day component)
// =============================================================================

// Date is a calendar date. Parsing a "YYYY-MM-DD" string produces a local
// calendar date, never a UTC midnight, so the day component survives any
// server timezone.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date from components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// ParseDate parses an ISO "YYYY-MM-DD" string as a local calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// DateOf truncates a time.Time to its local calendar date.
func DateOf(t time.Time) Date {
	lt := t.Local()
	return NewDate(lt.Year(), lt.Month(), lt.Day())
}

// Today returns the current local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// IsWorkingDay reports whether the date falls Monday through Friday.
// No holiday calendar is consulted.
func (d Date) IsWorkingDay() bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	t := d.t.AddDate(0, 0, n)
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) Format(layout string) string { return d.t.Format(layout) }
func (d Date) String() string              { return d.t.Format(dateLayout) }

// =============================================================================
// BUSINESS-DAY CALCULATOR
// =============================================================================

// CountWorkingDays returns the number of Monday-Friday dates in the
// inclusive range [start, end]. A reversed range counts zero.
func CountWorkingDays(start, end Date) int {
	count := 0
	eachWorkingDay(start, end, func(Date) { count++ })
	return count
}

// ListWorkingDays enumerates the Monday-Friday dates in the inclusive range
// [start, end] in ascending order. A reversed range yields an empty list.
// The result is freshly built on every call, so callers may enumerate the
// same inputs any number of times.
func ListWorkingDays(start, end Date) []Date {
	var days []Date
	eachWorkingDay(start, end, func(d Date) { days = append(days, d) })
	return days
}

func eachWorkingDay(start, end Date, fn func(Date)) {
	if end.Before(start) {
		return
	}
	for d := start; !d.After(end); d = d.AddDays(1) {
		if d.IsWorkingDay() {
			fn(d)
		}
	}
}
