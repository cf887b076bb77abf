// Package calendar implements the calendar-day value type used for entry keys
// and streak adjacency. A Date has no time of day and no zone, so differences
// between dates are whole days regardless of daylight-saving transitions.
package calendar

import (
	"fmt"
	"time"

	"github.com/radishspirit/moodjournal/internal/model"
)

// ISOLayout is the storage format of entry dates.
const ISOLayout = "2006-01-02"

// DisplayLayout is the human-facing format, e.g. "Jan 2, 2006".
const DisplayLayout = "Jan 2, 2006"

const secondsPerDay = 24 * 60 * 60

// Date is a proleptic Gregorian calendar day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Parse reads a strict YYYY-MM-DD string. Out-of-range days such as
// 2024-02-30 and non-padded forms such as 2024-1-5 are rejected.
func Parse(s string) (Date, error) {
	if len(s) != len(ISOLayout) {
		return Date{}, model.NewValidationError("dateISO", fmt.Sprintf("%q is not a YYYY-MM-DD date", s))
	}
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, model.NewValidationError("dateISO", fmt.Sprintf("%q is not a YYYY-MM-DD date", s))
	}
	return FromTime(t, time.UTC), nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsValidISODate reports whether s is a well-formed, existing calendar date.
func IsValidISODate(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// FromTime returns the calendar day of t as observed in loc.
// A nil loc means time.Local.
func FromTime(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the calendar day of now in loc.
func Today(now time.Time, loc *time.Location) Date {
	return FromTime(now, loc)
}

// dayNumber counts days since 1970-01-01. UTC has no offset changes,
// so the division is exact.
func (d Date) dayNumber() int64 {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// DayDifference returns a minus b in whole calendar days.
func DayDifference(a, b Date) int {
	return int(a.dayNumber() - b.dayNumber())
}

// IsConsecutive reports whether a and b are exactly one day apart, in either order.
func IsConsecutive(a, b Date) bool {
	diff := DayDifference(a, b)
	return diff == 1 || diff == -1
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC), time.UTC)
}

// Compare returns -1, 0 or +1 as d is before, equal to, or after o.
func (d Date) Compare(o Date) int {
	switch diff := DayDifference(d, o); {
	case diff < 0:
		return -1
	case diff > 0:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Display formats d for people, e.g. "Jan 2, 2006".
func (d Date) Display() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(DisplayLayout)
}

// FormatISO returns the YYYY-MM-DD string for the local day of t in loc.
func FormatISO(t time.Time, loc *time.Location) string {
	return FromTime(t, loc).String()
}
