// Package dates normalizes timestamps to calendar days in one explicit
// timezone. Day bucketing must not depend on UTC: a menu entry stored
// near midnight would otherwise land on the wrong day in any zone with
// a negative UTC offset.
package dates

import "time"

const Layout = "2006-01-02"

// DayString renders t as YYYY-MM-DD in loc.
func DayString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}

// ParseDay parses a YYYY-MM-DD string as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(Layout, s, loc)
}

// DayBounds returns the half-open interval [start, end) covering the
// local day that contains t.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
