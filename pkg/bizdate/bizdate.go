// Package bizdate holds calendar-date helpers shared by ingestion and the settlement sweep.
//
// A date is a time.Time at midnight UTC. Keeping every date in the same location makes
// equality, ordering and postgres DATE round-trips unambiguous.
package bizdate

import "time"

// Layout is the wire and log format of a calendar date
const Layout = "2006-01-02"

// Of returns the calendar date of t as observed in t's own location
func Of(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now in loc
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return Of(now.In(loc))
}

// Parse parses a YYYY-MM-DD string
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// Format renders a date as YYYY-MM-DD
func Format(d time.Time) string {
	return d.Format(Layout)
}

// AddDays shifts a date by n calendar days
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// Window returns the days inclusive of [end-(days-1), end] in ascending order
func Window(end time.Time, days int) []time.Time {
	if days <= 0 {
		return nil
	}
	end = Of(end)
	out := make([]time.Time, 0, days)
	for i := days - 1; i >= 0; i-- {
		out = append(out, AddDays(end, -i))
	}
	return out
}
