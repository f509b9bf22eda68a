package dates

import "time"

const dateLayout = "2006-01-02"

// DayWindow is one local calendar day and the UTC instants bounding
// it. On DST transition days the window is 23 or 25 hours wide, which
// the UTC bounds reflect.
type DayWindow struct {
	// Date is midnight at the start of the target day, in the zone
	// the window was computed for.
	Date     time.Time
	StartUTC time.Time
	EndUTC   time.Time
}

// WindowFor computes the local calendar-day window containing t in
// the given zone.
func WindowFor(t time.Time, zone *time.Location) DayWindow {
	local := t.In(zone)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone)
	end := start.AddDate(0, 0, 1)
	return DayWindow{
		Date:     start,
		StartUTC: start.UTC(),
		EndUTC:   end.UTC(),
	}
}

func (w DayWindow) DateString() string {
	return w.Date.Format(dateLayout)
}

// SameDay reports whether t falls on the window's calendar day. The
// comparison uses t's own location, so callers must localize first.
func (w DayWindow) SameDay(t time.Time) bool {
	y1, m1, d1 := w.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
