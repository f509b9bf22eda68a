package dates

import (
	"testing"
	"time"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	zone, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("failed to load zone %s: %v", name, err)
	}
	return zone
}

func TestWindowFor(t *testing.T) {
	tests := []struct {
		name     string
		zone     string
		now      time.Time
		date     string
		startUTC time.Time
		endUTC   time.Time
	}{
		{
			name:     "utc zone, plain day",
			zone:     "UTC",
			now:      time.Date(2024, 1, 15, 13, 30, 0, 0, time.UTC),
			date:     "2024-01-15",
			startUTC: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			endUTC:   time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "cet winter day",
			zone:     "Europe/Stockholm",
			now:      time.Date(2024, 1, 15, 13, 30, 0, 0, time.UTC),
			date:     "2024-01-15",
			startUTC: time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC),
			endUTC:   time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC),
		},
		{
			name:     "spring dst transition gives a 23h window",
			zone:     "Europe/Stockholm",
			now:      time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC),
			date:     "2024-03-31",
			startUTC: time.Date(2024, 3, 30, 23, 0, 0, 0, time.UTC),
			endUTC:   time.Date(2024, 3, 31, 22, 0, 0, 0, time.UTC),
		},
		{
			name:     "autumn dst transition gives a 25h window",
			zone:     "Europe/Stockholm",
			now:      time.Date(2024, 10, 27, 12, 0, 0, 0, time.UTC),
			date:     "2024-10-27",
			startUTC: time.Date(2024, 10, 26, 22, 0, 0, 0, time.UTC),
			endUTC:   time.Date(2024, 10, 27, 23, 0, 0, 0, time.UTC),
		},
		{
			name:     "local day differs from utc day late in the evening",
			zone:     "Europe/Helsinki",
			now:      time.Date(2024, 6, 1, 22, 30, 0, 0, time.UTC),
			date:     "2024-06-02",
			startUTC: time.Date(2024, 6, 1, 21, 0, 0, 0, time.UTC),
			endUTC:   time.Date(2024, 6, 2, 21, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WindowFor(tt.now, mustZone(t, tt.zone))
			if w.DateString() != tt.date {
				t.Errorf("DateString() expected %s, got %s", tt.date, w.DateString())
			}
			if !w.StartUTC.Equal(tt.startUTC) {
				t.Errorf("StartUTC expected %v, got %v", tt.startUTC, w.StartUTC)
			}
			if !w.EndUTC.Equal(tt.endUTC) {
				t.Errorf("EndUTC expected %v, got %v", tt.endUTC, w.EndUTC)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	zone := mustZone(t, "Europe/Stockholm")
	w := WindowFor(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), zone)

	inside := time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC).In(zone)
	if !w.SameDay(inside) {
		t.Errorf("expected %v to be on %s", inside, w.DateString())
	}

	outside := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC).In(zone)
	if w.SameDay(outside) {
		t.Errorf("expected %v to be outside %s", outside, w.DateString())
	}
}
