package domain

import (
	"errors"
	"testing"
	"time"
)

func mustLocation(t *testing.T, zone string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(zone)
	if err != nil {
		t.Fatalf("load %s: %v", zone, err)
	}
	return loc
}

func TestParseWallClock_TimeOnly(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	w, err := ParseWallClock("14:30", "", now, time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := WallClock{Year: 2025, Month: time.June, Day: 1, Hour: 14, Minute: 30}
	if w != want {
		t.Fatalf("want %+v, got %+v", want, w)
	}
}

func TestParseWallClock_ExplicitDate(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	w, err := ParseWallClock("09:05", "25-12-2025", now, time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := WallClock{Year: 2025, Month: time.December, Day: 25, Hour: 9, Minute: 5}
	if w != want {
		t.Fatalf("want %+v, got %+v", want, w)
	}
}

func TestParseWallClock_RejectsBadTime(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"25:00", "7:30", "14:5", "1430", "14:60", "", "ab:cd"} {
		_, err := ParseWallClock(in, "", now, time.UTC)
		if !errors.Is(err, ErrInvalidTimeFormat) {
			t.Fatalf("%q: want ErrInvalidTimeFormat, got %v", in, err)
		}
	}
}

func TestParseWallClock_RejectsBadDate(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"2025-12-25", "25/12/2025", "25-12-25", "5-12-2025", "25-12-2025x"} {
		_, err := ParseWallClock("14:30", in, now, time.UTC)
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("%q: want ErrInvalidDateFormat, got %v", in, err)
		}
	}
}

func TestParseWallClock_TodayInEffectiveZone(t *testing.T) {
	// At 2025-06-01 00:30 UTC the calendar date differs across the date
	// line: UTC+14 is already on June 1 afternoon, UTC-12 still on May 31.
	now := time.Date(2025, time.June, 1, 0, 30, 0, 0, time.UTC)

	east, err := ParseWallClock("10:00", "", now, mustLocation(t, "Pacific/Kiritimati"))
	if err != nil {
		t.Fatalf("parse east: %v", err)
	}
	west, err := ParseWallClock("10:00", "", now, mustLocation(t, "Etc/GMT+12"))
	if err != nil {
		t.Fatalf("parse west: %v", err)
	}

	if east.Day != 1 || east.Month != time.June {
		t.Fatalf("east: want June 1, got %v %d", east.Month, east.Day)
	}
	if west.Day != 31 || west.Month != time.May {
		t.Fatalf("west: want May 31, got %v %d", west.Month, west.Day)
	}
}
