package domain

import (
	"fmt"
	"strings"
	"time"
)

// ResolveUnix converts a wall clock in the given zone to Unix seconds.
//
// The GMT±H shorthand is an exact fixed rule: the fields are read as UTC and
// the offset subtracted, no DST involved. An IANA zone resolves to the
// instant whose rendering in that zone reproduces the fields. The two DST
// edge cases have a pinned policy:
//   - a wall time inside the spring-forward gap does not exist and is
//     rejected as ErrInvalidDateTime;
//   - a wall time repeated by the fall-back transition resolves to the
//     earlier instant, i.e. the pre-transition offset.
func ResolveUnix(w WallClock, zone string) (int64, error) {
	if !validCalendar(w) {
		return 0, fmt.Errorf("%w: %02d-%02d-%04d is not a real date",
			ErrInvalidDateTime, w.Day, int(w.Month), w.Year)
	}
	asUTC := time.Date(w.Year, w.Month, w.Day, w.Hour, w.Minute, 0, 0, time.UTC).Unix()

	if hours, ok := offsetHours(strings.ToUpper(strings.TrimSpace(zone))); ok {
		return asUTC - int64(hours)*3600, nil
	}

	loc, err := LocationFor(zone)
	if err != nil {
		return 0, err
	}

	// Candidate UTC offsets are the ones in effect just before and just after
	// the naive instant; real offsets stay inside -12..+14h, so any transition
	// relevant to this wall clock sits in that window. An offset is an answer
	// iff subtracting it lands on an instant where it is actually in effect:
	// zero hits mean the wall clock fell into a spring-forward gap, two
	// distinct hits mean it is ambiguous and the earlier instant wins.
	offsets := [2]int{
		offsetAt(asUTC-maxOffsetHours*3600, loc),
		offsetAt(asUTC-minOffsetHours*3600, loc),
	}
	var best int64
	found := false
	for i, off := range offsets {
		if i == 1 && off == offsets[0] {
			continue
		}
		candidate := asUTC - int64(off)
		if offsetAt(candidate, loc) != off {
			continue
		}
		if !found || candidate < best {
			best = candidate
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: %02d:%02d does not exist in %s on %02d-%02d-%04d",
			ErrInvalidDateTime, w.Hour, w.Minute, zone, w.Day, int(w.Month), w.Year)
	}
	return best, nil
}

// offsetAt returns the zone's UTC offset in seconds at the given instant.
func offsetAt(unix int64, loc *time.Location) int {
	_, off := time.Unix(unix, 0).In(loc).Zone()
	return off
}

// validCalendar rejects field combinations time.Date would silently
// normalize, like February 30 or month 13.
func validCalendar(w WallClock) bool {
	t := time.Date(w.Year, w.Month, w.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == w.Year && t.Month() == w.Month && t.Day() == w.Day
}
