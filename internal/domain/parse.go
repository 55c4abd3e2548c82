package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Strict patterns for the slash-command options: zero-padded 24-hour time and
// day-first date.
var (
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	datePattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
)

// WallClock is a calendar date-time with no zone attached yet.
type WallClock struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// ParseWallClock parses a required HH:mm time and an optional dd-mm-yyyy
// date. When the date is omitted, "today" is evaluated in loc: near midnight
// the user's calendar date can differ from the server's, so the effective
// zone decides, never the host locale.
func ParseWallClock(timeStr, dateStr string, now time.Time, loc *time.Location) (WallClock, error) {
	tm := timePattern.FindStringSubmatch(timeStr)
	if tm == nil {
		return WallClock{}, fmt.Errorf("%w: %q, want HH:mm", ErrInvalidTimeFormat, timeStr)
	}
	hour, _ := strconv.Atoi(tm[1])
	minute, _ := strconv.Atoi(tm[2])

	if dateStr == "" {
		local := now.In(loc)
		return WallClock{
			Year:   local.Year(),
			Month:  local.Month(),
			Day:    local.Day(),
			Hour:   hour,
			Minute: minute,
		}, nil
	}

	dm := datePattern.FindStringSubmatch(dateStr)
	if dm == nil {
		return WallClock{}, fmt.Errorf("%w: %q, want dd-mm-yyyy", ErrInvalidDateFormat, dateStr)
	}
	day, _ := strconv.Atoi(dm[1])
	month, _ := strconv.Atoi(dm[2])
	year, _ := strconv.Atoi(dm[3])
	return WallClock{
		Year:   year,
		Month:  time.Month(month),
		Day:    day,
		Hour:   hour,
		Minute: minute,
	}, nil
}
